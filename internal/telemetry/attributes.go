// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Span attribute keys.
const (
	ContentKindKey = "padmeta.content.kind"
	ContentIDKey   = "padmeta.content.id"
	CommandKey     = "padmeta.command"
	ToggleKey      = "padmeta.toggle"
	ImageTypeKey   = "padmeta.image.type"
	ImageBytesKey  = "padmeta.image.bytes"
	ErrorKey       = "error"
	ErrorTypeKey   = "error.type"
)

// ContentAttributes describes the content that was put on air.
func ContentAttributes(kind, id string, toggle bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ContentKindKey, kind),
		attribute.String(ContentIDKey, id),
		attribute.Bool(ToggleKey, toggle),
	}
}

// UploadAttributes describes an image upload attached to a command.
// Empty values are omitted.
func UploadAttributes(imageType string, size int) []attribute.KeyValue {
	if imageType == "" {
		return nil
	}
	return []attribute.KeyValue{
		attribute.String(ImageTypeKey, imageType),
		attribute.Int(ImageBytesKey, size),
	}
}

// ErrorAttributes marks a span as failed with a coarse classification.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
