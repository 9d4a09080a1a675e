// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldContentID = "content_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldTrigger   = "trigger"

	// Content fields
	FieldKind    = "kind"
	FieldTitle   = "title"
	FieldArtist  = "artist"
	FieldName    = "name"
	FieldToggle  = "toggle"
	FieldExpires = "expires_at"

	// Path fields
	FieldPath      = "path"
	FieldImagePath = "image_path"
)
