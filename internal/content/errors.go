// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import "errors"

var (
	// ErrValidation classifies rejected input (missing title, unsupported image type, ...).
	// Validation errors never reach the store.
	ErrValidation = errors.New("invalid input")

	// ErrFileProcessing classifies failures writing the tag file or copying/deleting images.
	ErrFileProcessing = errors.New("file processing error")

	// ErrNotFound is returned when a configured file (e.g. the default station image) is missing.
	ErrNotFound = errors.New("not found")
)
