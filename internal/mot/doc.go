// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package mot manages the image side of the PAD output: the upload pool
// holding every image owned by a content slot, and the MOT slideshow
// directory the encoder reads from.
package mot
