// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package dls renders the authoritative content into the Dynamic Label
// Segment text file consumed by ODR-PadEnc, including DL Plus tags.
package dls
