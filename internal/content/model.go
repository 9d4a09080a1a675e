// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item describes a piece of music.
type Item struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
}

// ImageType enumerates the slideshow formats accepted by the encoder.
type ImageType int

const (
	ImageJPEG ImageType = iota + 1
	ImagePNG
)

// MIME returns the canonical MIME type.
func (t ImageType) MIME() string {
	switch t {
	case ImageJPEG:
		return "image/jpeg"
	case ImagePNG:
		return "image/png"
	default:
		return ""
	}
}

// Ext returns the file extension used for stored uploads, without the dot.
func (t ImageType) Ext() string {
	switch t {
	case ImageJPEG:
		return "jpg"
	case ImagePNG:
		return "png"
	default:
		return ""
	}
}

func (t ImageType) String() string {
	if m := t.MIME(); m != "" {
		return m
	}
	return fmt.Sprintf("ImageType(%d)", int(t))
}

// ParseImageType maps a declared MIME type to an ImageType.
// Parameters such as "; charset=binary" are ignored.
func ParseImageType(mime string) (ImageType, error) {
	m := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	switch m {
	case "image/jpeg", "image/jpg":
		return ImageJPEG, nil
	case "image/png":
		return ImagePNG, nil
	}
	return 0, fmt.Errorf("%w: unsupported image format %q (supported: JPEG, PNG)", ErrValidation, mime)
}

// ImageTypeFromPath derives the image type from a file extension.
func ImageTypeFromPath(path string) (ImageType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return ImageJPEG, nil
	case ".png":
		return ImagePNG, nil
	}
	return 0, fmt.Errorf("%w: unsupported image file %q (supported: .jpg, .jpeg, .png)", ErrValidation, filepath.Base(path))
}

// Image is a stored upload owned by exactly one content slot.
type Image struct {
	Type ImageType
	Path string // absolute path inside the upload pool
	Name string // stored file name, <uuid>.<ext>
}

// Track is the transient now-playing entry.
type Track struct {
	ID        uuid.UUID
	Item      Item
	ExpiresAt *time.Time // nil never expires
	Image     *Image
}

// Program is the transient show announcement.
type Program struct {
	ID        uuid.UUID
	Name      string
	ExpiresAt *time.Time // nil never expires
	Image     *Image
}

// Station is the permanent station identity.
type Station struct {
	ID    uuid.UUID
	Name  string
	Image *Image
}

// State is the aggregate guarded by Store. Station is always populated once
// the daemon has finished startup.
type State struct {
	Track   *Track
	Program *Program
	Station Station
}
