// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageType(t *testing.T) {
	for mime, want := range map[string]ImageType{
		"image/jpeg":                ImageJPEG,
		"IMAGE/JPEG":                ImageJPEG,
		"image/png":                 ImagePNG,
		"image/png; charset=binary": ImagePNG,
	} {
		got, err := ParseImageType(mime)
		require.NoError(t, err, mime)
		assert.Equal(t, want, got, mime)
	}

	for _, mime := range []string{"", "image/gif", "application/octet-stream", "image/webp"} {
		_, err := ParseImageType(mime)
		assert.True(t, errors.Is(err, ErrValidation), "%q should be a validation error", mime)
	}
}

func TestImageTypeFromPath(t *testing.T) {
	typ, err := ImageTypeFromPath("/etc/station/logo.JPEG")
	require.NoError(t, err)
	assert.Equal(t, ImageJPEG, typ)
	assert.Equal(t, "jpg", typ.Ext())

	typ, err = ImageTypeFromPath("logo.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", typ.MIME())

	_, err = ImageTypeFromPath("logo.bmp")
	assert.ErrorIs(t, err, ErrValidation)
}
