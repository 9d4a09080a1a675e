// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/fsutil"
	xglog "github.com/ManuGH/padmeta/internal/log"
	"github.com/google/renameio/v2"
)

// Mirror keeps the slideshow directory holding exactly the active image.
// A sync is not atomic: the encoder may briefly observe an empty directory,
// but never a partially written file. Copies are staged in a hidden sibling
// directory on the same filesystem and renamed into place.
type Mirror struct {
	dir     string
	staging string
	perm    os.FileMode
}

// NewMirror creates the slideshow directory and its staging sibling if
// needed.
func NewMirror(dir string) (*Mirror, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve slideshow dir: %w", err)
	}
	staging := stagingDir(abs)
	for _, d := range []string{abs, staging} {
		if err := os.MkdirAll(d, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create slideshow dir: %v", content.ErrFileProcessing, err)
		}
	}
	return &Mirror{dir: abs, staging: staging, perm: 0o644}, nil
}

func stagingDir(dir string) string {
	return filepath.Join(filepath.Dir(dir), "."+filepath.Base(dir)+"-staging")
}

// Dir returns the absolute slideshow directory.
func (m *Mirror) Dir() string { return m.dir }

// Clear removes every regular file from the slideshow directory.
func (m *Mirror) Clear() error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("%w: list slideshow dir: %v", content.ErrFileProcessing, err)
	}
	var errs []error
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("%w: remove %s: %v", content.ErrFileProcessing, e.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Sync clears the directory and copies img into it under its stored name.
// A nil img leaves the directory empty.
func (m *Mirror) Sync(ctx context.Context, img *content.Image) error {
	logger := xglog.FromContext(ctx)

	clearErr := m.Clear()
	if img == nil {
		return clearErr
	}
	if err := m.copyIn(img); err != nil {
		return errors.Join(clearErr, err)
	}

	logger.Debug().
		Str(xglog.FieldEvent, "mot.slideshow_synced").
		Str(xglog.FieldImagePath, img.Path).
		Msg("slideshow updated")
	return clearErr
}

func (m *Mirror) copyIn(img *content.Image) error {
	dst, err := fsutil.ConfineRelPath(m.dir, img.Name)
	if err != nil {
		return fmt.Errorf("%w: slideshow target: %v", content.ErrFileProcessing, err)
	}

	// #nosec G304 -- source is a pool path owned by a content slot
	src, err := os.Open(img.Path)
	if err != nil {
		return fmt.Errorf("%w: open image: %v", content.ErrFileProcessing, err)
	}
	defer func() { _ = src.Close() }()

	pendingFile, err := renameio.NewPendingFile(dst,
		renameio.WithTempDir(m.staging),
		renameio.WithPermissions(m.perm),
	)
	if err != nil {
		return fmt.Errorf("%w: create pending slideshow file: %v", content.ErrFileProcessing, err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := io.Copy(pendingFile, src); err != nil {
		return fmt.Errorf("%w: copy image: %v", content.ErrFileProcessing, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: commit slideshow file: %v", content.ErrFileProcessing, err)
	}
	return nil
}
