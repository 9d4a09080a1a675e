// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dls

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ManuGH/padmeta/internal/content"
	xglog "github.com/ManuGH/padmeta/internal/log"
	"github.com/google/renameio/v2"
)

// Writer replaces the DLS output file. Each write is atomic and durable so
// the encoder never reads a half-written label.
type Writer struct {
	path string
	perm os.FileMode
}

// NewWriter creates a writer for path. The parent directory is created on
// first use.
func NewWriter(path string) *Writer {
	return &Writer{path: path, perm: 0o644}
}

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

// Write fully replaces the output file with text.
func (w *Writer) Write(ctx context.Context, text string) error {
	logger := xglog.FromContext(ctx)

	if err := os.MkdirAll(filepath.Dir(w.path), 0o750); err != nil {
		return fmt.Errorf("%w: create DLS output directory: %v", content.ErrFileProcessing, err)
	}

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(w.path, renameio.WithPermissions(w.perm))
	if err != nil {
		return fmt.Errorf("%w: create pending DLS file: %v", content.ErrFileProcessing, err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending DLS file")
		}
	}()

	if _, err := io.WriteString(pendingFile, text); err != nil {
		return fmt.Errorf("%w: write DLS data: %v", content.ErrFileProcessing, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: atomically replace DLS file: %v", content.ErrFileProcessing, err)
	}

	logger.Debug().
		Str(xglog.FieldPath, w.path).
		Int("bytes", len(text)).
		Msg("wrote DLS output")
	return nil
}

// Read returns the current contents of the output file.
func (w *Writer) Read() (string, error) {
	// #nosec G304 -- output path is operator configuration
	b, err := os.ReadFile(w.path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
