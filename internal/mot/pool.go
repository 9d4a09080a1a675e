// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/fsutil"
	xglog "github.com/ManuGH/padmeta/internal/log"
	"github.com/ManuGH/padmeta/internal/metrics"
	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pool stores uploaded images under fresh <uuid>.<ext> names. A name is
// never reused, so deleting an orphan cannot race a newer upload.
type Pool struct {
	dir    string
	perm   os.FileMode
	logger zerolog.Logger
}

// ReconcileStats summarizes one orphan scan.
type ReconcileStats struct {
	Scanned int
	Removed int
	Failed  int
}

// NewPool creates the pool directory if needed.
func NewPool(dir string) (*Pool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve image dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create image dir: %v", content.ErrFileProcessing, err)
	}
	return &Pool{
		dir:    abs,
		perm:   0o644,
		logger: xglog.WithComponent("mot.pool"),
	}, nil
}

// Dir returns the absolute pool directory.
func (p *Pool) Dir() string { return p.dir }

// Store validates the declared MIME type and writes data into the pool.
func (p *Pool) Store(data []byte, mime string) (*content.Image, error) {
	t, err := content.ParseImageType(mime)
	if err != nil {
		return nil, err
	}
	return p.StoreType(data, t)
}

// StoreType writes data into the pool as an image of type t.
func (p *Pool) StoreType(data []byte, t content.ImageType) (*content.Image, error) {
	if t.Ext() == "" {
		return nil, fmt.Errorf("%w: unknown image type", content.ErrValidation)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", content.ErrValidation)
	}

	name := uuid.NewString() + "." + t.Ext()
	path := filepath.Join(p.dir, name)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(p.perm))
	if err != nil {
		return nil, fmt.Errorf("%w: create pending image: %v", content.ErrFileProcessing, err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			p.logger.Debug().Err(err).Msg("cleanup pending image")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return nil, fmt.Errorf("%w: write image: %v", content.ErrFileProcessing, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return nil, fmt.Errorf("%w: commit image: %v", content.ErrFileProcessing, err)
	}

	metrics.IncUploadStored(t.Ext())
	p.logger.Debug().
		Str(xglog.FieldEvent, "mot.image_stored").
		Str(xglog.FieldImagePath, path).
		Int("bytes", len(data)).
		Msg("stored image")

	return &content.Image{Type: t, Path: path, Name: name}, nil
}

// LoadDefault copies the configured station image into the pool so the
// station slot owns its own file like every other slot.
func (p *Pool) LoadDefault(path string) (*content.Image, error) {
	if err := fsutil.IsRegularFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: default station image %s", content.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: default station image: %v", content.ErrFileProcessing, err)
	}
	t, err := content.ImageTypeFromPath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read default station image: %v", content.ErrFileProcessing, err)
	}
	return p.StoreType(data, t)
}

// Remove deletes one image from the pool. A missing file is not an error.
func (p *Pool) Remove(img *content.Image) error {
	if img == nil {
		return nil
	}
	path, err := fsutil.ConfineAbsPath(p.dir, img.Path)
	if err != nil {
		return fmt.Errorf("%w: refusing to delete %s: %v", content.ErrFileProcessing, img.Path, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: delete image: %v", content.ErrFileProcessing, err)
	}
	p.logger.Debug().
		Str(xglog.FieldEvent, "mot.image_removed").
		Str(xglog.FieldImagePath, path).
		Msg("removed image")
	return nil
}

// Reconcile deletes every image in the pool that is not listed in
// referenced. Individual deletion failures are logged and counted; only a
// failure to list the directory aborts the scan.
func (p *Pool) Reconcile(referenced []string) (ReconcileStats, error) {
	var stats ReconcileStats
	start := time.Now()
	defer func() {
		metrics.ObserveReconcile(time.Since(start).Seconds())
		metrics.AddOrphansRemoved(stats.Removed)
		metrics.AddOrphanRemoveFailures(stats.Failed)
	}()

	keep := make(map[string]struct{}, len(referenced))
	for _, r := range referenced {
		keep[filepath.Clean(r)] = struct{}{}
	}

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return stats, fmt.Errorf("%w: list image dir: %v", content.ErrFileProcessing, err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() || !isImageName(e.Name()) {
			continue
		}
		stats.Scanned++
		path := filepath.Join(p.dir, e.Name())
		if _, ok := keep[path]; ok {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			stats.Failed++
			p.logger.Warn().Err(err).
				Str(xglog.FieldEvent, "mot.orphan_remove_failed").
				Str(xglog.FieldImagePath, path).
				Msg("failed to delete orphaned image")
			continue
		}
		stats.Removed++
		p.logger.Debug().
			Str(xglog.FieldEvent, "mot.orphan_removed").
			Str(xglog.FieldImagePath, path).
			Msg("deleted orphaned image")
	}
	return stats, nil
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
