// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestMirrorSync(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t)
	m, err := NewMirror(filepath.Join(t.TempDir(), "mot"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(m.Dir(), "stale.jpg"), []byte("old"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(m.Dir(), "keepdir"), 0o750))

	a, err := p.Store([]byte("A"), "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, m.Sync(ctx, a))
	assert.ElementsMatch(t, []string{a.Name, "keepdir"}, listNames(t, m.Dir()))

	data, err := os.ReadFile(filepath.Join(m.Dir(), a.Name))
	require.NoError(t, err)
	assert.Equal(t, "A", string(data))

	b, err := p.Store([]byte("B"), "image/png")
	require.NoError(t, err)
	require.NoError(t, m.Sync(ctx, b))
	assert.ElementsMatch(t, []string{b.Name, "keepdir"}, listNames(t, m.Dir()))

	require.NoError(t, m.Sync(ctx, nil))
	assert.ElementsMatch(t, []string{"keepdir"}, listNames(t, m.Dir()))
}

func TestMirrorSyncMissingSource(t *testing.T) {
	m, err := NewMirror(t.TempDir())
	require.NoError(t, err)

	img := &content.Image{Type: content.ImagePNG, Path: filepath.Join(t.TempDir(), "gone.png"), Name: "gone.png"}
	err = m.Sync(context.Background(), img)
	require.ErrorIs(t, err, content.ErrFileProcessing)
	assert.Empty(t, listNames(t, m.Dir()))
}

func TestMirrorRejectsEscapingName(t *testing.T) {
	p := newTestPool(t)
	m, err := NewMirror(t.TempDir())
	require.NoError(t, err)

	img, err := p.Store([]byte("x"), "image/png")
	require.NoError(t, err)
	img.Name = "../escape.png"

	err = m.Sync(context.Background(), img)
	require.ErrorIs(t, err, content.ErrFileProcessing)
}

func TestMirrorStagesOutsideSlideshowDir(t *testing.T) {
	p := newTestPool(t)
	m, err := NewMirror(filepath.Join(t.TempDir(), "mot"))
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(filepath.Dir(m.Dir()), ".mot-staging"))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	require.NoError(t, w.Add(m.Dir()))

	img, err := p.Store([]byte("slide"), "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, m.Sync(context.Background(), img))

	var created []string
	quiet := time.After(300 * time.Millisecond)
	for done := false; !done; {
		select {
		case ev := <-w.Events:
			if ev.Has(fsnotify.Create) {
				created = append(created, filepath.Base(ev.Name))
			}
		case err := <-w.Errors:
			require.NoError(t, err)
		case <-quiet:
			done = true
		}
	}

	assert.Equal(t, []string{img.Name}, created, "only the finished image appears in the slideshow dir")
	assert.Equal(t, []string{img.Name}, listNames(t, m.Dir()))
	assert.Empty(t, listNames(t, filepath.Join(filepath.Dir(m.Dir()), ".mot-staging")))
}
