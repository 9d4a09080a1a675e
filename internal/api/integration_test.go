// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/dls"
	"github.com/ManuGH/padmeta/internal/feed"
	"github.com/ManuGH/padmeta/internal/health"
	"github.com/ManuGH/padmeta/internal/mot"
)

func TestEndToEndTrackLifecycle(t *testing.T) {
	root := t.TempDir()
	pool, err := mot.NewPool(filepath.Join(root, "images"))
	require.NoError(t, err)
	mirror, err := mot.NewMirror(filepath.Join(root, "mot"))
	require.NoError(t, err)
	writer := dls.NewWriter(filepath.Join(root, "dls.txt"))

	store := content.NewStore(content.Station{ID: uuid.New(), Name: "Radio One"})
	ticker := feed.NewTicker(store, writer, mirror, pool, feed.Config{})
	cmds := feed.NewCommands(store, ticker, pool)
	require.NoError(t, ticker.Publish(t.Context()))

	hm := health.NewManager("test")
	hm.RegisterChecker(health.NewFileChecker("dls_file", writer.Path()))
	h := New(Config{Token: testToken}, cmds, hm).Handler()

	// Probes need no token.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	ct, body := multipartBody(t,
		formPart{name: "track_info", data: []byte(`{"item":{"title":"SOS","artist":"Abba"}}`)},
		formPart{name: "image", contentType: "image/png", data: pngMagic},
	)
	w = do(t, h, http.MethodPost, "/track", ct, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	label, err := writer.Read()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(label, "Abba - SOS"), label)

	w = do(t, h, http.MethodGet, "/state", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view feed.StateView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, content.KindTrack, view.Kind)
	assert.Equal(t, "Abba - SOS", view.Text)
	require.NotEmpty(t, view.Image)

	_, err = os.Stat(filepath.Join(mirror.Dir(), view.Image))
	require.NoError(t, err, "slideshow should hold the track image")

	w = do(t, h, http.MethodDelete, "/track", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	entries, err := os.ReadDir(mirror.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "station has no image")
	entries, err = os.ReadDir(pool.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "released upload is deleted")

	w = do(t, h, http.MethodGet, "/state", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, content.KindStation, view.Kind)
	assert.Equal(t, "Radio One", view.Text)
}

func TestEndToEndRejectsBadImage(t *testing.T) {
	root := t.TempDir()
	pool, err := mot.NewPool(filepath.Join(root, "images"))
	require.NoError(t, err)
	mirror, err := mot.NewMirror(filepath.Join(root, "mot"))
	require.NoError(t, err)
	store := content.NewStore(content.Station{ID: uuid.New(), Name: "Radio One"})
	ticker := feed.NewTicker(store, dls.NewWriter(filepath.Join(root, "dls.txt")), mirror, pool, feed.Config{Interval: time.Second})
	h := New(Config{Token: testToken}, feed.NewCommands(store, ticker, pool), nil).Handler()

	ct, body := multipartBody(t,
		formPart{name: "program_info", data: []byte(`{"name":"News"}`)},
		formPart{name: "image", contentType: "image/gif", data: []byte("GIF89a")},
	)
	w := do(t, h, http.MethodPost, "/program", ct, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w), "unsupported image format")

	entries, err := os.ReadDir(pool.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
