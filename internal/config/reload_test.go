// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func stationYAML(name string) string {
	return "station:\n  name: " + name + "\napi:\n  token: secret\n"
}

func TestHolderReload(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "padmeta.yaml", stationYAML("Radio One"))
	loader := NewLoader(path, "dev")
	initial, err := loader.Load()
	require.NoError(t, err)

	h := NewHolder(initial, loader)
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte(stationYAML("Radio Two")), 0o600))
	require.NoError(t, h.Reload(context.Background()))
	assert.Equal(t, "Radio Two", h.Get().Station.Name)

	select {
	case cfg := <-ch:
		assert.Equal(t, "Radio Two", cfg.Station.Name)
	default:
		t.Fatal("listener not notified")
	}
}

func TestHolderReloadKeepsOldOnError(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "padmeta.yaml", stationYAML("Radio One"))
	loader := NewLoader(path, "dev")
	initial, err := loader.Load()
	require.NoError(t, err)
	h := NewHolder(initial, loader)

	require.NoError(t, os.WriteFile(path, []byte("station:\n  name: \"\"\n"), 0o600))
	require.Error(t, h.Reload(context.Background()))
	assert.Equal(t, "Radio One", h.Get().Station.Name)
}

func TestHolderWatchReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	clearEnv(t)

	path := writeFile(t, "padmeta.yaml", stationYAML("Radio One"))
	loader := NewLoader(path, "dev")
	initial, err := loader.Load()
	require.NoError(t, err)
	h := NewHolder(initial, loader)
	ch := make(chan AppConfig, 4)
	h.RegisterListener(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx) }()

	// Give the watcher time to register before changing the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(stationYAML("Radio Two")), 0o600))

	select {
	case cfg := <-ch:
		assert.Equal(t, "Radio Two", cfg.Station.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded after file change")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestHolderWatchWithoutFile(t *testing.T) {
	h := NewHolder(Defaults(), NewLoader("", "dev"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.Watch(ctx))
}
