// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package feed

import (
	"context"
	"sync"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/mot"
)

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	after chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// After returns the channel the test drives; nil blocks forever.
func (c *fakeClock) After(time.Duration) <-chan time.Time {
	return c.after
}

type fakeLabel struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (f *fakeLabel) Write(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, text)
	return f.err
}

func (f *fakeLabel) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func (f *fakeLabel) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return ""
	}
	return f.writes[len(f.writes)-1]
}

type fakeSlides struct {
	mu     sync.Mutex
	synced []*content.Image
	err    error
}

func (f *fakeSlides) Sync(_ context.Context, img *content.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.synced = append(f.synced, img)
	return f.err
}

type fakePool struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (f *fakePool) Reconcile(referenced []string) (mot.ReconcileStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), referenced...))
	return mot.ReconcileStats{Scanned: len(referenced)}, f.err
}
