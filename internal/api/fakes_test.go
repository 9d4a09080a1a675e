// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"context"
	"sync"

	"github.com/ManuGH/padmeta/internal/feed"
)

type fakeCommander struct {
	mu       sync.Mutex
	track    *feed.TrackInput
	program  *feed.ProgramInput
	cleared  []string
	err      error
	snapshot feed.StateView
}

func (f *fakeCommander) SetTrack(_ context.Context, in feed.TrackInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.track = &in
	return nil
}

func (f *fakeCommander) ClearTrack(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, "track")
	return f.err
}

func (f *fakeCommander) SetProgram(_ context.Context, in feed.ProgramInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.program = &in
	return nil
}

func (f *fakeCommander) ClearProgram(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, "program")
	return f.err
}

func (f *fakeCommander) Snapshot(context.Context) feed.StateView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}
