// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api serves the control API that updates track and program
// metadata and reports the resolved encoder state.
package api

import (
	"context"
	"net/http"

	"github.com/ManuGH/padmeta/internal/feed"
	"github.com/ManuGH/padmeta/internal/health"
)

// Commander is the subset of feed.Commands the API drives.
type Commander interface {
	SetTrack(ctx context.Context, in feed.TrackInput) error
	ClearTrack(ctx context.Context) error
	SetProgram(ctx context.Context, in feed.ProgramInput) error
	ClearProgram(ctx context.Context) error
	Snapshot(ctx context.Context) feed.StateView
}

// Config holds the request-facing settings of the API.
type Config struct {
	Token          string
	AuthAnonymous  bool
	RateLimit      int   // requests per minute and client IP; 0 disables
	MaxUploadBytes int64 // request body limit for command endpoints
	TracingService string
}

// Server represents the HTTP control API.
type Server struct {
	cfg    Config
	cmds   Commander
	health *health.Manager
}

// New creates a Server. hm may be nil, in which case the probe endpoints
// are not registered.
func New(cfg Config, cmds Commander, hm *health.Manager) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Server{cfg: cfg, cmds: cmds, health: hm}
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.routes()
}
