// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/padmeta/internal/api/middleware"
	"github.com/ManuGH/padmeta/internal/auth"
)

func (s *Server) routes() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		TracingService:        s.cfg.TracingService,
		EnableLogging:         true,
		RateLimit:             s.cfg.RateLimit,
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	s.registerPublicRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.cfg.Token, s.cfg.AuthAnonymous))
		s.registerCommandRoutes(r)
	})
	return r
}

// registerPublicRoutes wires the unauthenticated probe endpoints.
func (s *Server) registerPublicRoutes(r chi.Router) {
	if s.health == nil {
		return
	}
	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
}

func (s *Server) registerCommandRoutes(r chi.Router) {
	r.Post("/track", s.handleSetTrack)
	r.Delete("/track", s.handleClearTrack)
	r.Post("/program", s.handleSetProgram)
	r.Delete("/program", s.handleClearProgram)
	r.Get("/state", s.handleState)
}
