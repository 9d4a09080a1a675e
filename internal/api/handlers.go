// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"net/http"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/feed"
)

// Multipart form field names.
const (
	fieldTrackInfo   = "track_info"
	fieldProgramInfo = "program_info"
	fieldImage       = "image"
)

type trackRequest struct {
	Item      content.Item `json:"item"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

type programRequest struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type statusResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleSetTrack(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	img, err := s.decodeCommand(w, r, fieldTrackInfo, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in := feed.TrackInput{Item: req.Item, ExpiresAt: req.ExpiresAt, Image: img}
	if err := s.cmds.SetTrack(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "track updated"})
}

func (s *Server) handleClearTrack(w http.ResponseWriter, r *http.Request) {
	if err := s.cmds.ClearTrack(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "track cleared"})
}

func (s *Server) handleSetProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	img, err := s.decodeCommand(w, r, fieldProgramInfo, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in := feed.ProgramInput{Name: req.Name, ExpiresAt: req.ExpiresAt, Image: img}
	if err := s.cmds.SetProgram(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "program updated"})
}

func (s *Server) handleClearProgram(w http.ResponseWriter, r *http.Request) {
	if err := s.cmds.ClearProgram(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "program cleared"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cmds.Snapshot(r.Context()))
}
