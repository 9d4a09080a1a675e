// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which slot is authoritative.
type Kind int

const (
	KindStation Kind = iota
	KindProgram
	KindTrack
)

func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindProgram:
		return "program"
	case KindStation:
		return "station"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText renders the kind as its lower-case name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Resolved is the identity used for change detection between ticks.
type Resolved struct {
	Kind  Kind
	ID    uuid.UUID
	Valid bool // false only when the station id has not been assigned
}

// valid reports whether content with the given expiry is still live at now.
// Content expires exactly at ExpiresAt.
func valid(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || expiresAt.After(now)
}

// Resolve applies the precedence Track > Program > Station and clears every
// expired slot it walks past.
func Resolve(st *State, now time.Time) Kind {
	if st.Track != nil {
		if valid(st.Track.ExpiresAt, now) {
			return KindTrack
		}
		st.Track = nil
	}
	if st.Program != nil {
		if valid(st.Program.ExpiresAt, now) {
			return KindProgram
		}
		st.Program = nil
	}
	return KindStation
}

// Identify returns the identity of the slot k points to.
func Identify(st *State, k Kind) Resolved {
	r := Resolved{Kind: k}
	switch k {
	case KindTrack:
		if st.Track != nil {
			r.ID = st.Track.ID
		}
	case KindProgram:
		if st.Program != nil {
			r.ID = st.Program.ID
		}
	default:
		r.ID = st.Station.ID
	}
	r.Valid = r.ID != uuid.Nil
	return r
}

// ActiveImage returns the image that should be on air for k, falling back
// from track to program to station art.
func ActiveImage(st *State, k Kind) *Image {
	if k == KindTrack && st.Track != nil && st.Track.Image != nil {
		return st.Track.Image
	}
	if (k == KindTrack || k == KindProgram) && st.Program != nil && st.Program.Image != nil {
		return st.Program.Image
	}
	return st.Station.Image
}

// ReferencedImages lists the pool paths still owned by a live slot.
func ReferencedImages(st *State) []string {
	var out []string
	if st.Track != nil && st.Track.Image != nil {
		out = append(out, st.Track.Image.Path)
	}
	if st.Program != nil && st.Program.Image != nil {
		out = append(out, st.Program.Image.Path)
	}
	if st.Station.Image != nil {
		out = append(out, st.Station.Image.Path)
	}
	return out
}
