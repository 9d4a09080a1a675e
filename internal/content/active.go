// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import "github.com/google/uuid"

// Active is the render payload for the authoritative slot. Only the fields
// relevant to Kind are set: Title/Artist for tracks, Name otherwise.
type Active struct {
	Kind   Kind
	ID     uuid.UUID
	Title  string
	Artist string
	Name   string
}

// ActiveFor builds the render payload for k. A kind whose slot is empty
// degrades to the station, which is always present.
func ActiveFor(st *State, k Kind) Active {
	switch {
	case k == KindTrack && st.Track != nil:
		return Active{Kind: KindTrack, ID: st.Track.ID, Title: st.Track.Item.Title, Artist: st.Track.Item.Artist}
	case k == KindProgram && st.Program != nil:
		return Active{Kind: KindProgram, ID: st.Program.ID, Name: st.Program.Name}
	default:
		return Active{Kind: KindStation, ID: st.Station.ID, Name: st.Station.Name}
	}
}
