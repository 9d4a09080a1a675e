// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package feed

import (
	"context"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/dls"
	"github.com/google/uuid"
)

// StateView is a read-only copy of the store after resolution.
type StateView struct {
	Kind    content.Kind `json:"kind"`
	ID      uuid.UUID    `json:"id"`
	Text    string       `json:"text"`
	Image   string       `json:"image,omitempty"` // slideshow file name
	Toggle  bool         `json:"toggle"`
	Track   *TrackView   `json:"track,omitempty"`
	Program *ProgramView `json:"program,omitempty"`
	Station StationView  `json:"station"`
}

type TrackView struct {
	ID        uuid.UUID    `json:"id"`
	Item      content.Item `json:"item"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Image     string       `json:"image,omitempty"`
}

type ProgramView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Image     string     `json:"image,omitempty"`
}

type StationView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image,omitempty"`
}

func imageName(img *content.Image) string {
	if img == nil {
		return ""
	}
	return img.Name
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// Snapshot resolves the store at the current time and returns a copy of it.
// Expired slots are cleared exactly as a tick would; the next tick still
// notices the change and re-renders.
func (c *Commands) Snapshot(_ context.Context) StateView {
	var v StateView
	_ = c.store.Do(func(st *content.State) error {
		kind := content.Resolve(st, c.ticker.clock.Now())
		active := content.ActiveFor(st, kind)

		v = StateView{
			Kind:   active.Kind,
			ID:     active.ID,
			Text:   dls.Build(active, c.ticker.toggle).Text,
			Image:  imageName(content.ActiveImage(st, kind)),
			Toggle: c.ticker.toggle,
			Station: StationView{
				ID:    st.Station.ID,
				Name:  st.Station.Name,
				Image: imageName(st.Station.Image),
			},
		}
		if st.Track != nil {
			v.Track = &TrackView{
				ID:        st.Track.ID,
				Item:      st.Track.Item,
				ExpiresAt: copyTime(st.Track.ExpiresAt),
				Image:     imageName(st.Track.Image),
			}
		}
		if st.Program != nil {
			v.Program = &ProgramView{
				ID:        st.Program.ID,
				Name:      st.Program.Name,
				ExpiresAt: copyTime(st.Program.ExpiresAt),
				Image:     imageName(st.Program.Image),
			}
		}
		return nil
	})
	return v
}
