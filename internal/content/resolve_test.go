// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func station() Station {
	return Station{ID: uuid.New(), Name: "Radio Test"}
}

func TestResolvePrecedence(t *testing.T) {
	live := at(time.Minute)
	dead := at(-time.Minute)

	tests := []struct {
		name        string
		track       *Track
		program     *Program
		want        Kind
		wantTrack   bool
		wantProgram bool
	}{
		{name: "station only", want: KindStation},
		{name: "live track wins over live program", track: &Track{ExpiresAt: live}, program: &Program{ExpiresAt: live}, want: KindTrack, wantTrack: true, wantProgram: true},
		{name: "live program without track", program: &Program{ExpiresAt: live}, want: KindProgram, wantProgram: true},
		{name: "expired track falls to program", track: &Track{ExpiresAt: dead}, program: &Program{ExpiresAt: live}, want: KindProgram, wantProgram: true},
		{name: "expired track and program fall to station", track: &Track{ExpiresAt: dead}, program: &Program{ExpiresAt: dead}, want: KindStation},
		{name: "expired track without program", track: &Track{ExpiresAt: dead}, want: KindStation},
		{name: "track without expiry", track: &Track{}, program: &Program{ExpiresAt: live}, want: KindTrack, wantTrack: true, wantProgram: true},
		{name: "program without expiry", program: &Program{}, want: KindProgram, wantProgram: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &State{Track: tt.track, Program: tt.program, Station: station()}
			got := Resolve(st, now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTrack, st.Track != nil, "track presence")
			assert.Equal(t, tt.wantProgram, st.Program != nil, "program presence")
		})
	}
}

func TestResolveExpiryBoundaryIsExclusive(t *testing.T) {
	st := &State{Track: &Track{ExpiresAt: at(0)}, Program: &Program{ExpiresAt: at(time.Nanosecond)}, Station: station()}

	require.Equal(t, KindProgram, Resolve(st, now))
	assert.Nil(t, st.Track, "track expiring exactly now must be cleared")

	require.Equal(t, KindStation, Resolve(st, now.Add(time.Nanosecond)))
	assert.Nil(t, st.Program)
}

func TestResolveNoExpiryLastsForever(t *testing.T) {
	st := &State{Track: &Track{}, Station: station()}
	assert.Equal(t, KindTrack, Resolve(st, now.Add(100*365*24*time.Hour)))
	assert.NotNil(t, st.Track)
}

func TestIdentify(t *testing.T) {
	tr := &Track{ID: uuid.New()}
	pr := &Program{ID: uuid.New()}
	st := &State{Track: tr, Program: pr, Station: station()}

	assert.Equal(t, Resolved{Kind: KindTrack, ID: tr.ID, Valid: true}, Identify(st, KindTrack))
	assert.Equal(t, Resolved{Kind: KindProgram, ID: pr.ID, Valid: true}, Identify(st, KindProgram))
	assert.Equal(t, Resolved{Kind: KindStation, ID: st.Station.ID, Valid: true}, Identify(st, KindStation))

	empty := &State{}
	assert.False(t, Identify(empty, KindStation).Valid)
}

func TestActiveImageFallback(t *testing.T) {
	x := &Image{Path: "/pool/x.png", Name: "x.png", Type: ImagePNG}
	y := &Image{Path: "/pool/y.jpg", Name: "y.jpg", Type: ImageJPEG}
	z := &Image{Path: "/pool/z.jpg", Name: "z.jpg", Type: ImageJPEG}

	st := &State{
		Track:   &Track{},
		Program: &Program{Image: x},
		Station: Station{Image: y},
	}
	assert.Same(t, x, ActiveImage(st, KindTrack), "track without art shows program art")

	st.Program.Image = nil
	assert.Same(t, y, ActiveImage(st, KindTrack), "then station art")

	st.Track.Image = z
	assert.Same(t, z, ActiveImage(st, KindTrack))

	st.Program.Image = x
	assert.Same(t, x, ActiveImage(st, KindProgram))
	assert.Same(t, y, ActiveImage(st, KindStation), "station never borrows program art")

	st.Station.Image = nil
	assert.Nil(t, ActiveImage(st, KindStation))
}

func TestReferencedImages(t *testing.T) {
	st := &State{
		Track:   &Track{Image: &Image{Path: "/pool/a.jpg"}},
		Program: &Program{},
		Station: Station{Image: &Image{Path: "/pool/c.png"}},
	}
	assert.ElementsMatch(t, []string{"/pool/a.jpg", "/pool/c.png"}, ReferencedImages(st))
}

func TestActiveFor(t *testing.T) {
	st := &State{
		Track:   &Track{ID: uuid.New(), Item: Item{Title: "SOS", Artist: "Abba"}},
		Program: &Program{ID: uuid.New(), Name: "Morning Show"},
		Station: Station{ID: uuid.New(), Name: "Radio Test"},
	}

	a := ActiveFor(st, KindTrack)
	assert.Equal(t, Active{Kind: KindTrack, ID: st.Track.ID, Title: "SOS", Artist: "Abba"}, a)

	a = ActiveFor(st, KindProgram)
	assert.Equal(t, "Morning Show", a.Name)

	st.Track = nil
	a = ActiveFor(st, KindTrack)
	assert.Equal(t, KindStation, a.Kind, "missing slot degrades to station")
	assert.Equal(t, "Radio Test", a.Name)
}
