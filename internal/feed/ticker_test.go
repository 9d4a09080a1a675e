// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package feed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type tickerFixture struct {
	store  *content.Store
	clock  *fakeClock
	label  *fakeLabel
	slides *fakeSlides
	pool   *fakePool
	ticker *Ticker
}

func newTickerFixture(cleanupEvery int) *tickerFixture {
	f := &tickerFixture{
		store:  content.NewStore(content.Station{ID: uuid.New(), Name: "Radio One", Image: &content.Image{Type: content.ImagePNG, Path: "/pool/station.png", Name: "station.png"}}),
		clock:  newFakeClock(),
		label:  &fakeLabel{},
		slides: &fakeSlides{},
		pool:   &fakePool{},
	}
	f.ticker = NewTicker(f.store, f.label, f.slides, f.pool, Config{CleanupEvery: cleanupEvery, Clock: f.clock})
	return f
}

func (f *tickerFixture) setTrack(title string, expiresAt *time.Time, img *content.Image) uuid.UUID {
	id := uuid.New()
	_ = f.store.Do(func(st *content.State) error {
		st.Track = &content.Track{ID: id, Item: content.Item{Title: title}, ExpiresAt: expiresAt, Image: img}
		return nil
	})
	return id
}

func TestTickerRendersOnlyOnChange(t *testing.T) {
	f := newTickerFixture(1000)
	ctx := context.Background()

	f.ticker.Tick(ctx)
	f.ticker.Tick(ctx)
	f.ticker.Tick(ctx)
	require.Equal(t, 1, f.label.count(), "first tick renders, later no-op ticks do not")
	assert.Contains(t, f.label.last(), "DL_PLUS_ITEM_TOGGLE=1\n")
	assert.True(t, strings.HasSuffix(f.label.last(), "\nRadio One"))

	f.setTrack("SOS", nil, nil)
	f.ticker.Tick(ctx)
	f.ticker.Tick(ctx)
	require.Equal(t, 2, f.label.count())
	assert.Contains(t, f.label.last(), "DL_PLUS_ITEM_TOGGLE=0\n")
	assert.Contains(t, f.label.last(), "DL_PLUS_ITEM_RUNNING=1\n")

	// Same kind, new id.
	f.setTrack("Waterloo", nil, nil)
	f.ticker.Tick(ctx)
	require.Equal(t, 3, f.label.count())
	assert.Contains(t, f.label.last(), "DL_PLUS_ITEM_TOGGLE=1\n")
}

func TestTickerExpiryFallsBackToStation(t *testing.T) {
	f := newTickerFixture(1000)
	ctx := context.Background()

	expires := f.clock.Now().Add(time.Second)
	trackImg := &content.Image{Type: content.ImageJPEG, Path: "/pool/t.jpg", Name: "t.jpg"}
	f.setTrack("SOS", &expires, trackImg)

	f.ticker.Tick(ctx)
	require.Equal(t, 1, f.label.count())
	assert.Same(t, trackImg, f.slides.synced[0])

	f.clock.Advance(time.Second) // now == expiresAt is expired
	f.ticker.Tick(ctx)
	require.Equal(t, 2, f.label.count())
	assert.True(t, strings.HasSuffix(f.label.last(), "\nRadio One"))
	assert.Equal(t, "station.png", f.slides.synced[1].Name)

	_ = f.store.Do(func(st *content.State) error {
		assert.Nil(t, st.Track)
		return nil
	})
}

func TestTickerCleanupCadence(t *testing.T) {
	f := newTickerFixture(3)
	for i := 0; i < 7; i++ {
		f.ticker.Tick(context.Background())
	}
	assert.Len(t, f.pool.calls, 2)
}

func TestTickerReconcilesPostResolutionState(t *testing.T) {
	f := newTickerFixture(1)
	expires := f.clock.Now().Add(-time.Millisecond)
	f.setTrack("gone", &expires, &content.Image{Type: content.ImageJPEG, Path: "/pool/t.jpg", Name: "t.jpg"})

	f.ticker.Tick(context.Background())
	require.Len(t, f.pool.calls, 1)
	assert.Equal(t, []string{"/pool/station.png"}, f.pool.calls[0])
}

func TestTickerRetriesFailedRender(t *testing.T) {
	f := newTickerFixture(1000)
	ctx := context.Background()
	f.label.err = content.ErrFileProcessing
	f.slides.err = content.ErrFileProcessing

	f.ticker.Tick(ctx)
	f.ticker.Tick(ctx)
	assert.Equal(t, 2, f.label.count(), "failed render is retried while outputs fail")
	assert.False(t, f.ticker.LastTick().IsZero())

	f.label.err = nil
	f.slides.err = nil
	f.ticker.Tick(ctx)
	assert.Equal(t, 3, f.label.count(), "render is retried once the writer recovers")

	f.ticker.Tick(ctx)
	assert.Equal(t, 3, f.label.count(), "no re-render after a successful pass")
}

func TestTickRetriesFailedPublish(t *testing.T) {
	f := newTickerFixture(1000)
	ctx := context.Background()

	f.label.err = content.ErrFileProcessing
	require.ErrorIs(t, f.ticker.Publish(ctx), content.ErrFileProcessing)

	f.label.err = nil
	f.ticker.Tick(ctx)
	assert.Equal(t, 2, f.label.count())
}

func TestPublishAlwaysRenders(t *testing.T) {
	f := newTickerFixture(1000)
	ctx := context.Background()

	require.NoError(t, f.ticker.Publish(ctx))
	require.NoError(t, f.ticker.Publish(ctx))
	require.Equal(t, 2, f.label.count())
	assert.Contains(t, f.label.writes[0], "DL_PLUS_ITEM_TOGGLE=1\n")
	assert.Contains(t, f.label.writes[1], "DL_PLUS_ITEM_TOGGLE=0\n")

	// Publish records identity, so the next tick has nothing to do.
	f.ticker.Tick(ctx)
	assert.Equal(t, 2, f.label.count())

	f.label.err = content.ErrFileProcessing
	err := f.ticker.Publish(ctx)
	require.ErrorIs(t, err, content.ErrFileProcessing)
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := newTickerFixture(2)
	f.clock.after = make(chan time.Time)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.ticker.Run(ctx) }()

	for i := 0; i < 3; i++ {
		f.clock.after <- f.clock.Now()
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, uint64(3), f.ticker.ticks)
	assert.Equal(t, 1, f.label.count())
	assert.Len(t, f.pool.calls, 1)
}
