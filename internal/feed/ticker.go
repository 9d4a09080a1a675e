// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/dls"
	xglog "github.com/ManuGH/padmeta/internal/log"
	"github.com/ManuGH/padmeta/internal/metrics"
	"github.com/ManuGH/padmeta/internal/mot"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultInterval     = 50 * time.Millisecond
	DefaultCleanupEvery = 20

	TriggerTick    = "tick"
	TriggerCommand = "command"
)

// LabelWriter receives the rendered DLS file.
type LabelWriter interface {
	Write(ctx context.Context, text string) error
}

// Slideshow mirrors the active image.
type Slideshow interface {
	Sync(ctx context.Context, img *content.Image) error
}

// Reconciler deletes pool images no slot references anymore.
type Reconciler interface {
	Reconcile(referenced []string) (mot.ReconcileStats, error)
}

// Config tunes the ticker. Zero values select the defaults.
type Config struct {
	Interval     time.Duration
	CleanupEvery int
	Clock        Clock
}

// Ticker owns the toggle bit and the identity of the content currently on
// air. All of its state is only touched while holding the store lock.
type Ticker struct {
	store  *content.Store
	label  LabelWriter
	slides Slideshow
	pool   Reconciler

	clock        Clock
	interval     time.Duration
	cleanupEvery uint64

	last   content.Resolved
	seen   bool
	dirty  bool
	toggle bool
	ticks  uint64

	lastTick   atomic.Int64
	errLimiter *rate.Limiter
	suppressed int
	logger     zerolog.Logger
}

// NewTicker creates a ticker over store writing to the given outputs.
func NewTicker(store *content.Store, label LabelWriter, slides Slideshow, pool Reconciler, cfg Config) *Ticker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.CleanupEvery <= 0 {
		cfg.CleanupEvery = DefaultCleanupEvery
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Ticker{
		store:        store,
		label:        label,
		slides:       slides,
		pool:         pool,
		clock:        cfg.Clock,
		interval:     cfg.Interval,
		cleanupEvery: uint64(cfg.CleanupEvery),
		errLimiter:   rate.NewLimiter(rate.Every(10*time.Second), 3),
		logger:       xglog.WithComponent("feed.ticker"),
	}
}

// Run ticks until ctx is cancelled.
func (t *Ticker) Run(ctx context.Context) error {
	t.logger.Info().
		Str(xglog.FieldEvent, "feed.ticker_started").
		Dur("interval", t.interval).
		Uint64("cleanup_every", t.cleanupEvery).
		Msg("ticker started")
	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Str(xglog.FieldEvent, "feed.ticker_stopped").Msg("ticker stopped")
			return nil
		case <-t.clock.After(t.interval):
			t.Tick(ctx)
		}
	}
}

// Tick performs one pass: resolve, re-render on change or after a failed
// render, and reconcile the image pool every CleanupEvery ticks. Output
// failures are logged.
func (t *Ticker) Tick(ctx context.Context) {
	_ = t.store.Do(func(st *content.State) error {
		now := t.clock.Now()
		kind := content.Resolve(st, now)
		id := content.Identify(st, kind)

		changed := !t.seen || id.Kind != t.last.Kind || id.ID != t.last.ID
		if changed {
			metrics.IncContentChange()
			t.logger.Info().
				Str(xglog.FieldEvent, "feed.content_changed").
				Stringer(xglog.FieldKind, kind).
				Str(xglog.FieldContentID, id.ID.String()).
				Msg("content changed")
		}
		if changed || t.dirty {
			if err := t.render(ctx, st, kind, TriggerTick); err != nil {
				t.logFailure(err, "feed.render_failed", "failed to update PAD outputs")
			}
		}

		t.ticks++
		metrics.IncTick()
		if t.ticks%t.cleanupEvery == 0 {
			t.reconcile(st)
		}
		t.lastTick.Store(now.UnixNano())
		return nil
	})
}

// Publish renders the current content unconditionally. Errors from both
// outputs are returned joined.
func (t *Ticker) Publish(ctx context.Context) error {
	return t.store.Do(func(st *content.State) error {
		return t.publishLocked(ctx, st, TriggerCommand)
	})
}

func (t *Ticker) publishLocked(ctx context.Context, st *content.State, trigger string) error {
	kind := content.Resolve(st, t.clock.Now())
	return t.render(ctx, st, kind, trigger)
}

// render flips the toggle and writes both outputs. A failed output marks
// the ticker dirty so the next tick renders again.
func (t *Ticker) render(ctx context.Context, st *content.State, kind content.Kind, trigger string) error {
	t.toggle = !t.toggle
	active := content.ActiveFor(st, kind)

	var errs []error
	if err := t.label.Write(ctx, dls.Render(active, t.toggle)); err != nil {
		metrics.IncOutputFailure("dls")
		errs = append(errs, err)
	}
	if err := t.slides.Sync(ctx, content.ActiveImage(st, kind)); err != nil {
		metrics.IncOutputFailure("mot")
		errs = append(errs, err)
	}

	t.last = content.Identify(st, kind)
	t.seen = true
	t.dirty = len(errs) > 0
	metrics.IncRender(trigger)
	metrics.SetActiveKind(kind.String())

	t.logger.Debug().
		Str(xglog.FieldEvent, "feed.rendered").
		Str(xglog.FieldTrigger, trigger).
		Stringer(xglog.FieldKind, kind).
		Bool(xglog.FieldToggle, t.toggle).
		Msg("rendered PAD outputs")
	return errors.Join(errs...)
}

func (t *Ticker) reconcile(st *content.State) {
	stats, err := t.pool.Reconcile(content.ReferencedImages(st))
	if err != nil {
		t.logFailure(err, "feed.reconcile_failed", "image pool reconciliation failed")
		return
	}
	if stats.Removed > 0 || stats.Failed > 0 {
		t.logger.Info().
			Str(xglog.FieldEvent, "feed.reconciled").
			Int("scanned", stats.Scanned).
			Int("removed", stats.Removed).
			Int("failed", stats.Failed).
			Msg("reconciled image pool")
	}
}

// logFailure logs at most a few errors per window. The number of dropped
// lines is attached to the next one that gets through.
func (t *Ticker) logFailure(err error, event, msg string) {
	if !t.errLimiter.Allow() {
		t.suppressed++
		return
	}
	t.logger.Error().Err(err).
		Str(xglog.FieldEvent, event).
		Int("suppressed", t.suppressed).
		Msg(msg)
	t.suppressed = 0
}

// LastTick returns the time of the most recent completed tick, or the zero
// time if none has run yet.
func (t *Ticker) LastTick() time.Time {
	ns := t.lastTick.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Interval returns the configured tick period.
func (t *Ticker) Interval() time.Duration { return t.interval }
