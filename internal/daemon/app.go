// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/padmeta/internal/config"
	"github.com/ManuGH/padmeta/internal/feed"
	xglog "github.com/ManuGH/padmeta/internal/log"
	"github.com/rs/zerolog"
)

// TickerRunner drives the output loop until ctx is cancelled.
type TickerRunner interface {
	Run(ctx context.Context) error
}

// StationSetter applies a station identity from configuration.
type StationSetter interface {
	SetStation(ctx context.Context, in feed.StationInput) error
}

// App owns the long-lived runtime: the ticker loop, config reload wiring
// and the server manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	ticker       TickerRunner
	holder       *config.Holder
	station      StationSetter
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. holder and station may be nil to
// run without config reloads.
func NewApp(logger zerolog.Logger, manager Manager, ticker TickerRunner, holder *config.Holder, station StationSetter) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		ticker:       ticker,
		holder:       holder,
		station:      station,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned subsystems and blocks until ctx is cancelled or one
// of them fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}
	if a.ticker == nil {
		return ErrMissingTicker
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.ticker.Run(ctx)
	})

	if a.holder != nil {
		// The watcher is best-effort: a broken watcher must not stop the encoder feed.
		g.Go(func() error {
			if err := a.holder.Watch(ctx); err != nil {
				a.logger.Warn().Err(err).
					Str(xglog.FieldEvent, "config.watcher_start_failed").
					Msg("failed to start config watcher")
			}
			return nil
		})

		applyCh := make(chan config.AppConfig, 1)
		a.holder.RegisterListener(applyCh)
		current := a.holder.Get()
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case next := <-applyCh:
					a.applyConfig(ctx, &current, next)
				}
			}
		})

		if a.reloadSignal != nil {
			g.Go(func() error {
				hupChan := make(chan os.Signal, 1)
				signal.Notify(hupChan, a.reloadSignal)
				defer signal.Stop(hupChan)

				for {
					select {
					case <-ctx.Done():
						return nil
					case <-hupChan:
						a.logger.Info().
							Str(xglog.FieldEvent, "config.reload_signal").
							Str("signal", a.reloadSignal.String()).
							Msg("received reload signal, reloading config")
						if err := a.holder.Reload(ctx); err != nil {
							a.logger.Warn().Err(err).
								Str(xglog.FieldEvent, "config.reload_failed").
								Msg("config reload failed")
						}
					}
				}
			})
		}
	}

	g.Go(func() error {
		return a.manager.Start(ctx)
	})

	return g.Wait()
}

// applyConfig applies the settings that can change at runtime: the log
// level and the station identity.
func (a *App) applyConfig(ctx context.Context, prev *config.AppConfig, next config.AppConfig) {
	if prev.Log.Level != next.Log.Level {
		if err := xglog.SetLevel(next.Log.Level); err != nil {
			a.logger.Warn().Err(err).Str(xglog.FieldEvent, "config.log_level_failed").Msg("failed to apply log level")
		}
	}

	if prev.Station != next.Station && a.station != nil {
		err := a.station.SetStation(ctx, feed.StationInput{
			Name:      next.Station.Name,
			ImageFile: next.Station.Image,
		})
		if err != nil {
			a.logger.Error().Err(err).
				Str(xglog.FieldEvent, "config.station_apply_failed").
				Msg("failed to apply station from config")
		}
	}

	*prev = next
}
