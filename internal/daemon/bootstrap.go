// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package daemon wires the content store, outputs and servers into a
// running process and manages their lifecycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/padmeta/internal/api"
	"github.com/ManuGH/padmeta/internal/config"
	"github.com/ManuGH/padmeta/internal/content"
	"github.com/ManuGH/padmeta/internal/dls"
	"github.com/ManuGH/padmeta/internal/feed"
	"github.com/ManuGH/padmeta/internal/health"
	xglog "github.com/ManuGH/padmeta/internal/log"
	"github.com/ManuGH/padmeta/internal/mot"
	"github.com/ManuGH/padmeta/internal/telemetry"
)

const serviceName = "padmeta"

// minTickerStall is the lower bound for the ticker liveness threshold.
const minTickerStall = 2 * time.Second

// Components is the runtime wired from one configuration.
type Components struct {
	Store     *content.Store
	Pool      *mot.Pool
	Mirror    *mot.Mirror
	Writer    *dls.Writer
	Ticker    *feed.Ticker
	Commands  *feed.Commands
	Health    *health.Manager
	Telemetry *telemetry.Provider
	API       *api.Server
}

// Bootstrap prepares the output directories, seeds the station, performs
// the initial publish and builds the API. Any error is fatal for startup.
func Bootstrap(ctx context.Context, cfg config.AppConfig) (*Components, error) {
	logger := xglog.WithComponent("daemon")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Tracing.Environment,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		logger.Warn().Err(err).
			Str(xglog.FieldEvent, "telemetry.init_failed").
			Msg("telemetry initialization failed, continuing without tracing")
		tp, _ = telemetry.NewProvider(ctx, telemetry.Config{})
	}

	pool, err := mot.NewPool(cfg.Outputs.ImageDir)
	if err != nil {
		return nil, fmt.Errorf("prepare image dir: %w", err)
	}
	mirror, err := mot.NewMirror(cfg.Outputs.MOTDir)
	if err != nil {
		return nil, fmt.Errorf("prepare slideshow dir: %w", err)
	}
	if err := mirror.Clear(); err != nil {
		return nil, fmt.Errorf("clear slideshow dir: %w", err)
	}
	writer := dls.NewWriter(cfg.Outputs.DLSFile)

	station := content.Station{
		ID:   uuid.New(),
		Name: content.NormalizeText(cfg.Station.Name),
	}
	if cfg.Station.Image != "" {
		img, err := pool.LoadDefault(cfg.Station.Image)
		switch {
		case errors.Is(err, content.ErrNotFound):
			logger.Warn().Err(err).
				Str(xglog.FieldEvent, "daemon.station_image_missing").
				Str(xglog.FieldPath, cfg.Station.Image).
				Msg("default station image not found, starting without image")
		case err != nil:
			return nil, fmt.Errorf("load station image: %w", err)
		default:
			station.Image = img
		}
	}

	store := content.NewStore(station)
	ticker := feed.NewTicker(store, writer, mirror, pool, feed.Config{
		Interval:     cfg.Ticker.Interval,
		CleanupEvery: cfg.Ticker.CleanupEvery,
	})
	cmds := feed.NewCommands(store, ticker, pool)

	if err := ticker.Publish(ctx); err != nil {
		return nil, fmt.Errorf("initial publish: %w", err)
	}

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewFileChecker("dls_file", writer.Path()))
	hm.RegisterChecker(health.NewDirChecker("mot_dir", mirror.Dir()))
	hm.RegisterChecker(health.NewDirChecker("image_dir", pool.Dir()))
	hm.RegisterChecker(health.NewTickerChecker(ticker.LastTick, tickerStall(ticker.Interval())))

	tracing := ""
	if tp.Enabled() {
		tracing = serviceName
	}
	srv := api.New(api.Config{
		Token:          cfg.API.Token,
		AuthAnonymous:  cfg.API.AuthAnonymous,
		RateLimit:      cfg.API.RateLimit,
		MaxUploadBytes: cfg.API.MaxUploadBytes,
		TracingService: tracing,
	}, cmds, hm)

	logger.Info().
		Str(xglog.FieldEvent, "daemon.bootstrapped").
		Str(xglog.FieldName, station.Name).
		Bool("station_image", station.Image != nil).
		Str("dls_file", writer.Path()).
		Str("mot_dir", mirror.Dir()).
		Str("image_dir", pool.Dir()).
		Msg("content pipeline ready")

	return &Components{
		Store:     store,
		Pool:      pool,
		Mirror:    mirror,
		Writer:    writer,
		Ticker:    ticker,
		Commands:  cmds,
		Health:    hm,
		Telemetry: tp,
		API:       srv,
	}, nil
}

// tickerStall is how long the ticker may go without completing a tick
// before readiness fails.
func tickerStall(interval time.Duration) time.Duration {
	return max(20*interval, minTickerStall)
}
