// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"time"

	"github.com/ManuGH/padmeta/internal/validate"
)

// Validate checks a merged AppConfig. All problems are reported at once.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty("station.name", cfg.Station.Name)

	v.ListenAddr("api.listenAddr", cfg.API.ListenAddr)
	if !cfg.API.AuthAnonymous {
		v.NotEmpty("api.token", cfg.API.Token)
	}
	v.Range("api.rateLimit", cfg.API.RateLimit, 1, 100000)
	if cfg.API.MaxUploadBytes <= 0 {
		v.AddError("api.maxUploadBytes", "value must be positive", cfg.API.MaxUploadBytes)
	}

	v.AbsFilePath("outputs.dlsFile", cfg.Outputs.DLSFile)
	v.AbsFilePath("outputs.motDir", cfg.Outputs.MOTDir)
	v.AbsFilePath("outputs.imageDir", cfg.Outputs.ImageDir)
	if cfg.Outputs.MOTDir != "" && cfg.Outputs.MOTDir == cfg.Outputs.ImageDir {
		v.AddError("outputs.motDir", "slideshow and image directories must differ", cfg.Outputs.MOTDir)
	}

	v.DurationRange("ticker.interval", cfg.Ticker.Interval, 10*time.Millisecond, 10*time.Second)
	v.Positive("ticker.cleanupEvery", cfg.Ticker.CleanupEvery)

	if cfg.Metrics.ListenAddr != "" {
		v.ListenAddr("metrics.listenAddr", cfg.Metrics.ListenAddr)
		if cfg.Metrics.ListenAddr == cfg.API.ListenAddr {
			v.AddError("metrics.listenAddr", "must differ from api.listenAddr", cfg.Metrics.ListenAddr)
		}
	}

	v.OneOf("log.level", cfg.Log.Level, validate.LogLevels())

	if cfg.Tracing.Enabled {
		v.OneOf("tracing.exporter", cfg.Tracing.Exporter, []string{"grpc", "http"})
		v.NotEmpty("tracing.endpoint", cfg.Tracing.Endpoint)
		v.FloatRange("tracing.samplingRate", cfg.Tracing.SamplingRate, 0, 1)
	}

	return v.Err()
}
