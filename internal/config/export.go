// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// ToFileConfig converts an effective configuration back into the file
// schema. Every field is set, so the result documents all values in use.
func ToFileConfig(cfg AppConfig) FileConfig {
	dur := func(d time.Duration) *string {
		s := d.String()
		return &s
	}
	return FileConfig{
		Station: &FileStation{Name: ptr(cfg.Station.Name), Image: ptr(cfg.Station.Image)},
		API: &FileAPI{
			ListenAddr:     ptr(cfg.API.ListenAddr),
			Token:          ptr(cfg.API.Token),
			AuthAnonymous:  ptr(cfg.API.AuthAnonymous),
			RateLimit:      ptr(cfg.API.RateLimit),
			MaxUploadBytes: ptr(cfg.API.MaxUploadBytes),
		},
		Outputs: &FileOutputs{
			DLSFile:  ptr(cfg.Outputs.DLSFile),
			MOTDir:   ptr(cfg.Outputs.MOTDir),
			ImageDir: ptr(cfg.Outputs.ImageDir),
		},
		Ticker: &FileTicker{
			Interval:     dur(cfg.Ticker.Interval),
			CleanupEvery: ptr(cfg.Ticker.CleanupEvery),
		},
		Metrics: &FileMetrics{ListenAddr: ptr(cfg.Metrics.ListenAddr)},
		Log:     &FileLog{Level: ptr(cfg.Log.Level)},
		Tracing: &FileTracing{
			Enabled:      ptr(cfg.Tracing.Enabled),
			Exporter:     ptr(cfg.Tracing.Exporter),
			Endpoint:     ptr(cfg.Tracing.Endpoint),
			SamplingRate: ptr(cfg.Tracing.SamplingRate),
			Environment:  ptr(cfg.Tracing.Environment),
		},
		Server: &FileServer{
			ReadTimeout:     dur(cfg.Server.ReadTimeout),
			WriteTimeout:    dur(cfg.Server.WriteTimeout),
			IdleTimeout:     dur(cfg.Server.IdleTimeout),
			ShutdownTimeout: dur(cfg.Server.ShutdownTimeout),
		},
	}
}

// Redacted returns a copy of fc with secrets masked.
func (fc FileConfig) Redacted() FileConfig {
	if fc.API != nil && fc.API.Token != nil && *fc.API.Token != "" {
		api := *fc.API
		api.Token = ptr("***")
		fc.API = &api
	}
	return fc
}

func ptr[T any](v T) *T { return &v }
