// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

const (
	DefaultListenAddr     = ":8080"
	DefaultRateLimit      = 600
	DefaultMaxUploadBytes = 10 << 20
	DefaultDLSFile        = "/data/dls.txt"
	DefaultMOTDir         = "/data/mot"
	DefaultImageDir       = "/tmp/padenc/images"
	DefaultTickInterval   = 50 * time.Millisecond
	DefaultCleanupEvery   = 20
	DefaultLogLevel       = "info"
)

// Defaults returns the configuration used when neither file nor
// environment set a value.
func Defaults() AppConfig {
	return AppConfig{
		API: APIConfig{
			ListenAddr:     DefaultListenAddr,
			RateLimit:      DefaultRateLimit,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Outputs: OutputsConfig{
			DLSFile:  DefaultDLSFile,
			MOTDir:   DefaultMOTDir,
			ImageDir: DefaultImageDir,
		},
		Ticker: TickerConfig{
			Interval:     DefaultTickInterval,
			CleanupEvery: DefaultCleanupEvery,
		},
		Log: LogConfig{Level: DefaultLogLevel},
		Tracing: TracingConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
			Environment:  "production",
		},
	}
}
