// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// AppConfig is the fully merged runtime configuration.
type AppConfig struct {
	Version string

	Station StationConfig
	API     APIConfig
	Outputs OutputsConfig
	Ticker  TickerConfig
	Metrics MetricsConfig
	Log     LogConfig
	Tracing TracingConfig
	Server  ServerSettings
}

// StationConfig is the permanent station identity.
type StationConfig struct {
	Name  string
	Image string // optional default station image
}

// APIConfig controls the HTTP API.
type APIConfig struct {
	ListenAddr     string
	Token          string
	AuthAnonymous  bool
	RateLimit      int // requests per minute per client IP
	MaxUploadBytes int64
}

// OutputsConfig locates the files read by the PAD encoder.
type OutputsConfig struct {
	DLSFile  string
	MOTDir   string
	ImageDir string
}

// TickerConfig tunes the content ticker.
type TickerConfig struct {
	Interval     time.Duration
	CleanupEvery int
}

// MetricsConfig controls the Prometheus listener. An empty ListenAddr disables it.
type MetricsConfig struct {
	ListenAddr string
}

// LogConfig controls logging.
type LogConfig struct {
	Level string
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
	Environment  string
}

// ServerSettings are optional HTTP server timeouts. Zero values select defaults.
type ServerSettings struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// FileConfig mirrors the YAML file layout. Pointer fields distinguish unset
// from zero.
type FileConfig struct {
	Station *FileStation `yaml:"station,omitempty"`
	API     *FileAPI     `yaml:"api,omitempty"`
	Outputs *FileOutputs `yaml:"outputs,omitempty"`
	Ticker  *FileTicker  `yaml:"ticker,omitempty"`
	Metrics *FileMetrics `yaml:"metrics,omitempty"`
	Log     *FileLog     `yaml:"log,omitempty"`
	Tracing *FileTracing `yaml:"tracing,omitempty"`
	Server  *FileServer  `yaml:"server,omitempty"`
}

type FileStation struct {
	Name  *string `yaml:"name,omitempty"`
	Image *string `yaml:"image,omitempty"`
}

type FileAPI struct {
	ListenAddr     *string `yaml:"listenAddr,omitempty"`
	Token          *string `yaml:"token,omitempty"`
	AuthAnonymous  *bool   `yaml:"authAnonymous,omitempty"`
	RateLimit      *int    `yaml:"rateLimit,omitempty"`
	MaxUploadBytes *int64  `yaml:"maxUploadBytes,omitempty"`
}

type FileOutputs struct {
	DLSFile  *string `yaml:"dlsFile,omitempty"`
	MOTDir   *string `yaml:"motDir,omitempty"`
	ImageDir *string `yaml:"imageDir,omitempty"`
}

type FileTicker struct {
	Interval     *string `yaml:"interval,omitempty"`
	CleanupEvery *int    `yaml:"cleanupEvery,omitempty"`
}

type FileMetrics struct {
	ListenAddr *string `yaml:"listenAddr,omitempty"`
}

type FileLog struct {
	Level *string `yaml:"level,omitempty"`
}

type FileTracing struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     *string  `yaml:"exporter,omitempty"`
	Endpoint     *string  `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
	Environment  *string  `yaml:"environment,omitempty"`
}

type FileServer struct {
	ReadTimeout     *string `yaml:"readTimeout,omitempty"`
	WriteTimeout    *string `yaml:"writeTimeout,omitempty"`
	IdleTimeout     *string `yaml:"idleTimeout,omitempty"`
	ShutdownTimeout *string `yaml:"shutdownTimeout,omitempty"`
}
