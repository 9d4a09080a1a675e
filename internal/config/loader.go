// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvStationName     = "STATION_NAME"
	EnvStationImage    = "DEFAULT_STATION_IMAGE"
	EnvAPIKey          = "API_KEY"
	EnvAuthAnonymous   = "PADMETA_AUTH_ANONYMOUS"
	EnvListen          = "PADMETA_LISTEN"
	EnvRateLimit       = "PADMETA_RATE_LIMIT"
	EnvMaxUploadBytes  = "PADMETA_MAX_UPLOAD_BYTES"
	EnvDLSFile         = "PADMETA_DLS_FILE"
	EnvMOTDir          = "PADMETA_MOT_DIR"
	EnvImageDir        = "PADMETA_IMAGE_DIR"
	EnvTickInterval    = "PADMETA_TICK_INTERVAL"
	EnvCleanupEvery    = "PADMETA_CLEANUP_EVERY"
	EnvMetricsListen   = "PADMETA_METRICS_LISTEN"
	EnvLogLevel        = "LOG_LEVEL"
	EnvTracingEnabled  = "PADMETA_TRACING_ENABLED"
	EnvTracingExporter = "PADMETA_TRACING_EXPORTER"
	EnvTracingEndpoint = "PADMETA_TRACING_ENDPOINT"
	EnvTracingSampling = "PADMETA_TRACING_SAMPLING_RATE"
	EnvTracingEnv      = "PADMETA_TRACING_ENVIRONMENT"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader. configPath may be empty.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Path returns the YAML file path, or "" when running from ENV only.
func (l *Loader) Path() string { return l.configPath }

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envInt64(key string, defaultVal int64) int64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt64(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// It enforces the order: parse file (strict) -> apply env -> validate.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	l.mergeEnvConfig(&cfg)
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return &fileCfg, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(field string, dst *time.Duration, src *string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = d
	return nil
}

// mergeFileConfig applies every value set in the file on top of cfg.
func mergeFileConfig(cfg *AppConfig, f *FileConfig) error {
	if s := f.Station; s != nil {
		setString(&cfg.Station.Name, s.Name)
		setString(&cfg.Station.Image, s.Image)
	}
	if a := f.API; a != nil {
		setString(&cfg.API.ListenAddr, a.ListenAddr)
		setString(&cfg.API.Token, a.Token)
		if a.AuthAnonymous != nil {
			cfg.API.AuthAnonymous = *a.AuthAnonymous
		}
		if a.RateLimit != nil {
			cfg.API.RateLimit = *a.RateLimit
		}
		if a.MaxUploadBytes != nil {
			cfg.API.MaxUploadBytes = *a.MaxUploadBytes
		}
	}
	if o := f.Outputs; o != nil {
		setString(&cfg.Outputs.DLSFile, o.DLSFile)
		setString(&cfg.Outputs.MOTDir, o.MOTDir)
		setString(&cfg.Outputs.ImageDir, o.ImageDir)
	}
	if t := f.Ticker; t != nil {
		if err := setDuration("ticker.interval", &cfg.Ticker.Interval, t.Interval); err != nil {
			return err
		}
		if t.CleanupEvery != nil {
			cfg.Ticker.CleanupEvery = *t.CleanupEvery
		}
	}
	if m := f.Metrics; m != nil {
		setString(&cfg.Metrics.ListenAddr, m.ListenAddr)
	}
	if lg := f.Log; lg != nil {
		setString(&cfg.Log.Level, lg.Level)
	}
	if tr := f.Tracing; tr != nil {
		if tr.Enabled != nil {
			cfg.Tracing.Enabled = *tr.Enabled
		}
		setString(&cfg.Tracing.Exporter, tr.Exporter)
		setString(&cfg.Tracing.Endpoint, tr.Endpoint)
		setString(&cfg.Tracing.Environment, tr.Environment)
		if tr.SamplingRate != nil {
			cfg.Tracing.SamplingRate = *tr.SamplingRate
		}
	}
	if s := f.Server; s != nil {
		for _, d := range []struct {
			field string
			dst   *time.Duration
			src   *string
		}{
			{"server.readTimeout", &cfg.Server.ReadTimeout, s.ReadTimeout},
			{"server.writeTimeout", &cfg.Server.WriteTimeout, s.WriteTimeout},
			{"server.idleTimeout", &cfg.Server.IdleTimeout, s.IdleTimeout},
			{"server.shutdownTimeout", &cfg.Server.ShutdownTimeout, s.ShutdownTimeout},
		} {
			if err := setDuration(d.field, d.dst, d.src); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeEnvConfig overrides cfg with environment variables. The current
// value of each field acts as the default.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.Station.Name = l.envString(EnvStationName, cfg.Station.Name)
	cfg.Station.Image = l.envString(EnvStationImage, cfg.Station.Image)

	cfg.API.Token = l.envString(EnvAPIKey, cfg.API.Token)
	cfg.API.AuthAnonymous = l.envBool(EnvAuthAnonymous, cfg.API.AuthAnonymous)
	cfg.API.ListenAddr = l.envString(EnvListen, cfg.API.ListenAddr)
	cfg.API.RateLimit = l.envInt(EnvRateLimit, cfg.API.RateLimit)
	cfg.API.MaxUploadBytes = l.envInt64(EnvMaxUploadBytes, cfg.API.MaxUploadBytes)

	cfg.Outputs.DLSFile = l.envString(EnvDLSFile, cfg.Outputs.DLSFile)
	cfg.Outputs.MOTDir = l.envString(EnvMOTDir, cfg.Outputs.MOTDir)
	cfg.Outputs.ImageDir = l.envString(EnvImageDir, cfg.Outputs.ImageDir)

	cfg.Ticker.Interval = l.envDuration(EnvTickInterval, cfg.Ticker.Interval)
	cfg.Ticker.CleanupEvery = l.envInt(EnvCleanupEvery, cfg.Ticker.CleanupEvery)

	cfg.Metrics.ListenAddr = l.envString(EnvMetricsListen, cfg.Metrics.ListenAddr)
	cfg.Log.Level = strings.ToLower(l.envString(EnvLogLevel, cfg.Log.Level))

	cfg.Tracing.Enabled = l.envBool(EnvTracingEnabled, cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvTracingExporter, cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvTracingEndpoint, cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat(EnvTracingSampling, cfg.Tracing.SamplingRate)
	cfg.Tracing.Environment = l.envString(EnvTracingEnv, cfg.Tracing.Environment)
}
