package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader builds a Config from layered sources, lowest priority first:
//  1. Default values
//  2. YAML file (optional)
//  3. Environment variables
type Loader struct {
	path      string
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a loader reading the YAML file at path. An empty path
// skips the file layer.
func NewLoader(path string) *Loader {
	return &Loader{
		path:      path,
		lookupEnv: os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup, mainly for tests.
func (l *Loader) WithEnv(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// Path returns the YAML file the loader reads, if any.
func (l *Loader) Path() string {
	return l.path
}

// LoadConfig loads configuration using CONFIG_FILE as the optional YAML source.
func LoadConfig() (*Config, error) {
	return NewLoader(os.Getenv("CONFIG_FILE")).Load()
}

// Load applies every source and validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	cfg.LoadedFrom = []string{"defaults"}

	if l.path != "" {
		if err := l.loadFile(cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		} else {
			cfg.LoadedFrom = append(cfg.LoadedFrom, l.path)
		}
	}

	if err := l.loadEnvironmentVariables(cfg); err != nil {
		return nil, err
	}
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config) error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", l.path, err)
	}
	return nil
}

// loadEnvironmentVariables overlays environment variables on the configuration.
func (l *Loader) loadEnvironmentVariables(cfg *Config) error {
	var errs []error

	if val, ok := l.env("ENVIRONMENT"); ok {
		cfg.Environment = Environment(strings.ToLower(val))
	}
	if val, ok := l.env("SERVER_ADDRESS"); ok {
		cfg.Server.Address = val
	}
	if val, ok := l.env("LOG_LEVEL"); ok {
		cfg.Logging.Level = val
	}
	if val, ok := l.env("LOG_FORMAT"); ok {
		cfg.Logging.Format = val
	}

	if val, ok := l.env("OPENFDA_URL"); ok {
		cfg.OpenFDA.BaseURL = val
	}
	if val, ok := l.env("OPENFDA_TIMEOUT"); ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("OPENFDA_TIMEOUT: %w", err))
		} else {
			cfg.OpenFDA.Timeout = d
		}
	}
	if val, ok := l.env("ENABLE_CIRCUIT_BREAKER"); ok {
		cfg.OpenFDA.CircuitBreaker.Enabled = parseBool(val)
	}

	if val, ok := l.env("ENABLE_METRICS"); ok {
		cfg.Metrics.Enabled = parseBool(val)
	}
	if val, ok := l.env("ENABLE_TRACING"); ok {
		cfg.Tracing.Enabled = parseBool(val)
	}
	if val, ok := l.env("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		cfg.Tracing.Endpoint = strings.TrimPrefix(strings.TrimPrefix(val, "http://"), "https://")
	}

	if val, ok := l.env("ENABLE_CORS"); ok {
		cfg.CORS.Enabled = parseBool(val)
	}
	if val, ok := l.env("CORS_ALLOWED_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(val, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}

	return errors.Join(errs...)
}

func (l *Loader) env(key string) (string, bool) {
	val, ok := l.lookupEnv(key)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

func parseBool(val string) bool {
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return strings.EqualFold(val, "yes")
}
