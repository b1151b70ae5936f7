// Package config provides configuration management for the recall notes service.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Environment represents the deployment environment
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config holds all application configuration
type Config struct {
	Environment Environment `yaml:"environment"`

	Server  Server  `yaml:"server"`
	OpenFDA OpenFDA `yaml:"openfda"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
	Tracing Tracing `yaml:"tracing"`
	CORS    CORS    `yaml:"cors"`

	// LoadedFrom lists the sources applied, lowest priority first.
	LoadedFrom []string `yaml:"-"`
}

// Server holds HTTP server settings
type Server struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxRequestSize  int64         `yaml:"max_request_size"`
}

// OpenFDA configures the recall data source
type OpenFDA struct {
	BaseURL        string         `yaml:"base_url"`
	Timeout        time.Duration  `yaml:"timeout"`
	CircuitBreaker CircuitBreaker `yaml:"circuit_breaker"`
}

// CircuitBreaker configures the breaker in front of openFDA
type CircuitBreaker struct {
	Enabled          bool          `yaml:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failure_threshold"`
	MinRequests      uint32        `yaml:"min_requests"`
}

// Logging configures zap
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Metrics configures the Prometheus endpoint
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}

// Tracing configures OpenTelemetry export
type Tracing struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// CORS configures cross-origin access
type CORS struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns a configuration that runs without any file or variables.
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: Server{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxRequestSize:  1 << 20,
		},
		OpenFDA: OpenFDA{
			BaseURL: "https://api.fda.gov/food/enforcement.json",
			Timeout: 10 * time.Second,
			// Off by default: no load shedding in front of openFDA.
			CircuitBreaker: CircuitBreaker{
				Enabled:          false,
				MaxRequests:      5,
				Interval:         30 * time.Second,
				Timeout:          60 * time.Second,
				FailureThreshold: 0.8,
				MinRequests:      5,
			},
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
		Metrics: Metrics{
			Enabled:   true,
			Namespace: "recall_notes",
			Path:      "/metrics",
		},
		Tracing: Tracing{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			ServiceName: "recall-notes-backend",
		},
		CORS: CORS{
			Enabled:        true,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Environment {
	case Development, Staging, Production:
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Environment))
	}

	if c.Server.Address == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.Server.MaxRequestSize <= 0 {
		errs = append(errs, errors.New("server max_request_size must be positive"))
	}

	if u, err := url.Parse(c.OpenFDA.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("openfda base_url %q is not an absolute URL", c.OpenFDA.BaseURL))
	}
	if c.OpenFDA.Timeout <= 0 {
		errs = append(errs, errors.New("openfda timeout must be positive"))
	}
	if cb := c.OpenFDA.CircuitBreaker; cb.Enabled && (cb.FailureThreshold <= 0 || cb.FailureThreshold > 1) {
		errs = append(errs, errors.New("circuit breaker failure_threshold must be in (0, 1]"))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("tracing endpoint is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
