package main

import "errors"

// Config validation errors
var (
	ErrInvalidLogFormat    = errors.New("log_format must be 'json' or 'console'")
	ErrInvalidLogLevel     = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidRows         = errors.New("rows must be positive")
	ErrInvalidNullFraction = errors.New("null_fraction must be within [0, 1]")
	ErrInvalidIterations   = errors.New("iterations must be positive")
)

// Config holds process configuration, loaded from BOOLBENCH_* environment
// variables (optionally via a .env file).
type Config struct {
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""` // empty disables the metrics endpoint
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		LogFormat: "json",
		LogLevel:  "info",
	}
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// ValidateWorkload validates the flag-driven workload parameters.
func ValidateWorkload(rows int, nullFraction float64, iterations int) error {
	if rows <= 0 {
		return ErrInvalidRows
	}
	if nullFraction < 0 || nullFraction > 1 {
		return ErrInvalidNullFraction
	}
	if iterations <= 0 {
		return ErrInvalidIterations
	}
	return nil
}
