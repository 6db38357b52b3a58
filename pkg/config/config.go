// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration for the readiness core.
type Config struct {
	LogLevel     string
	CatalogPath  string // optional YAML catalog override; empty uses the built-in catalog
	DatabasePath string // sqlite file for the run store; empty keeps runs in memory

	OTLPEnabled    bool
	OTLPEndpoint   string
	OTLPInsecure   bool
	SampleRate     float64
	Environment    string
	ServiceVersion string
}

// Load loads configuration from environment variables.
func Load() *Config {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	endpoint := os.Getenv("OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4317"
	}

	sampleRate := 1.0
	if raw := os.Getenv("OTEL_SAMPLE_RATE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			sampleRate = v
		}
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	version := os.Getenv("SERVICE_VERSION")
	if version == "" {
		version = "1.0.0"
	}

	return &Config{
		LogLevel:       logLevel,
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		DatabasePath:   os.Getenv("DATABASE_PATH"),
		OTLPEnabled:    os.Getenv("OTLP_ENABLED") == "true",
		OTLPEndpoint:   endpoint,
		OTLPInsecure:   os.Getenv("OTLP_INSECURE") == "true",
		SampleRate:     sampleRate,
		Environment:    environment,
		ServiceVersion: version,
	}
}
