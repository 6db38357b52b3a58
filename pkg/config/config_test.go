package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "CATALOG_PATH", "DATABASE_PATH", "OTLP_ENABLED",
		"OTLP_ENDPOINT", "OTLP_INSECURE", "OTEL_SAMPLE_RATE",
		"ENVIRONMENT", "SERVICE_VERSION",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Empty(t, cfg.CatalogPath)
	assert.Empty(t, cfg.DatabasePath)
	assert.False(t, cfg.OTLPEnabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.InDelta(t, 1.0, cfg.SampleRate, 1e-9)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "1.0.0", cfg.ServiceVersion)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CATALOG_PATH", "/etc/readiness/catalog.yaml")
	t.Setenv("DATABASE_PATH", "/var/lib/readiness/runs.db")
	t.Setenv("OTLP_ENABLED", "true")
	t.Setenv("OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTLP_INSECURE", "true")
	t.Setenv("OTEL_SAMPLE_RATE", "0.25")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SERVICE_VERSION", "2.3.1")

	cfg := Load()
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "/etc/readiness/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "/var/lib/readiness/runs.db", cfg.DatabasePath)
	assert.True(t, cfg.OTLPEnabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.True(t, cfg.OTLPInsecure)
	assert.InDelta(t, 0.25, cfg.SampleRate, 1e-9)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "2.3.1", cfg.ServiceVersion)
}

func TestLoadIgnoresMalformedSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "not-a-number")
	cfg := Load()
	assert.InDelta(t, 1.0, cfg.SampleRate, 1e-9)
}
