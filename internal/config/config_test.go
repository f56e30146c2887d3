package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"MAX_PRINCIPAL", "MAX_MONTHS", "MAX_RATE", "SAFETY_MULTIPLIER", "PROJECTION_CAP", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 1e9, cfg.MaxPrincipal)
	assert.Equal(t, 600, cfg.MaxMonths)
	assert.Equal(t, 100.0, cfg.MaxRate)
	assert.Equal(t, 3, cfg.SafetyMultiplier())
	assert.Equal(t, 1000, cfg.ProjectionCap())
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MAX_MONTHS", "360")
	t.Setenv("SAFETY_MULTIPLIER", "5")
	t.Setenv("PROJECTION_CAP", "not-a-number")
	t.Setenv("MAX_RATE", "45.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 360, cfg.MaxMonths)
	assert.Equal(t, 5, cfg.SafetyMultiplier())
	assert.Equal(t, 1000, cfg.ProjectionCap())
	assert.Equal(t, 45.5, cfg.MaxRate)
}

func TestNonPositiveLimitsFallBack(t *testing.T) {
	cfg := &Config{CeilingMultiplier: 0, ProjectionIterations: -10}
	assert.Equal(t, 3, cfg.SafetyMultiplier())
	assert.Equal(t, 1000, cfg.ProjectionCap())
}
