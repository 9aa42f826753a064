package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("RAILOPS_DB", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("RAILOPS_HISTORY_LIMIT", "")
	t.Setenv("RAILOPS_VEHICLE_LIMIT", "")

	cfg := FromEnv()
	assert.Equal(t, "railops.db", cfg.DBPath)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, 10, cfg.VehicleLimit)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RAILOPS_DB", "/tmp/ops.db")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("RAILOPS_HISTORY_LIMIT", "8")
	t.Setenv("RAILOPS_VEHICLE_LIMIT", "20")

	cfg := FromEnv()
	assert.Equal(t, "/tmp/ops.db", cfg.DBPath)
	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 8, cfg.HistoryLimit)
	assert.Equal(t, 20, cfg.VehicleLimit)
}

func TestFromEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("RAILOPS_HISTORY_LIMIT", "zero")
	t.Setenv("RAILOPS_VEHICLE_LIMIT", "-3")

	cfg := FromEnv()
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, 10, cfg.VehicleLimit)
}
