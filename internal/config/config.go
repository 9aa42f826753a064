// Package config holds process configuration loaded once at start.
package config

import (
	"os"
	"strconv"
)

// #region config

// Config holds runtime parameters for the decision support engine.
type Config struct {
	DBPath       string // SQLite database path
	GeminiAPIKey string // empty selects the rule-based strategy
	GeminiModel  string
	HistoryLimit int
	VehicleLimit int
}

// FromEnv reads configuration from the environment: RAILOPS_DB,
// GEMINI_API_KEY, GEMINI_MODEL, RAILOPS_HISTORY_LIMIT,
// RAILOPS_VEHICLE_LIMIT. Unset variables keep their defaults.
func FromEnv() Config {
	cfg := Config{
		DBPath:       "railops.db",
		GeminiModel:  "gemini-1.5-flash",
		HistoryLimit: 5,
		VehicleLimit: 10,
	}
	if v := os.Getenv("RAILOPS_DB"); v != "" {
		cfg.DBPath = v
	}
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("RAILOPS_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := os.Getenv("RAILOPS_VEHICLE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.VehicleLimit = n
		}
	}
	return cfg
}

// #endregion config
