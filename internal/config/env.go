package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TPDP_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TPDP_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("TPDP_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TPDP_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := os.Getenv("TPDP_MYSQL_DSN"); v != "" {
		cfg.MySQL.DSN = v
	}
	if v := os.Getenv("TPDP_MYSQL_TABLE"); v != "" {
		cfg.MySQL.Table = v
	}
	if v := os.Getenv("TPDP_MYSQL_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.MySQL.TimeoutSeconds = i
		}
	}
	if v := os.Getenv("TPDP_FILTER"); v != "" {
		cfg.DefaultFilter = v
	}
	if v := os.Getenv("TPDP_ID_SCHEME"); v != "" {
		cfg.IDScheme = v
	}

	// Logging configuration
	if v := os.Getenv("TPDP_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("TPDP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TPDP_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TPDP_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TPDP_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
