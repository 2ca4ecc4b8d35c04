package config

import (
	"flag"
)

// parseFlags defines the global CLI flags on fs and parses args.
// Flags are bound directly to cfg, so values already set by files and the
// environment become the flag defaults.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tpdp", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend (file, memory, mysql)")
	fs.StringVar(&cfg.DataFile, "data-file", cfg.DataFile, "Storage file for the file backend")
	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "Storage key holding the task list")
	fs.StringVar(&cfg.MySQL.DSN, "mysql-dsn", cfg.MySQL.DSN, "MySQL DSN for the mysql backend")

	// Behavior
	fs.StringVar(&cfg.DefaultFilter, "filter", cfg.DefaultFilter, "Default filter (all, active, completed)")
	fs.StringVar(&cfg.IDScheme, "id-scheme", cfg.IDScheme, "Task id scheme (uuid, counter)")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	return fs.Parse(args)
}
