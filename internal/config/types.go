package config

import "time"

// Default values.
const (
	DefaultStorage       = "file"
	DefaultDataFile      = "~/.tpdp/storage.json"
	DefaultStorageKey    = "todos"
	DefaultFilter        = "all"
	DefaultIDScheme      = "uuid"
	DefaultLogDir        = "~/.tpdp/logs"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultMySQLTable    = "kv_store"
	DefaultMySQLTimeout  = 5
	configFileName       = "tpdp.toml"
	hiddenConfigFileName = ".tpdp.toml"
)

// Config holds the full configuration for tpdp.
type Config struct {
	// Storage backend: file, memory or mysql
	Storage string `toml:"storage"`
	// DataFile is the JSON file used by the file backend.
	DataFile string `toml:"data_file"`
	// StorageKey is the key the task list is stored under.
	StorageKey string `toml:"storage_key"`

	MySQL MySQLConfig `toml:"mysql"`

	// Initial filter in the terminal UI and default for list/export.
	DefaultFilter string `toml:"default_filter"`

	// IDScheme selects how task ids are generated: uuid or counter.
	IDScheme string `toml:"id_scheme"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files that were read, lowest priority first (computed)
	Files []string `toml:"-"`
}

// MySQLConfig configures the mysql storage backend.
type MySQLConfig struct {
	DSN            string `toml:"dsn"`
	Table          string `toml:"table"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the per-statement timeout.
func (m MySQLConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return DefaultMySQLTimeout * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}
