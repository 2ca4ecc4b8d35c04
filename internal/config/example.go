package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tpdp configuration file
# Values can be overridden by TPDP_* environment variables or CLI flags

# Storage backend: file, memory or mysql
storage = "file"

# Storage file for the file backend (supports ~ expansion)
data_file = "~/.tpdp/storage.json"

# Key the task list is stored under
storage_key = "todos"

# Filter shown when the editor starts: all, active or completed
default_filter = "all"

# Task id scheme: uuid or counter
id_scheme = "uuid"

# Logging
log_dir = "~/.tpdp/logs"
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false

# MySQL backend (used when storage = "mysql")
[mysql]
# dsn = "user:password@tcp(127.0.0.1:3306)/tpdp"
table = "kv_store"
timeout_seconds = 5
`
}
