// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tpdp/tpdp.toml or OS-specific config directory)
// 3. Project config file (tpdp.toml or .tpdp.toml in the current directory)
// 4. Environment variables (TPDP_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tpdp/tpdp.toml (preferred)
// - Windows: %APPDATA%\tpdp\tpdp.toml
// - macOS: ~/Library/Application Support/tpdp/tpdp.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tpdp/tpdp.toml or ~/.config/tpdp/tpdp.toml
package config
