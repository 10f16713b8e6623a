// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the file given with --config or from
// config.cue in the user config directory ($XDG_CONFIG_HOME/shargs on Linux,
// ~/Library/Application Support/shargs on macOS, %APPDATA%\shargs on Windows).
// Files are validated against the embedded #Config schema; SHARGS_* environment
// variables override file values.
package config
