// Package config handles loading and parsing Trawl's configuration file.
//
// # Overview
//
// The configuration names the Transmission daemon to connect to and how.
// Trawl should work immediately against a daemon on the default port, so a
// missing config file is not an error: defaults are used instead, and the
// same goes for individual missing or empty fields.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/trawl/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
// Example config.toml:
//
//	address = "127.0.0.1:9091"
//	user = "alice"
//	password = "hunter2"
//	poll_interval = 2.0
//
// All fields are optional. poll_interval is in seconds. The address may be
// a bare host:port or a full URL; https URLs are passed through unchanged.
//
// # Path Expansion
//
// The config file path may be absolute, relative, or start with a tilde,
// which is expanded to the home directory.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors other
// than os.ErrNotExist, and TOML parsing errors.
package config
