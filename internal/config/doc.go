// Package config loads, normalizes, and validates daynote configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GITHUB_TOKEN and OBSIDIAN_VAULT_PATH. The Config type centralizes every knob
// the CLI needs so the vault location, feed credentials, and timezone are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a resolved timezone, and clear validation errors.
package config
