// Package config loads, normalizes, and validates Splice configuration.
//
// Configuration is TOML with defaults for every field; a missing config file
// is not an error. Path fields are tilde-expanded and made absolute during
// load. The embedded sample_config.toml documents every section and is
// written out by the `splice config init` command.
package config
