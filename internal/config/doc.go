// Package config loads, validates, and normalizes the flotsam configuration
// from a TOML file with environment variable overrides layered on top. The
// reconciliation core receives already-parsed values and never touches the
// environment itself.
package config
