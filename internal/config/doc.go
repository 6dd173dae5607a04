// Package config loads and validates mediasort's TOML configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/mediasort/config.toml, then ./mediasort.toml, falling back to
// built-in defaults when no file exists. All path values are tilde-expanded
// and made absolute during normalization.
package config
