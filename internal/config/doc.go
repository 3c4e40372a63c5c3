// Package config loads, normalizes, and validates farmwatch configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as FARMWATCH_OPERATOR and
// FARMWATCH_BACKEND_TOKEN. The Config type centralizes the operator identity,
// poll cadence, output location, and backend connection settings so the
// monitor and CLI discover them in one pass.
//
// Settings are read once at startup and treated as read-only afterwards.
package config
