// Package logging assembles structured slog loggers and formatting helpers used
// across farmwatch.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so each poll cycle tags its log lines
// with a correlation ID. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
package logging
