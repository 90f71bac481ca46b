// Package logging assembles structured slog loggers and formatting helpers used
// across calibtool.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so dispatcher and runner code
// tag log lines with the session identifier and operation name. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Log records never go to the operator's menu output; they land in the log
// file and, in verbose mode, on stderr.
package logging
