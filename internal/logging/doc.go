// Package logging provides structured logging for the busboard tools.
//
// Logging is built on zap and is silent by default so that curated terminal
// output (the TUI and the one-shot command reports) stays clean. Set the
// BUSBOARD_LOG_LEVEL environment variable to "debug", "info", "warn", or
// "error" to enable console logging, which is mainly useful when diagnosing
// API connectivity problems or mock-server behavior.
//
// The mock server initializes logging explicitly at "info" unless the
// environment overrides it, since a server with no request log is not very
// useful.
package logging
