// Package mockapi implements a local stand-in for the bus delay statistics
// backend. It loads arrival records from a CSV export (or falls back to a
// small built-in sample) and serves the same JSON endpoints the real
// backend exposes, so the TUI and the one-shot commands can be exercised
// without network access to the production API.
package mockapi
