// Package report renders styled run-once output for the busboard CLI
// commands. Unlike the interactive TUI, these renderers print once and
// exit: a command header, a bar chart or table for the data, and a
// success or failure box for the outcome.
package report
