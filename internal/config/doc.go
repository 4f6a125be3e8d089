// Package config manages the busboard configuration file.
//
// Configuration lives at the platform-appropriate location (XDG config dir
// on Linux, ~/.config on macOS, LOCALAPPDATA on Windows) as a YAML file.
// The file stores connection settings for the delay-statistics backend plus
// user preferences like favorite stops and default query times. Loading is
// lazy and the loaded settings are shared process-wide; saves are atomic
// via a temp file and rename.
package config
