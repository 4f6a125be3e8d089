package main

import (
	"runtime"
	"testing"

	"github.com/nycbus/busboard/internal/config"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test overrides XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := config.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
}

func TestFavoriteCommandsPersist(t *testing.T) {
	isolateConfig(t)

	if err := runFavoriteAdd(favoriteAddCmd, []string{"5 AV/9 ST"}); err != nil {
		t.Fatalf("favorite add error = %v", err)
	}
	loaded, err := config.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !loaded.IsFavorite("5 AV/9 ST") {
		t.Error("favorite not persisted by the add command")
	}

	if err := runFavoriteRemove(favoriteRemoveCmd, []string{"5 AV/9 ST"}); err != nil {
		t.Fatalf("favorite remove error = %v", err)
	}
	loaded, err = config.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if loaded.IsFavorite("5 AV/9 ST") {
		t.Error("favorite still present after the remove command")
	}
}

func TestFavoriteAddRejectsEmptyStop(t *testing.T) {
	isolateConfig(t)

	if err := runFavoriteAdd(favoriteAddCmd, []string{"  "}); err == nil {
		t.Error("blank stop name should be rejected")
	}
}

func TestConfigSetDefaultsPersists(t *testing.T) {
	isolateConfig(t)

	if err := runConfigSetDefaults(configSetDefaultsCmd, []string{"UTICA AV/FULTON ST", "9", "15"}); err != nil {
		t.Fatalf("config set-defaults error = %v", err)
	}

	loaded, err := config.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if loaded.Defaults.Stop != "UTICA AV/FULTON ST" {
		t.Errorf("default stop = %q", loaded.Defaults.Stop)
	}
	if loaded.Defaults.Hour != 9 || loaded.Defaults.Minute != 15 {
		t.Errorf("default time = %02d:%02d, want 09:15", loaded.Defaults.Hour, loaded.Defaults.Minute)
	}
}

func TestConfigSetDefaultsValidatesTime(t *testing.T) {
	isolateConfig(t)

	if err := runConfigSetDefaults(configSetDefaultsCmd, []string{"MAIN ST", "24", "0"}); err == nil {
		t.Error("hour 24 should be rejected")
	}
	if err := runConfigSetDefaults(configSetDefaultsCmd, []string{"MAIN ST", "8", "60"}); err == nil {
		t.Error("minute 60 should be rejected")
	}
}
