package main

import (
	"os"
	"path/filepath"
)

// defaultConfigDir returns $XDG_CONFIG_HOME/expando, falling back to
// ~/.config/expando — the directory expected to hold default.yml.
func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "expando")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/expando"
	}
	return filepath.Join(home, ".config", "expando")
}

// defaultRuntimeRoot returns $XDG_DATA_HOME/expando, falling back to
// ~/.local/share/expando — the directory expected to hold cache.bin and
// the package registry (spec.md §6).
func defaultRuntimeRoot() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "expando")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".local/share/expando"
	}
	return filepath.Join(home, ".local", "share", "expando")
}

func resolvedCustomDir() string {
	if customDir != "" {
		return customDir
	}
	return filepath.Join(configDir, "custom")
}

func defaultProfilePath() string {
	return filepath.Join(configDir, "default.yml")
}
