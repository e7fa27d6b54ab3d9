package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "receipt"

// DefaultDir returns the OS-appropriate directory for receipt's config
// and log files.
//
//   - macOS:   ~/Library/Application Support/receipt
//   - Linux:   $XDG_CONFIG_HOME/receipt (fallback ~/.config/receipt)
//   - Windows: %APPDATA%\receipt (fallback %LOCALAPPDATA%\receipt)
func DefaultDir() string {
	return defaultDirForOS(runtime.GOOS)
}

func defaultDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, appName)
	default:
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".config", appName)
	}
}

// DefaultPath returns the config file location, honouring RECEIPT_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("RECEIPT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}
