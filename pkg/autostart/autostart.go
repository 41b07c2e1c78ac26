// Package autostart manages the starter's own login shortcut.
//
// Deployments register the starter to relaunch at login. When the starter
// is invoked with an invalid argument, that registration must be removed,
// otherwise every login would retry the same bad argument.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// RemoveLoginShortcut deletes any persisted auto-start entry for app. A
// missing entry is not an error; only a failed deletion is.
func RemoveLoginShortcut(app string) error {
	dir, err := startupDir()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read startup directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if !strings.EqualFold(stem, app) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove startup shortcut %s: %w", name, err)
		}
	}
	return nil
}

// startupDir returns the per-user auto-start directory.
func startupDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup"), nil
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "autostart"), nil
}
