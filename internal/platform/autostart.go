package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoginItems registers the application to launch when the user logs in.
type LoginItems interface {
	Enable(appName, execPath string) error
	Disable(appName string) error
}

type loginItems struct{}

// NewLoginItems returns the implementation for the current OS.
func NewLoginItems() LoginItems {
	return loginItems{}
}

// SetLaunchAtLogin enables or disables launching the running executable at login.
func SetLaunchAtLogin(items LoginItems, appName string, enabled bool) error {
	if !enabled {
		return items.Disable(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("launch at login: resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return items.Enable(appName, execPath)
}

// configDir returns the OS-standard configuration directory.
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err == nil && dir != "" {
		return dir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// slug lowercases appName and replaces spaces, defaulting to "isotope".
func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "isotope"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
