//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (loginItems) Enable(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable launch at login: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable launch at login: exec path is empty")
	}

	dir, err := autostartDir()
	if err != nil {
		return fmt.Errorf("enable launch at login: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("enable launch at login: create autostart dir: %w", err)
	}

	entryPath := filepath.Join(dir, slug(appName)+".desktop")
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable launch at login: write desktop entry: %w", err)
	}
	return nil
}

func (loginItems) Disable(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable launch at login: app name is empty")
	}

	dir, err := autostartDir()
	if err != nil {
		return fmt.Errorf("disable launch at login: %w", err)
	}

	entryPath := filepath.Join(dir, slug(appName)+".desktop")
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable launch at login: remove desktop entry: %w", err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func autostartDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart"), nil
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Menu bar stopwatch, timer and Pomodoro
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		appName,
		execLine,
	)
}
