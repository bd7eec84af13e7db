//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (loginItems) Enable(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable launch at login: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable launch at login: exec path is empty")
	}

	quoted := fmt.Sprintf(`"%s"`, strings.Trim(execPath, `"`))
	return runReg("enable launch at login", "add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", quoted, "/f")
}

func (loginItems) Disable(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable launch at login: app name is empty")
	}
	return runReg("disable launch at login", "delete", registryRunKey, "/v", appName, "/f")
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func runReg(operation string, args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: reg %s failed: %w: %s", operation, args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
