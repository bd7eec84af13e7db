package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"isotope/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	ShowSeconds             *bool `yaml:"show_seconds,omitempty"`
	CompactMode             bool  `yaml:"compact_mode"`
	WorkDurationMinutes     int   `yaml:"pomodoro_work_minutes"`
	ShortBreakMinutes       int   `yaml:"pomodoro_short_break_minutes"`
	LongBreakMinutes        int   `yaml:"pomodoro_long_break_minutes"`
	SessionsBeforeLongBreak int   `yaml:"pomodoro_sessions_before_long_break"`
	AutoStartNextSession    bool  `yaml:"auto_start_next_session"`
	LaunchAtLogin           bool  `yaml:"launch_at_login"`
}

// DefaultSettingsPath returns the settings file location under the user config dir.
func DefaultSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettingsFile reads user preferences from YAML.
// A missing file yields defaults; missing or invalid fields fall back to defaults.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile atomically writes user preferences to YAML.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	showSeconds := settings.ShowSeconds
	fileData := yamlSettings{
		ShowSeconds:             &showSeconds,
		CompactMode:             settings.CompactMode,
		WorkDurationMinutes:     int(settings.WorkDuration / time.Minute),
		ShortBreakMinutes:       int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:        int(settings.LongBreakDuration / time.Minute),
		SessionsBeforeLongBreak: settings.SessionsBeforeLongBreak,
		AutoStartNextSession:    settings.AutoStartNextSession,
		LaunchAtLogin:           settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(path, serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.ShowSeconds != nil {
		settings.ShowSeconds = *fileData.ShowSeconds
	}
	if fileData.WorkDurationMinutes > 0 {
		settings.WorkDuration = time.Duration(fileData.WorkDurationMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.SessionsBeforeLongBreak > 0 {
		settings.SessionsBeforeLongBreak = fileData.SessionsBeforeLongBreak
	}

	settings.CompactMode = fileData.CompactMode
	settings.AutoStartNextSession = fileData.AutoStartNextSession
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
