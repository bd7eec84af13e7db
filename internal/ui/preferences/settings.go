package preferences

import (
	"time"

	"isotope/internal/core/model"
)

// TimerPresets are the countdown lengths offered in the tray, in minutes.
var TimerPresets = []int{5, 10, 15, 25, 30, 45, 60}

// Menu choices for the Pomodoro phase lengths, in minutes.
var (
	WorkDurationChoices = []int{15, 20, 25, 30, 45, 50, 60}
	ShortBreakChoices   = []int{3, 5, 10, 15}
	LongBreakChoices    = []int{10, 15, 20, 30}
)

// Settings defines editable user preferences.
type Settings struct {
	ShowSeconds bool
	CompactMode bool

	WorkDuration            time.Duration
	ShortBreakDuration      time.Duration
	LongBreakDuration       time.Duration
	SessionsBeforeLongBreak int
	AutoStartNextSession    bool

	LaunchAtLogin bool
}

// DefaultSettings returns default settings for Isotope.
func DefaultSettings() Settings {
	return Settings{
		ShowSeconds:             true,
		CompactMode:             false,
		WorkDuration:            25 * time.Minute,
		ShortBreakDuration:      5 * time.Minute,
		LongBreakDuration:       15 * time.Minute,
		SessionsBeforeLongBreak: 4,
		AutoStartNextSession:    false,
		LaunchAtLogin:           false,
	}
}

// TimerSettings converts settings to the values read by the timer engine.
func (settings Settings) TimerSettings() model.TimerSettings {
	return model.TimerSettings{
		ShowSeconds:             settings.ShowSeconds,
		CompactMode:             settings.CompactMode,
		WorkDuration:            settings.WorkDuration,
		ShortBreakDuration:      settings.ShortBreakDuration,
		LongBreakDuration:       settings.LongBreakDuration,
		SessionsBeforeLongBreak: settings.SessionsBeforeLongBreak,
		AutoStartNextSession:    settings.AutoStartNextSession,
	}
}

// Sanitized replaces non-positive values with their defaults.
func (settings Settings) Sanitized() Settings {
	defaults := DefaultSettings()
	if settings.WorkDuration < time.Minute {
		settings.WorkDuration = defaults.WorkDuration
	}
	if settings.ShortBreakDuration < time.Minute {
		settings.ShortBreakDuration = defaults.ShortBreakDuration
	}
	if settings.LongBreakDuration < time.Minute {
		settings.LongBreakDuration = defaults.LongBreakDuration
	}
	if settings.SessionsBeforeLongBreak <= 0 {
		settings.SessionsBeforeLongBreak = defaults.SessionsBeforeLongBreak
	}
	return settings
}
