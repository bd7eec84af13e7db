package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	workDur     *widget.Entry
	shortDur    *widget.Entry
	longDur     *widget.Entry
	sessions    *widget.Entry
	autoStart   *widget.Check
	showSeconds *widget.Check
	compact     *widget.Check
	launch      *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Isotope Settings")

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		workDur:     widget.NewEntry(),
		shortDur:    widget.NewEntry(),
		longDur:     widget.NewEntry(),
		sessions:    widget.NewEntry(),
		autoStart:   widget.NewCheck("Auto-start next session", nil),
		showSeconds: widget.NewCheck("Show seconds", nil),
		compact:     widget.NewCheck("Compact mode", nil),
		launch:      widget.NewCheck("Launch at login", nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work duration"), prefs.workDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Sessions before long break"), prefs.sessions),
		prefs.autoStart,
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.showSeconds,
		prefs.compact,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.launch,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 400))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workDur.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Minutes())))
	prefs.shortDur.SetText(fmt.Sprintf("%d", int(settings.ShortBreakDuration.Minutes())))
	prefs.longDur.SetText(fmt.Sprintf("%d", int(settings.LongBreakDuration.Minutes())))
	prefs.sessions.SetText(fmt.Sprintf("%d", settings.SessionsBeforeLongBreak))
	prefs.autoStart.SetChecked(settings.AutoStartNextSession)
	prefs.showSeconds.SetChecked(settings.ShowSeconds)
	prefs.compact.SetChecked(settings.CompactMode)
	prefs.launch.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workDur.Text); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.shortDur.Text); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.longDur.Text); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if sessions, ok := parsePositiveInt(prefs.sessions.Text); ok {
		settings.SessionsBeforeLongBreak = sessions
	}

	settings.AutoStartNextSession = prefs.autoStart.Checked
	settings.ShowSeconds = prefs.showSeconds.Checked
	settings.CompactMode = prefs.compact.Checked
	settings.LaunchAtLogin = prefs.launch.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
