package tray

import (
	"fmt"
	"strings"

	"isotope/internal/core/timer"
	"isotope/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/systray"
)

const appTitle = "Isotope"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSelectMode          func(timer.Mode)
	OnSetTimer            func(minutes int)
	OnCustomTimer         func()
	OnToggleRun           func()
	OnReset               func()
	OnSkipPhase           func()
	OnWorkDuration        func(minutes int)
	OnShortBreak          func(minutes int)
	OnLongBreak           func(minutes int)
	OnToggleAutoStart     func()
	OnToggleShowSeconds   func()
	OnToggleCompact       func()
	OnToggleLaunchAtLogin func()
	OnPreferences         func()
	OnQuit                func()
}

// MenuHost displays the tray menu. desktop.App satisfies it.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Options overrides how the menu bar title and tooltip are drawn.
// Nil fields default to fyne.io/systray.
type Options struct {
	SetTitle   func(title string)
	SetTooltip func(tooltip string)
}

// Manager handles system tray state and menu construction.
type Manager struct {
	host       MenuHost
	setTitle   func(string)
	setTooltip func(string)
	callbacks  Callbacks
	snapshot   timer.Snapshot
	settings   preferences.Settings
}

// New creates a tray manager and installs the initial menu.
func New(host MenuHost, settings preferences.Settings, snapshot timer.Snapshot, callbacks Callbacks, options Options) *Manager {
	if options.SetTitle == nil {
		options.SetTitle = systray.SetTitle
	}
	if options.SetTooltip == nil {
		options.SetTooltip = systray.SetTooltip
	}

	manager := &Manager{
		host:       host,
		setTitle:   options.SetTitle,
		setTooltip: options.SetTooltip,
		callbacks:  callbacks,
		snapshot:   snapshot,
		settings:   settings,
	}
	manager.setTitle(snapshot.Display)
	manager.refreshTooltip()
	manager.refreshMenu()
	return manager
}

// SetDisplay updates the menu bar text.
func (manager *Manager) SetDisplay(text string) {
	if manager.snapshot.Display == text {
		return
	}
	manager.snapshot.Display = text
	manager.setTitle(text)
	manager.refreshMenu()
}

// SetSnapshot replaces the engine state shown in the menu.
func (manager *Manager) SetSnapshot(snapshot timer.Snapshot) {
	manager.snapshot = snapshot
	manager.setTitle(snapshot.Display)
	manager.refreshTooltip()
	manager.refreshMenu()
}

// SetSettings updates checkmarks for the preference items.
func (manager *Manager) SetSettings(settings preferences.Settings) {
	manager.settings = settings
	manager.refreshTooltip()
	manager.refreshMenu()
}

// PomodoroStatus renders "Session n/N - Phase".
func PomodoroStatus(session, sessionsTotal int, phase timer.Phase) string {
	return fmt.Sprintf("Session %d/%d - %s", session, sessionsTotal, phase)
}

func (manager *Manager) refreshTooltip() {
	tooltip := fmt.Sprintf("%s - %s", appTitle, manager.snapshot.Mode)
	if manager.snapshot.Mode == timer.ModePomodoro {
		tooltip += " - " + PomodoroStatus(manager.snapshot.Session, manager.settings.SessionsBeforeLongBreak, manager.snapshot.Phase)
	}
	manager.setTooltip(tooltip)
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.buildMenu())
	}
}

func (manager *Manager) buildMenu() *fyne.Menu {
	snapshot := manager.snapshot
	settings := manager.settings

	status := fyne.NewMenuItem(fmt.Sprintf("%s: %s", snapshot.Mode, strings.ReplaceAll(snapshot.Display, "\n", ":")), nil)
	status.Disabled = true

	items := []*fyne.MenuItem{status, manager.modeMenu(), fyne.NewMenuItemSeparator()}

	if snapshot.Mode == timer.ModeTimer {
		items = append(items, manager.timerMenu())
	}
	if snapshot.Mode == timer.ModePomodoro {
		pomodoroStatus := fyne.NewMenuItem(PomodoroStatus(snapshot.Session, settings.SessionsBeforeLongBreak, snapshot.Phase), nil)
		pomodoroStatus.Disabled = true
		items = append(items, pomodoroStatus)
	}
	items = append(items, fyne.NewMenuItemSeparator())

	runLabel := "Start"
	if snapshot.Running {
		runLabel = "Stop"
	}
	items = append(items,
		fyne.NewMenuItem(runLabel, invoke(manager.callbacks.OnToggleRun)),
		fyne.NewMenuItem("Reset", invoke(manager.callbacks.OnReset)),
	)
	if snapshot.Mode == timer.ModePomodoro {
		items = append(items, fyne.NewMenuItem("Skip Phase", invoke(manager.callbacks.OnSkipPhase)))
	}

	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.pomodoroSettingsMenu(),
		manager.appearanceMenu(),
		checked(fyne.NewMenuItem("Launch at Login", invoke(manager.callbacks.OnToggleLaunchAtLogin)), settings.LaunchAtLogin),
		fyne.NewMenuItem("Preferences...", invoke(manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
	)

	quit := fyne.NewMenuItem("Quit "+appTitle, invoke(manager.callbacks.OnQuit))
	quit.IsQuit = true
	items = append(items, quit)

	return fyne.NewMenu(appTitle, items...)
}

func (manager *Manager) modeMenu() *fyne.MenuItem {
	modes := make([]*fyne.MenuItem, 0, len(timer.Modes))
	for _, mode := range timer.Modes {
		mode := mode
		item := fyne.NewMenuItem(string(mode), func() {
			if manager.callbacks.OnSelectMode != nil {
				manager.callbacks.OnSelectMode(mode)
			}
		})
		modes = append(modes, checked(item, manager.snapshot.Mode == mode))
	}

	item := fyne.NewMenuItem("Mode", nil)
	item.ChildMenu = fyne.NewMenu("", modes...)
	return item
}

func (manager *Manager) timerMenu() *fyne.MenuItem {
	presets := minuteItems(preferences.TimerPresets, 0, manager.callbacks.OnSetTimer)
	presets = append(presets,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Custom...", invoke(manager.callbacks.OnCustomTimer)),
	)

	item := fyne.NewMenuItem("Set Timer", nil)
	item.ChildMenu = fyne.NewMenu("", presets...)
	return item
}

func (manager *Manager) pomodoroSettingsMenu() *fyne.MenuItem {
	settings := manager.settings

	work := fyne.NewMenuItem("Work Duration", nil)
	work.ChildMenu = fyne.NewMenu("", minuteItems(preferences.WorkDurationChoices, int(settings.WorkDuration.Minutes()), manager.callbacks.OnWorkDuration)...)

	shortBreak := fyne.NewMenuItem("Short Break", nil)
	shortBreak.ChildMenu = fyne.NewMenu("", minuteItems(preferences.ShortBreakChoices, int(settings.ShortBreakDuration.Minutes()), manager.callbacks.OnShortBreak)...)

	longBreak := fyne.NewMenuItem("Long Break", nil)
	longBreak.ChildMenu = fyne.NewMenu("", minuteItems(preferences.LongBreakChoices, int(settings.LongBreakDuration.Minutes()), manager.callbacks.OnLongBreak)...)

	item := fyne.NewMenuItem("Pomodoro Settings", nil)
	item.ChildMenu = fyne.NewMenu("",
		work,
		shortBreak,
		longBreak,
		fyne.NewMenuItemSeparator(),
		checked(fyne.NewMenuItem("Auto-start Next", invoke(manager.callbacks.OnToggleAutoStart)), settings.AutoStartNextSession),
	)
	return item
}

func (manager *Manager) appearanceMenu() *fyne.MenuItem {
	item := fyne.NewMenuItem("Appearance", nil)
	item.ChildMenu = fyne.NewMenu("",
		checked(fyne.NewMenuItem("Show Seconds", invoke(manager.callbacks.OnToggleShowSeconds)), manager.settings.ShowSeconds),
		checked(fyne.NewMenuItem("Compact Mode", invoke(manager.callbacks.OnToggleCompact)), manager.settings.CompactMode),
	)
	return item
}

// minuteItems builds "N min" entries, checking the one equal to current.
func minuteItems(choices []int, current int, onSelect func(int)) []*fyne.MenuItem {
	items := make([]*fyne.MenuItem, 0, len(choices))
	for _, minutes := range choices {
		minutes := minutes
		item := fyne.NewMenuItem(fmt.Sprintf("%d min", minutes), func() {
			if onSelect != nil {
				onSelect(minutes)
			}
		})
		items = append(items, checked(item, minutes == current))
	}
	return items
}

func checked(item *fyne.MenuItem, on bool) *fyne.MenuItem {
	item.Checked = on
	return item
}

func invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}
