package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"isotope/internal/core/timer"
	xlog "isotope/internal/log"
	"isotope/internal/platform"
	"isotope/internal/storage"
	"isotope/internal/ui/preferences"
	"isotope/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
)

const appName = "Isotope"

type options struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "isotope",
		Short:         "Menu bar stopwatch, countdown timer and Pomodoro",
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "settings file (default: user config dir)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default: $LOG_LEVEL or info)")
	return cmd
}

func run(ctx context.Context, opts options) error {
	xlog.Configure(xlog.Config{Level: opts.logLevel})
	logger := xlog.WithComponent("app")

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn().Err(err).Str("event", "app.already_running").Msg("another instance is running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	configPath := opts.configPath
	if configPath == "" {
		configPath, err = storage.DefaultSettingsPath(appName)
		if err != nil {
			return err
		}
	}
	store := storage.NewSettingsStore(configPath, xlog.WithComponent("settings"))
	if err := store.Load(); err != nil {
		logger.Warn().Err(err).Str("event", "settings.load_failed").Msg("using default settings")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fyneApp := app.NewWithID("com.isotope.app")
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("Isotope is running in the menu bar."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	engine := timer.New(store, timer.Options{Logger: xlog.WithComponent("timer")})
	engine.SetNotifier(platform.NewNotifier(fyneApp, xlog.WithComponent("notify")))
	loginItems := platform.NewLoginItems()

	updateSettings := func(apply func(*preferences.Settings)) {
		if _, err := store.Update(apply); err != nil {
			logger.Error().Err(err).Str("event", "settings.save_failed").Msg("settings not saved")
		}
	}

	var trayManager *tray.Manager
	refresh := func() {
		trayManager.SetSnapshot(engine.Snapshot())
	}

	prompt := preferences.NewDurationPrompt(fyneApp, func(minutes int) {
		engine.SetTimerDuration(minutes)
	})
	prefsWindow := preferences.New(fyneApp, store.Settings(), func(updated preferences.Settings) {
		updateSettings(func(settings *preferences.Settings) {
			*settings = updated
		})
	})

	trayManager = tray.New(desktopApp, store.Settings(), engine.Snapshot(), tray.Callbacks{
		OnSelectMode: func(mode timer.Mode) {
			engine.SetMode(mode)
			refresh()
		},
		OnSetTimer: func(minutes int) {
			engine.SetTimerDuration(minutes)
			refresh()
		},
		OnCustomTimer: prompt.Show,
		OnToggleRun: func() {
			if engine.IsRunning() {
				engine.Stop()
			} else {
				engine.Start()
			}
			refresh()
		},
		OnReset: func() {
			engine.Reset()
			refresh()
		},
		OnSkipPhase: func() {
			engine.SkipPomodoroPhase()
			refresh()
		},
		OnWorkDuration: func(minutes int) {
			updateSettings(func(settings *preferences.Settings) {
				settings.WorkDuration = time.Duration(minutes) * time.Minute
			})
		},
		OnShortBreak: func(minutes int) {
			updateSettings(func(settings *preferences.Settings) {
				settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
			})
		},
		OnLongBreak: func(minutes int) {
			updateSettings(func(settings *preferences.Settings) {
				settings.LongBreakDuration = time.Duration(minutes) * time.Minute
			})
		},
		OnToggleAutoStart: func() {
			updateSettings(func(settings *preferences.Settings) {
				settings.AutoStartNextSession = !settings.AutoStartNextSession
			})
		},
		OnToggleShowSeconds: func() {
			updateSettings(func(settings *preferences.Settings) {
				settings.ShowSeconds = !settings.ShowSeconds
			})
		},
		OnToggleCompact: func() {
			updateSettings(func(settings *preferences.Settings) {
				settings.CompactMode = !settings.CompactMode
			})
		},
		OnToggleLaunchAtLogin: func() {
			updateSettings(func(settings *preferences.Settings) {
				settings.LaunchAtLogin = !settings.LaunchAtLogin
			})
		},
		OnPreferences: prefsWindow.Show,
		OnQuit: func() {
			engine.Stop()
			cancel()
			fyneApp.Quit()
		},
	}, tray.Options{})

	// Engine callbacks arrive on the tick goroutine with the engine locked.
	engine.SetObserver(timer.ObserverFuncs{
		DisplayUpdate: func(text string) {
			fyne.Do(func() {
				trayManager.SetDisplay(text)
			})
		},
		Complete: func() {
			fyne.Do(refresh)
		},
		PhaseChange: func(timer.Phase, int) {
			fyne.Do(refresh)
		},
	})

	launchAtLogin := store.Settings().LaunchAtLogin
	store.OnChange(func(settings preferences.Settings) {
		fyne.Do(func() {
			if settings.LaunchAtLogin != launchAtLogin {
				launchAtLogin = settings.LaunchAtLogin
				if err := platform.SetLaunchAtLogin(loginItems, appName, settings.LaunchAtLogin); err != nil {
					logger.Error().Err(err).Str("event", "app.login_item_failed").Msg("launch at login not updated")
				}
			}
			trayManager.SetSettings(settings)
			prefsWindow.UpdateSettings(settings)
			refresh()
		})
	})
	if err := store.Watch(ctx); err != nil {
		logger.Warn().Err(err).Str("event", "settings.watch_failed").Msg("external settings edits will not be picked up")
	}

	desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
	logger.Info().
		Str("event", "app.started").
		Str("settings", store.Path()).
		Msg("isotope started")
	fyneApp.Run()

	engine.Stop()
	return nil
}
