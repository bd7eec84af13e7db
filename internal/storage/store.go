package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"isotope/internal/core/model"
	"isotope/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const defaultReloadDebounce = 250 * time.Millisecond

// SettingsStore holds the live user preferences backed by a YAML file.
// It is safe for concurrent use and serves as the timer engine's settings provider.
type SettingsStore struct {
	mu       sync.RWMutex
	path     string
	settings preferences.Settings
	logger   zerolog.Logger
	debounce time.Duration

	listenersMu sync.Mutex
	listeners   []func(preferences.Settings)
}

// NewSettingsStore creates a store for path, starting from default settings.
func NewSettingsStore(path string, logger zerolog.Logger) *SettingsStore {
	return &SettingsStore{
		path:     path,
		settings: preferences.DefaultSettings(),
		logger:   logger,
		debounce: defaultReloadDebounce,
	}
}

// Path returns the backing file path.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads the settings file. On failure the current values are kept.
func (store *SettingsStore) Load() error {
	settings, err := LoadSettingsFile(store.path)
	if err != nil {
		return fmt.Errorf("load settings %s: %w", store.path, err)
	}

	store.mu.Lock()
	store.settings = settings.Sanitized()
	store.mu.Unlock()
	return nil
}

// Settings returns a copy of the current preferences.
func (store *SettingsStore) Settings() preferences.Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// TimerSettings returns the values consumed by the timer engine.
func (store *SettingsStore) TimerSettings() model.TimerSettings {
	return store.Settings().TimerSettings()
}

// OnChange registers a listener called after every applied change.
func (store *SettingsStore) OnChange(listener func(preferences.Settings)) {
	store.listenersMu.Lock()
	defer store.listenersMu.Unlock()
	store.listeners = append(store.listeners, listener)
}

// Update applies a change, persists it and notifies listeners.
// The in-memory value is updated even when saving fails.
func (store *SettingsStore) Update(apply func(*preferences.Settings)) (preferences.Settings, error) {
	store.mu.Lock()
	settings := store.settings
	apply(&settings)
	settings = settings.Sanitized()
	store.settings = settings
	store.mu.Unlock()

	store.notify(settings)

	if err := SaveSettingsFile(store.path, settings); err != nil {
		return settings, fmt.Errorf("save settings %s: %w", store.path, err)
	}
	store.logger.Debug().
		Str("event", "settings.saved").
		Str("path", store.path).
		Msg("settings saved")
	return settings, nil
}

// Reload re-reads the file and notifies listeners when anything changed.
func (store *SettingsStore) Reload() error {
	loaded, err := LoadSettingsFile(store.path)
	if err != nil {
		return fmt.Errorf("reload settings %s: %w", store.path, err)
	}
	loaded = loaded.Sanitized()

	store.mu.Lock()
	changed := loaded != store.settings
	store.settings = loaded
	store.mu.Unlock()

	if changed {
		store.logger.Info().
			Str("event", "settings.reloaded").
			Str("path", store.path).
			Msg("settings changed on disk")
		store.notify(loaded)
	}
	return nil
}

// Watch reloads the settings whenever the file is edited externally,
// until ctx is cancelled.
func (store *SettingsStore) Watch(ctx context.Context) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}

	store.logger.Debug().
		Str("event", "settings.watcher_started").
		Str("path", store.path).
		Msg("watching settings file")

	go store.watchLoop(ctx, watcher)
	return nil
}

func (store *SettingsStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	target := filepath.Clean(store.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(store.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				if err := store.Reload(); err != nil {
					store.logger.Warn().
						Err(err).
						Str("event", "settings.reload_failed").
						Msg("keeping previous settings")
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			store.logger.Error().
				Err(err).
				Str("event", "settings.watcher_error").
				Msg("settings watcher error")
		}
	}
}

func (store *SettingsStore) notify(settings preferences.Settings) {
	store.listenersMu.Lock()
	listeners := append(([]func(preferences.Settings))(nil), store.listeners...)
	store.listenersMu.Unlock()

	for _, listener := range listeners {
		listener(settings)
	}
}
