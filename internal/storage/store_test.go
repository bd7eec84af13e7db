package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"isotope/internal/ui/preferences"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestStore(t *testing.T) *SettingsStore {
	t.Helper()
	store := NewSettingsStore(filepath.Join(t.TempDir(), settingsFileName), zerolog.Nop())
	store.debounce = 10 * time.Millisecond
	return store
}

func TestSettingsStoreUpdatePersistsAndNotifies(t *testing.T) {
	store := newTestStore(t)
	var notified []preferences.Settings
	store.OnChange(func(settings preferences.Settings) {
		notified = append(notified, settings)
	})

	updated, err := store.Update(func(settings *preferences.Settings) {
		settings.WorkDuration = 45 * time.Minute
		settings.SessionsBeforeLongBreak = 0
	})

	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, updated.WorkDuration)
	assert.Equal(t, 4, updated.SessionsBeforeLongBreak)
	assert.Equal(t, 45*time.Minute, store.TimerSettings().WorkDuration)
	require.Len(t, notified, 1)

	onDisk, err := LoadSettingsFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, updated, onDisk)
}

func TestSettingsStoreLoadKeepsDefaultsOnError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{{{"), 0o644))

	err := store.Load()

	require.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), store.Settings())
}

func TestSettingsStoreReloadOnlyNotifiesOnChange(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Update(func(settings *preferences.Settings) {
		settings.CompactMode = true
	})
	require.NoError(t, err)

	calls := 0
	store.OnChange(func(preferences.Settings) { calls++ })

	require.NoError(t, store.Reload())
	assert.Zero(t, calls)

	require.NoError(t, os.WriteFile(store.Path(), []byte("compact_mode: false\n"), 0o644))
	require.NoError(t, store.Reload())
	assert.Equal(t, 1, calls)
	assert.False(t, store.Settings().CompactMode)
}

func TestSettingsStoreWatchPicksUpExternalEdits(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := newTestStore(t)
	require.NoError(t, store.Load())

	var mu sync.Mutex
	var latest preferences.Settings
	store.OnChange(func(settings preferences.Settings) {
		mu.Lock()
		latest = settings
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, store.Watch(ctx))

	require.NoError(t, os.WriteFile(store.Path(), []byte("pomodoro_work_minutes: 35\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest.WorkDuration == 35*time.Minute
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 35*time.Minute, store.TimerSettings().WorkDuration)

	cancel()
}
