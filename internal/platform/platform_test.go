package platform

import (
	"errors"
	"testing"

	"isotope/internal/core/timer"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSingleInstanceRejectsSecond(t *testing.T) {
	name := "isotope-test-" + t.Name()
	first, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer func() { _ = first.Release() }()

	second, err := AcquireSingleInstance(name)
	assert.Nil(t, second)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	require.NoError(t, first.Release())
	third, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.Equal(t, instanceAddress(name), third.Address())
	require.NoError(t, third.Release())
}

func TestInstanceGuardNilSafe(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "isotope", slug("  "))
	assert.Equal(t, "my-timer", slug("My Timer"))
}

type sentNotifications []*fyne.Notification

func (sent *sentNotifications) SendNotification(notification *fyne.Notification) {
	*sent = append(*sent, notification)
}

func TestNotifierForwardsToSender(t *testing.T) {
	var sent sentNotifications
	notifier := NewNotifier(&sent, zerolog.Nop())

	notifier.Notify(timer.Notification{Title: "Break Over", Body: "Ready to focus?"})

	require.Len(t, sent, 1)
	assert.Equal(t, "Break Over", sent[0].Title)
	assert.Equal(t, "Ready to focus?", sent[0].Content)
}

type fakeLoginItems struct {
	enabledPath string
	disabled    bool
}

func (items *fakeLoginItems) Enable(_ string, execPath string) error {
	items.enabledPath = execPath
	return nil
}

func (items *fakeLoginItems) Disable(string) error {
	items.disabled = true
	return nil
}

func TestSetLaunchAtLogin(t *testing.T) {
	items := &fakeLoginItems{}

	require.NoError(t, SetLaunchAtLogin(items, "Isotope", true))
	assert.NotEmpty(t, items.enabledPath)

	require.NoError(t, SetLaunchAtLogin(items, "Isotope", false))
	assert.True(t, items.disabled)
}
