package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowSaveParsesFields(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = &settings
	})

	prefs.workDur.SetText("50")
	prefs.shortDur.SetText("0")
	prefs.longDur.SetText("abc")
	prefs.sessions.SetText("3")
	prefs.autoStart.SetChecked(true)
	prefs.compact.SetChecked(true)
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.Equal(t, 50*time.Minute, saved.WorkDuration)
	assert.Equal(t, 5*time.Minute, saved.ShortBreakDuration)
	assert.Equal(t, 15*time.Minute, saved.LongBreakDuration)
	assert.Equal(t, 3, saved.SessionsBeforeLongBreak)
	assert.True(t, saved.AutoStartNextSession)
	assert.True(t, saved.CompactMode)
	assert.True(t, saved.ShowSeconds)
}

func TestDurationPromptRejectsInvalidInput(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var got []int
	prompt := NewDurationPrompt(app, func(minutes int) {
		got = append(got, minutes)
	})

	prompt.Show()
	assert.Equal(t, "25", prompt.input.Text)

	prompt.input.SetText("-3")
	prompt.submit()
	assert.Empty(t, got)
	assert.NotEmpty(t, prompt.errors.Text)

	prompt.input.SetText("12")
	prompt.submit()
	assert.Equal(t, []int{12}, got)
}
