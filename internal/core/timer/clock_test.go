package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestTickerSchedulerRunsUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var calls atomic.Int32
	task := TickerScheduler.Every(2*time.Millisecond, func() {
		calls.Add(1)
	})

	require.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, time.Millisecond)

	task.Stop()
	task.Stop()
	time.Sleep(10 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}

func TestTickerSchedulerNeverOverlaps(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var inFlight, overlaps, calls atomic.Int32
	task := TickerScheduler.Every(time.Millisecond, func() {
		if inFlight.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(3 * time.Millisecond)
		inFlight.Add(-1)
		calls.Add(1)
	})

	require.Eventually(t, func() bool {
		return calls.Load() >= 5
	}, time.Second, time.Millisecond)
	task.Stop()

	assert.Zero(t, overlaps.Load())
}

func TestSystemClockNow(t *testing.T) {
	before := time.Now()
	now := SystemClock.Now()
	assert.False(t, now.Before(before))
}

func TestObserverFuncsSkipsNilFields(t *testing.T) {
	var got []string
	observer := ObserverFuncs{
		DisplayUpdate: func(text string) { got = append(got, text) },
	}

	assert.NotPanics(t, func() {
		observer.OnDisplayUpdate("01:00")
		observer.OnComplete()
		observer.OnPhaseChange(PhaseWork, 1)
	})
	assert.Equal(t, []string{"01:00"}, got)
}

func TestNotificationFor(t *testing.T) {
	_, ok := notificationFor(ModeStopwatch, PhaseWork)
	assert.False(t, ok)

	notification, ok := notificationFor(ModeTimer, PhaseLongBreak)
	require.True(t, ok)
	assert.Equal(t, "Timer Complete", notification.Title)

	notification, _ = notificationFor(ModePomodoro, PhaseWork)
	assert.Equal(t, Notification{Title: "Work Session Complete", Body: "Time for a break!"}, notification)

	notification, _ = notificationFor(ModePomodoro, PhaseLongBreak)
	assert.Equal(t, Notification{Title: "Break Over", Body: "Ready to focus?"}, notification)
}
