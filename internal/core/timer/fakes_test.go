package timer

import (
	"fmt"
	"sync"
	"time"

	"isotope/internal/core/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(delta)
}

type fakeTask struct {
	interval time.Duration
	fn       func()
	stopped  bool
}

func (task *fakeTask) Stop() {
	task.stopped = true
}

// fakeScheduler never fires on its own; tests call Fire.
type fakeScheduler struct {
	tasks []*fakeTask
}

func (scheduler *fakeScheduler) Every(interval time.Duration, fn func()) Task {
	task := &fakeTask{interval: interval, fn: fn}
	scheduler.tasks = append(scheduler.tasks, task)
	return task
}

// Fire runs every task that has not been stopped.
func (scheduler *fakeScheduler) Fire() {
	for _, task := range append([]*fakeTask(nil), scheduler.tasks...) {
		if !task.stopped {
			task.fn()
		}
	}
}

func (scheduler *fakeScheduler) active() int {
	count := 0
	for _, task := range scheduler.tasks {
		if !task.stopped {
			count++
		}
	}
	return count
}

type fakeSettings struct {
	mu       sync.Mutex
	settings model.TimerSettings
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: model.TimerSettings{
		ShowSeconds:             true,
		WorkDuration:            25 * time.Minute,
		ShortBreakDuration:      5 * time.Minute,
		LongBreakDuration:       15 * time.Minute,
		SessionsBeforeLongBreak: 4,
	}}
}

func (fake *fakeSettings) TimerSettings() model.TimerSettings {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.settings
}

func (fake *fakeSettings) update(apply func(*model.TimerSettings)) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	apply(&fake.settings)
}

// recorder keeps every callback in arrival order.
type recorder struct {
	mu            sync.Mutex
	events        []string
	displays      []string
	completions   int
	notifications []Notification
}

func (rec *recorder) OnDisplayUpdate(text string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.displays = append(rec.displays, text)
	rec.events = append(rec.events, "display:"+text)
}

func (rec *recorder) OnComplete() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.completions++
	rec.events = append(rec.events, "complete")
}

func (rec *recorder) OnPhaseChange(phase Phase, session int) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = append(rec.events, fmt.Sprintf("phase:%s:%d", phase, session))
}

func (rec *recorder) Notify(notification Notification) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.notifications = append(rec.notifications, notification)
	rec.events = append(rec.events, "notify:"+notification.Title)
}

func (rec *recorder) lastDisplay() string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.displays) == 0 {
		return ""
	}
	return rec.displays[len(rec.displays)-1]
}

func (rec *recorder) reset() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = nil
	rec.displays = nil
	rec.completions = 0
	rec.notifications = nil
}
