package timer

import (
	"sync"
	"time"
)

// Clock provides the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// Task is a scheduled periodic callback.
type Task interface {
	Stop()
}

// Scheduler runs fn every interval until the returned Task is stopped.
// Implementations must never run fn concurrently with itself.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// SystemClock is the default Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker.
var TickerScheduler Scheduler = tickerScheduler{}

type tickerScheduler struct{}

func (tickerScheduler) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{stopCh: make(chan struct{})}
	go task.run(interval, fn)
	return task
}

type tickerTask struct {
	stopCh chan struct{}
	once   sync.Once
}

func (task *tickerTask) run(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-task.stopCh:
			return
		case <-ticker.C:
			fn()
		}
	}
}

// Stop cancels future ticks. A tick already in progress runs to completion.
func (task *tickerTask) Stop() {
	task.once.Do(func() {
		close(task.stopCh)
	})
}
