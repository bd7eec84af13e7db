package timer

import (
	"sync"
	"time"

	"isotope/internal/core/model"

	"github.com/rs/zerolog"
)

// DefaultTickInterval keeps the display at sub-second granularity.
const DefaultTickInterval = 500 * time.Millisecond

// SettingsProvider supplies the current user preferences.
// The engine reads it on every transition and never caches the result.
type SettingsProvider interface {
	TimerSettings() model.TimerSettings
}

// Options contains runtime collaborators for the Engine.
type Options struct {
	Clock        Clock
	Scheduler    Scheduler
	TickInterval time.Duration
	Logger       zerolog.Logger
}

// Snapshot is a point-in-time view of the engine state.
type Snapshot struct {
	Mode      Mode
	Running   bool
	Elapsed   time.Duration
	Remaining time.Duration
	Target    time.Duration
	Phase     Phase
	Session   int
	Display   string
}

// Engine is the stopwatch, countdown and Pomodoro state machine.
type Engine struct {
	mu        sync.Mutex
	settings  SettingsProvider
	options   Options
	logger    zerolog.Logger
	observer  Observer
	notifier  Notifier
	task      Task
	runID     uint64
	mode      Mode
	running   bool
	startTime time.Time
	banked    time.Duration
	target    time.Duration
	phase     Phase
	session   int
}

// New creates a stopped Engine in stopwatch mode.
func New(settings SettingsProvider, options Options) *Engine {
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler
	}
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}

	return &Engine{
		settings: settings,
		options:  options,
		logger:   options.Logger,
		mode:     ModeStopwatch,
		phase:    PhaseWork,
		session:  1,
	}
}

// SetObserver replaces the observer. Passing nil detaches it.
func (engine *Engine) SetObserver(observer Observer) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.observer = observer
}

// SetNotifier replaces the notifier. Passing nil disables notifications.
func (engine *Engine) SetNotifier(notifier Notifier) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.notifier = notifier
}

// SetMode switches mode and clears progress, even when the mode is unchanged.
func (engine *Engine) SetMode(mode Mode) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.stopLocked()
	engine.banked = 0
	engine.mode = mode
	if mode == ModePomodoro {
		engine.restartPomodoroLocked()
	}

	engine.logger.Debug().
		Str("event", "timer.mode_changed").
		Str("mode", string(mode)).
		Msg("mode changed")
	engine.emitDisplayLocked()
}

// SetTimerDuration sets the countdown target. It is ignored outside timer mode.
// Callers must pass a positive number of minutes.
func (engine *Engine) SetTimerDuration(minutes int) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.mode != ModeTimer {
		return
	}
	engine.stopLocked()
	engine.banked = 0
	engine.target = time.Duration(minutes) * time.Minute
	engine.emitDisplayLocked()
}

// Start begins a run segment and refreshes the display immediately.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.startLocked()
}

// Stop ends the current run segment, keeping its elapsed time.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
}

// Reset clears progress. Pomodoro restarts at the first work session and
// timer mode keeps its target.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.stopLocked()
	engine.banked = 0
	if engine.mode == ModePomodoro {
		engine.restartPomodoroLocked()
	}
	engine.emitDisplayLocked()
}

// SkipPomodoroPhase advances to the next Pomodoro phase regardless of remaining time.
func (engine *Engine) SkipPomodoroPhase() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.mode != ModePomodoro {
		return
	}
	engine.advancePhaseLocked()
}

// FormattedTime renders the current display text.
func (engine *Engine) FormattedTime() string {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.formattedLocked()
}

// Mode returns the current mode.
func (engine *Engine) Mode() Mode {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.mode
}

// IsRunning reports whether a run segment is active.
func (engine *Engine) IsRunning() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

// Elapsed returns the banked time plus the current run segment.
func (engine *Engine) Elapsed() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.elapsedLocked()
}

// Remaining returns the countdown time left, never negative.
func (engine *Engine) Remaining() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remainingLocked()
}

// TargetDuration returns the countdown target.
func (engine *Engine) TargetDuration() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.target
}

// PomodoroPhase returns the current Pomodoro phase.
func (engine *Engine) PomodoroPhase() Phase {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.phase
}

// PomodoroSession returns the current Pomodoro session number.
func (engine *Engine) PomodoroSession() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.session
}

// Snapshot returns the whole engine state under a single lock.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return Snapshot{
		Mode:      engine.mode,
		Running:   engine.running,
		Elapsed:   engine.elapsedLocked(),
		Remaining: engine.remainingLocked(),
		Target:    engine.target,
		Phase:     engine.phase,
		Session:   engine.session,
		Display:   engine.formattedLocked(),
	}
}

func (engine *Engine) startLocked() {
	if engine.running {
		return
	}
	engine.running = true
	engine.startTime = engine.options.Clock.Now()
	engine.runID++
	runID := engine.runID
	engine.task = engine.options.Scheduler.Every(engine.options.TickInterval, func() {
		engine.scheduledTick(runID)
	})

	engine.logger.Debug().
		Str("event", "timer.started").
		Str("mode", string(engine.mode)).
		Dur("banked", engine.banked).
		Msg("run segment started")
	engine.tickLocked()
}

func (engine *Engine) stopLocked() {
	if !engine.running {
		return
	}
	engine.banked = engine.elapsedLocked()
	engine.running = false
	engine.startTime = time.Time{}
	if engine.task != nil {
		engine.task.Stop()
		engine.task = nil
	}

	engine.logger.Debug().
		Str("event", "timer.stopped").
		Str("mode", string(engine.mode)).
		Dur("elapsed", engine.banked).
		Msg("run segment stopped")
}

// scheduledTick drops ticks that belong to a cancelled run segment.
func (engine *Engine) scheduledTick(runID uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running || runID != engine.runID {
		return
	}
	engine.tickLocked()
}

func (engine *Engine) tickLocked() {
	engine.emitDisplayLocked()
	if engine.mode == ModeStopwatch {
		return
	}
	if engine.remainingLocked() <= 0 {
		engine.completeLocked()
	}
}

func (engine *Engine) completeLocked() {
	engine.stopLocked()

	engine.logger.Info().
		Str("event", "timer.completed").
		Str("mode", string(engine.mode)).
		Str("phase", string(engine.phase)).
		Int("session", engine.session).
		Msg("countdown complete")

	if engine.observer != nil {
		engine.observer.OnComplete()
	}
	if notification, ok := notificationFor(engine.mode, engine.phase); ok && engine.notifier != nil {
		engine.notifier.Notify(notification)
	}

	if engine.mode != ModePomodoro {
		return
	}
	engine.advancePhaseLocked()
	if engine.settings.TimerSettings().AutoStartNextSession {
		engine.startLocked()
	}
}

func (engine *Engine) advancePhaseLocked() {
	settings := engine.settings.TimerSettings()
	engine.banked = 0
	if engine.running {
		engine.startTime = engine.options.Clock.Now()
	}

	switch engine.phase {
	case PhaseWork:
		if engine.session >= settings.SessionsBeforeLongBreak {
			engine.phase = PhaseLongBreak
			engine.target = settings.LongBreakDuration
		} else {
			engine.phase = PhaseShortBreak
			engine.target = settings.ShortBreakDuration
		}
	case PhaseShortBreak:
		engine.phase = PhaseWork
		engine.session++
		engine.target = settings.WorkDuration
	case PhaseLongBreak:
		engine.phase = PhaseWork
		engine.session = 1
		engine.target = settings.WorkDuration
	}

	engine.logger.Info().
		Str("event", "timer.phase_changed").
		Str("phase", string(engine.phase)).
		Int("session", engine.session).
		Dur("target", engine.target).
		Msg("pomodoro phase changed")

	if engine.observer != nil {
		engine.observer.OnPhaseChange(engine.phase, engine.session)
	}
	engine.emitDisplayLocked()
}

func (engine *Engine) restartPomodoroLocked() {
	engine.phase = PhaseWork
	engine.session = 1
	engine.target = engine.settings.TimerSettings().WorkDuration
}

func (engine *Engine) elapsedLocked() time.Duration {
	if !engine.running {
		return engine.banked
	}
	segment := engine.options.Clock.Now().Sub(engine.startTime)
	if segment < 0 {
		segment = 0
	}
	return engine.banked + segment
}

func (engine *Engine) remainingLocked() time.Duration {
	remaining := engine.target - engine.elapsedLocked()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (engine *Engine) formattedLocked() string {
	display := engine.settings.TimerSettings()
	value := engine.remainingLocked()
	if engine.mode == ModeStopwatch {
		value = engine.elapsedLocked()
	}
	return FormatDuration(value, display.CompactMode, display.ShowSeconds)
}

func (engine *Engine) emitDisplayLocked() {
	if engine.observer == nil {
		return
	}
	engine.observer.OnDisplayUpdate(engine.formattedLocked())
}
