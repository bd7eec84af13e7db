package timer

// Mode represents the top-level timer behaviour.
type Mode string

const (
	ModeStopwatch Mode = "Stopwatch"
	ModeTimer     Mode = "Timer"
	ModePomodoro  Mode = "Pomodoro"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeStopwatch, ModeTimer, ModePomodoro}

// Phase represents the Pomodoro sub-state.
type Phase string

const (
	PhaseWork       Phase = "Work"
	PhaseShortBreak Phase = "Break"
	PhaseLongBreak  Phase = "Long Break"
)

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Observer receives engine updates.
// Callbacks run synchronously while the engine is locked, so implementations
// must not call back into the Engine from inside a callback.
type Observer interface {
	OnDisplayUpdate(text string)
	OnComplete()
	OnPhaseChange(phase Phase, session int)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	DisplayUpdate func(text string)
	Complete      func()
	PhaseChange   func(phase Phase, session int)
}

func (funcs ObserverFuncs) OnDisplayUpdate(text string) {
	if funcs.DisplayUpdate != nil {
		funcs.DisplayUpdate(text)
	}
}

func (funcs ObserverFuncs) OnComplete() {
	if funcs.Complete != nil {
		funcs.Complete()
	}
}

func (funcs ObserverFuncs) OnPhaseChange(phase Phase, session int) {
	if funcs.PhaseChange != nil {
		funcs.PhaseChange(phase, session)
	}
}

// Notification is a user-facing message requested on countdown completion.
type Notification struct {
	Title string
	Body  string
}

// Notifier delivers notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(notification Notification)
}

// notificationFor selects the message for the mode and phase that just completed.
func notificationFor(mode Mode, phase Phase) (Notification, bool) {
	switch mode {
	case ModeTimer:
		return Notification{Title: "Timer Complete", Body: "Your timer has finished!"}, true
	case ModePomodoro:
		if phase.IsBreak() {
			return Notification{Title: "Break Over", Body: "Ready to focus?"}, true
		}
		return Notification{Title: "Work Session Complete", Body: "Time for a break!"}, true
	}
	return Notification{}, false
}
