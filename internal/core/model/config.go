package model

import "time"

// TimerSettings contains the values the timer engine reads from user preferences.
type TimerSettings struct {
	ShowSeconds bool
	CompactMode bool

	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration

	SessionsBeforeLongBreak int
	AutoStartNextSession    bool
}
