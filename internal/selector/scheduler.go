package selector

import "time"

// FrameInterval is the animation frame period of ClockScheduler.
const FrameInterval = time.Second / 60

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or was stopped.
	Stop() bool
}

// Scheduler runs deferred callbacks for a List: settle timers and
// animation frames.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	// Frame calls f with the frame time on the next animation frame.
	Frame(f func(now time.Time)) Timer
}

// ClockScheduler is a Scheduler on the system clock. Callbacks run on
// their own goroutines.
type ClockScheduler struct {
	FrameInterval time.Duration
}

// NewClockScheduler returns a ClockScheduler ticking at FrameInterval.
func NewClockScheduler() *ClockScheduler {
	return &ClockScheduler{FrameInterval: FrameInterval}
}

func (s *ClockScheduler) Now() time.Time {
	return time.Now()
}

func (s *ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (s *ClockScheduler) Frame(f func(now time.Time)) Timer {
	interval := s.FrameInterval
	if interval <= 0 {
		interval = FrameInterval
	}
	return time.AfterFunc(interval, func() { f(time.Now()) })
}
