package wheel

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler schedules fn to run once on the next display frame.
type FrameScheduler interface {
	ScheduleFrame(fn func(now time.Time))
}

// TimerScheduler fires frames on a fixed interval using time.AfterFunc.
type TimerScheduler struct {
	Interval time.Duration
}

func (s TimerScheduler) ScheduleFrame(fn func(now time.Time)) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	time.AfterFunc(interval, func() { fn(time.Now()) })
}

// ManualScheduler queues frames until Advance is called. Used to drive
// animations deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func(time.Time)
}

func (s *ManualScheduler) ScheduleFrame(fn func(now time.Time)) {
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Pending is the number of queued frames.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Advance runs the frames queued so far at now. Frames they schedule stay
// queued for the next call.
func (s *ManualScheduler) Advance(now time.Time) int {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range queued {
		fn(now)
	}
	return len(queued)
}
