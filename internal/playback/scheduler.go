package playback

import (
	"sync"
	"time"
)

// Scheduler abstracts the display-refresh callback driving the frame loop so
// the engine can run against a virtual clock in tests. At most one tick is
// pending at a time; the engine schedules the next tick only after the
// current one finishes.
type Scheduler interface {
	// ScheduleTick arranges for fn to run once after the frame interval,
	// replacing any pending tick.
	ScheduleTick(fn func())
	// CancelTick drops the pending tick, if any. A tick already executing
	// runs to completion.
	CancelTick()
}

// FrameScheduler schedules ticks on a fixed frame interval using the
// runtime timer.
type FrameScheduler struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewFrameScheduler builds a scheduler ticking at the given frame rate.
func NewFrameScheduler(frameRate int) *FrameScheduler {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &FrameScheduler{interval: time.Second / time.Duration(frameRate)}
}

// ScheduleTick implements Scheduler.
func (s *FrameScheduler) ScheduleTick(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, fn)
}

// CancelTick implements Scheduler.
func (s *FrameScheduler) CancelTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Interval returns the frame interval.
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}
