package loop

import "time"

// Cancel stops a scheduled callback. Calling it more than once is harmless.
type Cancel func()

// Scheduler drives the controller. Frame callbacks run once on the next display
// refresh; interval callbacks repeat until cancelled.
type Scheduler interface {
	RequestFrame(fn func()) Cancel
	Every(interval time.Duration, fn func()) Cancel
}

type frameRequest struct {
	fn        func()
	cancelled bool
}

type intervalTimer struct {
	interval  time.Duration
	next      time.Duration
	fn        func()
	cancelled bool
}

// FrameScheduler is a cooperative, single-threaded Scheduler whose clock only
// moves when the host calls Advance once per displayed frame.
type FrameScheduler struct {
	now    time.Duration
	frames []*frameRequest
	timers []*intervalTimer
}

// Compile-time check that FrameScheduler implements Scheduler.
var _ Scheduler = (*FrameScheduler)(nil)

// NewFrameScheduler creates a scheduler at time zero.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestFrame queues fn for the next Advance.
// Callbacks requested while frames are running wait for the following Advance.
func (s *FrameScheduler) RequestFrame(fn func()) Cancel {
	req := &frameRequest{fn: fn}
	s.frames = append(s.frames, req)
	return func() { req.cancelled = true }
}

// Every runs fn each time interval elapses on the scheduler clock.
func (s *FrameScheduler) Every(interval time.Duration, fn func()) Cancel {
	if interval <= 0 {
		interval = time.Millisecond
	}
	t := &intervalTimer{interval: interval, next: s.now + interval, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock forward by dt, fires every interval that came due and
// then runs the frame callbacks that were pending before the call.
func (s *FrameScheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	for _, t := range s.timers {
		for !t.cancelled && t.next <= s.now {
			t.next += t.interval
			t.fn()
		}
	}
	s.timers = pruneTimers(s.timers)

	frames := s.frames
	s.frames = nil
	for _, f := range frames {
		if !f.cancelled {
			f.fn()
		}
	}
}

// Now returns the scheduler clock.
func (s *FrameScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of live frame requests and interval timers.
func (s *FrameScheduler) Pending() (frames, timers int) {
	for _, f := range s.frames {
		if !f.cancelled {
			frames++
		}
	}
	for _, t := range s.timers {
		if !t.cancelled {
			timers++
		}
	}
	return frames, timers
}

func pruneTimers(timers []*intervalTimer) []*intervalTimer {
	kept := timers[:0]
	for _, t := range timers {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	clear(timers[len(kept):])
	return kept
}
