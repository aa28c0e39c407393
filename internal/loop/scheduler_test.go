package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameSchedulerRunsFrameOnce(t *testing.T) {
	s := NewFrameScheduler()
	calls := 0
	s.RequestFrame(func() { calls++ })

	s.Advance(16 * time.Millisecond)
	s.Advance(16 * time.Millisecond)
	assert.Equal(t, 1, calls)
}

func TestFrameSchedulerDefersFramesRequestedDuringAdvance(t *testing.T) {
	s := NewFrameScheduler()
	calls := 0
	var loop func()
	loop = func() {
		calls++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		s.Advance(time.Millisecond)
	}
	assert.Equal(t, 5, calls)
}

func TestFrameSchedulerInterval(t *testing.T) {
	s := NewFrameScheduler()
	fired := 0
	s.Every(1500*time.Millisecond, func() { fired++ })

	s.Advance(1499 * time.Millisecond)
	assert.Equal(t, 0, fired)
	s.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	s.Advance(3 * time.Second)
	assert.Equal(t, 3, fired, "a long frame catches up on every missed interval")
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := NewFrameScheduler()
	frames, ticks := 0, 0
	cancelFrame := s.RequestFrame(func() { frames++ })
	cancelTimer := s.Every(time.Second, func() { ticks++ })

	cancelFrame()
	cancelTimer()
	cancelTimer()
	s.Advance(5 * time.Second)

	assert.Zero(t, frames)
	assert.Zero(t, ticks)
	f, tm := s.Pending()
	assert.Zero(t, f)
	assert.Zero(t, tm)
}

func TestFrameSchedulerTimersBeforeFrames(t *testing.T) {
	s := NewFrameScheduler()
	var order []string
	s.RequestFrame(func() { order = append(order, "frame") })
	s.Every(time.Second, func() { order = append(order, "timer") })

	s.Advance(time.Second)
	assert.Equal(t, []string{"timer", "frame"}, order)
	assert.Equal(t, time.Second, s.Now())
}
