package main

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSizeTrackerUpdate(t *testing.T) {
	s := newSizeTracker(80, 24)
	w, h, err := s.getSize()
	assert.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.update(100+n, 40)
			_, _, _ = s.getSize()
		}(i)
	}
	wg.Wait()

	_, h, _ = s.getSize()
	assert.Equal(t, 40, h)
}

func TestBeginSessionRefusedDuringShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &server{logger: log.New(io.Discard), shutdown: ctx}

	assert.True(t, srv.beginSession())
	srv.sessions.Done()

	cancel()
	assert.False(t, srv.beginSession())
}

func TestWaitSessionsClosesRegistration(t *testing.T) {
	srv := &server{logger: log.New(io.Discard), shutdown: context.Background()}

	assert.True(t, srv.beginSession())
	go func() {
		time.Sleep(10 * time.Millisecond)
		srv.sessions.Done()
	}()

	srv.waitSessions(time.Second)
	assert.False(t, srv.beginSession(), "no sessions accepted once waiting started")
}
