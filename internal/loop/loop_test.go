package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTermSize() (int, int, error) {
	return 80, 32, nil
}

func runSession(t *testing.T, ctx context.Context, r io.Reader, opts SessionOptions) (*Session, string) {
	t.Helper()
	var out bytes.Buffer
	opts.TermSizeFunc = fixedTermSize
	opts.Seed = 1
	s := NewSession(bufio.NewReader(r), &out, opts)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop")
	}
	return s, out.String()
}

func TestSessionQuitShowsStartScreen(t *testing.T) {
	s, out := runSession(t, context.Background(), strings.NewReader("q"), SessionOptions{})

	assert.Contains(t, out, "F L A P P Y")
	assert.Contains(t, out, "\033[?25l", "cursor hidden while playing")
	assert.True(t, strings.HasSuffix(out, "\033[H\033[2J\033[?1006l\033[?1000l\033[?25h"),
		"screen cleared before the terminal is restored")
	assert.Equal(t, ModeIdle, s.Controller().Mode())
}

func TestSessionActivateStartsGame(t *testing.T) {
	s, out := runSession(t, context.Background(), strings.NewReader(" q"), SessionOptions{Username: "tester"})

	assert.Equal(t, ModeRunning, s.Controller().Mode())
	assert.Contains(t, out, "█", "player is rendered with half blocks")
}

func TestSessionShutdownNotice(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, out := runSession(t, ctx, pr, SessionOptions{ShutdownDelay: time.Nanosecond})
	assert.Contains(t, out, "Server is shutting down")
}

func TestSessionRestartAfterCrash(t *testing.T) {
	pr, pw := io.Pipe()
	var out bytes.Buffer
	s := NewSession(bufio.NewReader(pr), &out, SessionOptions{TermSizeFunc: fixedTermSize, Seed: 1})

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	// Start and let the player fall to the floor (about 40 frames).
	_, err := pw.Write([]byte(" "))
	require.NoError(t, err)
	time.Sleep(2 * time.Second)

	_, err = pw.Write([]byte("r"))
	require.NoError(t, err)
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, pw.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop")
	}

	assert.Contains(t, out.String(), "GAME OVER")
	assert.Equal(t, ModeIdle, s.Controller().Mode())
	assert.Empty(t, s.debris, "debris is released on reset")
}
