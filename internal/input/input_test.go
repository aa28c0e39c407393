package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTriggers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Input
	}{
		{"space", " ", Input{Activate: true}},
		{"w key", "w", Input{Activate: true}},
		{"up arrow", "\x1b[A", Input{Activate: true}},
		{"down arrow ignored", "\x1b[B", Input{}},
		{"restart", "r", Input{Restart: true}},
		{"enter", "\r", Input{Restart: true}},
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"mouse press", "\x1b[<0;12;7M", Input{Activate: true}},
		{"mouse release", "\x1b[<0;12;7m", Input{}},
		{"wheel", "\x1b[<64;12;7M", Input{}},
		{"mixed", "x r ", Input{Activate: true, Restart: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.in))
			assert.Equal(t, tt.want.Activate, got.Activate, "activate")
			assert.Equal(t, tt.want.Restart, got.Restart, "restart")
			assert.Equal(t, tt.want.Quit, got.Quit, "quit")
			assert.Equal(t, []byte(tt.in), got.Pressed)
		})
	}
}

func TestMouseReportIsConsumedAsUnit(t *testing.T) {
	// Report bytes are consumed as a unit, so the trailing "M" is not read as a key.
	got := Parse([]byte("\x1b[<2;113;81Mq"))
	assert.True(t, got.Activate)
	assert.True(t, got.Quit)
	assert.False(t, got.Restart)
}

func TestReadInputDrainsStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" q")))

	var got Input
	assert.Eventually(t, func() bool {
		in := ReadInput(s)
		got.Activate = got.Activate || in.Activate
		got.Quit = got.Quit || in.Quit
		return got.Activate && got.Quit && s.Closed()
	}, time.Second, 5*time.Millisecond)
}
