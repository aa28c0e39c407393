// Package input decodes raw terminal bytes into game triggers.
package input

import (
	"bufio"
	"bytes"
)

// Input represents the triggers seen since the previous frame.
// Triggers are edge events: a held key only counts when the terminal repeats it.
type Input struct {
	Activate bool   // Start the game or flap
	Restart  bool   // Leave the game-over screen
	Quit     bool   // Disconnect
	Pressed  []byte // Raw bytes read this frame (used for inactivity tracking)
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has reached EOF or failed.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and parses them.
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return Parse(buf)
}

// Parse decodes one frame's worth of bytes.
// Recognised: Space/w/k/Up arrow and mouse button presses activate; r/Enter restart;
// q/Ctrl-C quit.
func Parse(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == '<' {
				// SGR mouse report: ESC [ < btn ; col ; row (M|m)
				if n, pressed := parseSGRMouse(buf[i+3:]); n > 0 {
					if pressed {
						in.Activate = true
					}
					i += 2 + n
					continue
				}
			}
			if buf[i+2] == 'A' { // Up arrow
				in.Activate = true
				i += 2
				continue
			}
			// Other CSI sequences (arrows, focus events) are ignored as a unit.
			i += 2
			continue
		}

		switch b {
		case ' ', 'w', 'W', 'k', 'K':
			in.Activate = true
		case 'r', 'R', '\r', '\n':
			in.Restart = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}
	return in
}

// parseSGRMouse parses the tail of an SGR mouse report after "ESC [ <".
// Returns the number of bytes consumed (0 if malformed) and whether it is a
// left, middle or right button press.
func parseSGRMouse(buf []byte) (int, bool) {
	end := bytes.IndexAny(buf, "Mm")
	if end < 0 {
		return 0, false
	}
	fields := bytes.Split(buf[:end], []byte{';'})
	if len(fields) != 3 {
		return 0, false
	}
	btn := 0
	for _, d := range fields[0] {
		if d < '0' || d > '9' {
			return 0, false
		}
		btn = btn*10 + int(d-'0')
	}
	// Motion (32) and wheel (64+) reports are not presses.
	pressed := buf[end] == 'M' && btn < 3
	return end + 1, pressed
}
