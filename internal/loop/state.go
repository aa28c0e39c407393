package loop

import (
	"github.com/tomz197/flappy/internal/object"
)

// Mode is the session lifecycle phase.
type Mode int

const (
	ModeIdle    Mode = iota // Start overlay, waiting for the first activate
	ModeRunning             // Active gameplay
	ModeOver                // Crashed, showing final score
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRunning:
		return "running"
	case ModeOver:
		return "over"
	default:
		return "unknown"
	}
}

// State holds everything one game session mutates. Only the Controller writes it.
type State struct {
	Mode      Mode
	Score     int
	Ticks     int                // Ticks since the session started
	Player    *object.Player     // The falling sprite
	Obstacles []*object.Obstacle // Oldest first
}

// EventType identifies a controller transition.
type EventType int

const (
	EventStarted EventType = iota
	EventScored
	EventOver
	EventReset
)

// EndReason says why a session ended.
type EndReason int

const (
	EndNone      EndReason = iota
	EndFloor                // Player fell past the floor
	EndCollision            // Player hit a barrier
	EndStopped              // Host stopped the session
)

// String returns the reason name used in logs.
func (r EndReason) String() string {
	switch r {
	case EndFloor:
		return "floor"
	case EndCollision:
		return "collision"
	case EndStopped:
		return "stopped"
	default:
		return "none"
	}
}

// Event is delivered to listeners after each transition.
type Event struct {
	Type   EventType
	Score  int       // Score after the transition
	Reason EndReason // Set for EventOver
}
