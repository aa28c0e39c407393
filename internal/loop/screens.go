package loop

import (
	"fmt"
	"math"

	"github.com/tomz197/flappy/internal/object"
)

// overlayBlinkFrequency is the prompt blink rate in Hz.
const overlayBlinkFrequency = 1.5

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	// On mode or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	mode := s.ctrl.Mode()
	if mode != s.prevMode || s.isInactive != s.wasInactive || s.shuttingDown != s.prevShutdown {
		s.chunkWriter.WriteString("\033[H\033[2J")
		s.prevMode = mode
		s.wasInactive = s.isInactive
		s.prevShutdown = s.shuttingDown
	}

	s.canvas.Clear()
	ctx := object.DrawContext{Canvas: s.canvas, Writer: s.chunkWriter}

	state := s.ctrl.State()
	for _, o := range state.Obstacles {
		if err := o.Draw(ctx); err != nil {
			return err
		}
	}
	if err := state.Player.Draw(ctx); err != nil {
		return err
	}
	for _, p := range s.debris {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}

	if err := s.canvas.Render(s.chunkWriter); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(s.chunkWriter); err != nil {
		return err
	}

	s.drawUI()
	return s.chunkWriter.Flush()
}

// drawUI draws the overlay for the current screen.
func (s *Session) drawUI() {
	width := s.canvas.TerminalWidth()
	height := s.canvas.TerminalHeight()
	centerY := height / 2

	switch {
	case s.shuttingDown:
		s.drawShutdownScreen(width, centerY)
		return
	case s.ctrl.Mode() == ModeIdle:
		s.drawStartScreen(width, centerY)
	case s.ctrl.Mode() == ModeRunning:
		s.drawPlayingHUD(width)
	case s.ctrl.Mode() == ModeOver:
		s.drawOverScreen(width, centerY)
	}

	if s.isInactive {
		s.chunkWriter.WriteCentered(width, height, "Inactive - press any key to stay connected")
	}
}

// drawStartScreen draws the title screen.
func (s *Session) drawStartScreen(width, centerY int) {
	s.chunkWriter.WriteCentered(width, centerY-4, "F L A P P Y")
	if object.ShouldRenderBlink(s.elapsed, overlayBlinkFrequency) {
		s.chunkWriter.WriteCentered(width, centerY-2, "Press SPACE or click to start")
	}
	s.chunkWriter.WriteCentered(width, centerY+6, "SPACE/W/click: flap   Q: quit")
}

// drawPlayingHUD draws the live score.
func (s *Session) drawPlayingHUD(width int) {
	s.chunkWriter.WriteCentered(width, 2, fmt.Sprintf(" %d ", s.ctrl.Score()))
}

// drawOverScreen draws the game-over screen with the final score.
func (s *Session) drawOverScreen(width, centerY int) {
	score, _ := s.ctrl.FinalScore()
	s.chunkWriter.WriteCentered(width, centerY-3, "GAME OVER")
	s.chunkWriter.WriteCentered(width, centerY-1, fmt.Sprintf("Score: %d", score))
	s.chunkWriter.WriteCentered(width, centerY+1, "Press R to restart")
}

// drawShutdownScreen draws the server shutdown notice with a countdown.
func (s *Session) drawShutdownScreen(width, centerY int) {
	s.chunkWriter.WriteCentered(width, centerY-1, "Server is shutting down")
	remaining := int(math.Ceil(math.Max(s.shutdownTimer, 0)))
	s.chunkWriter.WriteCentered(width, centerY+1, fmt.Sprintf("Disconnecting in %ds", remaining))
}
