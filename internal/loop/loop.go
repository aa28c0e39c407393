package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/input"
	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/object"
)

// maxFrameDelta caps the clock step after a stall so spawns do not burst.
const maxFrameDelta = 100 * time.Millisecond

// SessionOptions configures a terminal session.
type SessionOptions struct {
	TermSizeFunc  draw.TermSizeFunc
	Tuning        *config.Tuning // nil uses config.Default()
	Logger        *log.Logger
	Username      string
	ShutdownDelay time.Duration // How long the shutdown notice stays up; 0 uses the default
	Seed          int64         // 0 seeds from the clock
}

// Session runs one player's game on a terminal: Input → Update → Draw at a fixed rate.
type Session struct {
	ctrl         *Controller
	sched        *FrameScheduler
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	rng          *rand.Rand
	username     string

	input         input.Input
	running       bool
	delta         time.Duration
	elapsed       float64 // Seconds since the session began (for blinking)
	lastInput     time.Time
	isInactive    bool
	wasInactive   bool
	shuttingDown  bool
	shutdownTimer float64
	prevMode      Mode
	prevShutdown  bool
	debris        []*object.Particle
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts SessionOptions) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	shutdown := opts.ShutdownDelay
	if shutdown == 0 {
		shutdown = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	}

	s := &Session{
		sched:         NewFrameScheduler(),
		writer:        w,
		inputStream:   input.StartStream(r),
		termSizeFunc:  termSizeFunc,
		logger:        logger,
		rng:           rand.New(rand.NewSource(seed)),
		username:      opts.Username,
		running:       true,
		lastInput:     time.Now(),
		shutdownTimer: shutdown.Seconds(),
	}
	s.ctrl = NewController(tuning, s.sched,
		WithRand(s.rng),
		WithLogger(logger),
		WithListener(s.onEvent),
	)

	// Canvas size is fixed up on the first frame by updateScreen.
	s.canvas = draw.NewScaledCanvas(0, 0, tuning.Field.Width, tuning.Field.Height)
	s.chunkWriter = draw.NewChunkWriter(w, 0, 0)
	return s
}

// Controller returns the game controller driven by this session.
func (s *Session) Controller() *Controller {
	return s.ctrl
}

// Run starts the session loop. Blocks until the player quits, the input closes,
// the player idles out or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	draw.EnableMouse(s.writer)
	defer func() {
		draw.ClearScreen(s.writer)
		draw.DisableMouse(s.writer)
		draw.ShowCursor(s.writer)
	}()
	draw.ClearScreen(s.writer)
	s.prevMode = s.ctrl.Mode()

	s.logger.Info("session started")
	lastTime := time.Now()

	for s.running {
		frameStart := time.Now()
		s.delta = min(frameStart.Sub(lastTime), maxFrameDelta)
		lastTime = frameStart
		s.elapsed += s.delta.Seconds()

		// ===== INPUT PHASE =====
		s.processInput()
		s.checkShutdown(ctx)

		// ===== UPDATE PHASE =====
		s.updateScreen()
		if s.shuttingDown {
			s.updateShutdownState()
		} else {
			s.handleTriggers()
			s.sched.Advance(s.delta)
			s.updateDebris()
		}

		// ===== DRAW PHASE =====
		if err := s.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	s.releaseDebris()
	s.logger.Info("session ended", "score", s.ctrl.Score())
	return nil
}

// processInput reads input and tracks inactivity.
func (s *Session) processInput() {
	s.input = input.ReadInput(s.inputStream)

	if len(s.input.Pressed) > 0 {
		s.lastInput = time.Now()
		s.isInactive = false
	} else if time.Since(s.lastInput).Seconds() > config.InactivityDisconnectUser {
		s.logger.Info("disconnecting inactive player")
		s.running = false
	} else if time.Since(s.lastInput).Seconds() > config.InactivityWarnUser {
		s.isInactive = true
	}

	if s.input.Quit || s.inputStream.Closed() {
		s.running = false
	}
}

// checkShutdown switches to the shutdown notice once ctx is cancelled.
func (s *Session) checkShutdown(ctx context.Context) {
	if s.shuttingDown {
		return
	}
	select {
	case <-ctx.Done():
		s.shuttingDown = true
		s.ctrl.End()
	default:
	}
}

// handleTriggers feeds this frame's triggers to the controller.
func (s *Session) handleTriggers() {
	if s.input.Activate {
		s.ctrl.Activate()
	}
	if s.input.Restart {
		s.ctrl.Restart()
	}
}

// updateShutdownState counts down the shutdown notice.
func (s *Session) updateShutdownState() {
	s.shutdownTimer -= s.delta.Seconds()
	if s.shutdownTimer <= 0 {
		s.running = false
	}
}

// updateScreen handles terminal resize, keeping the field's aspect ratio and
// centering the render area. On size changes the terminal is cleared so stale
// cells outside the new canvas disappear.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	tuning := s.ctrl.Tuning()
	cols, rows := draw.FitAspect(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight,
		tuning.Field.Width, tuning.Field.Height)
	offsetCol := (termWidth - cols) / 2
	offsetRow := (termHeight - rows) / 2

	if cols != s.canvas.TerminalWidth() || rows != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.chunkWriter.WriteString("\033[H\033[2J")
	}

	s.canvas.Resize(cols, rows)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// onEvent reacts to controller transitions.
func (s *Session) onEvent(e Event) {
	switch e.Type {
	case EventOver:
		s.logger.Info("game over", "score", e.Score, "reason", e.Reason)
		if e.Reason == EndStopped {
			return
		}
		p := s.ctrl.State().Player
		s.debris = append(s.debris, object.SpawnDebris(p.X+p.Size/2, p.Y+p.Size/2, 24, 160, 1.2, s.rng)...)
	case EventReset:
		s.releaseDebris()
	}
}

// updateDebris moves crash particles and drops expired ones.
func (s *Session) updateDebris() {
	kept := s.debris[:0]
	for _, p := range s.debris {
		if p.Update(s.delta) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.debris[len(kept):])
	s.debris = kept
}

func (s *Session) releaseDebris() {
	for _, p := range s.debris {
		p.Release()
	}
	clear(s.debris)
	s.debris = s.debris[:0]
}
