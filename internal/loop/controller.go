// Package loop provides the game loop controller and the terminal session host.
package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/object"
)

// Intner picks uniformly random integers in [0, n). *rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// Listener receives controller events.
type Listener func(Event)

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the source for obstacle heights.
func WithRand(rng Intner) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger used for transition logs.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithListener registers a listener for controller events.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, l) }
}

// Controller owns one game session: physics, spawning, collisions and score.
// It is driven by its Scheduler and is not safe for concurrent use.
type Controller struct {
	tuning    config.Tuning
	sched     Scheduler
	rng       Intner
	logger    *log.Logger
	listeners []Listener
	state     State

	cancelFrame Cancel
	cancelSpawn Cancel
}

// NewController creates an idle session. tuning is expected to pass
// config.Tuning.Validate; an impossible barrier range spawns at MinBarrier.
func NewController(tuning config.Tuning, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		tuning: tuning,
		sched:  sched,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.resetState()
	return c
}

// State returns the live session state. Callers must treat it as read-only.
func (c *Controller) State() *State {
	return &c.state
}

// Mode returns the current lifecycle phase.
func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// Score returns the current score.
func (c *Controller) Score() int {
	return c.state.Score
}

// FinalScore returns the score of a finished session and whether it is finished.
func (c *Controller) FinalScore() (int, bool) {
	return c.state.Score, c.state.Mode == ModeOver
}

// Tuning returns the parameters the controller was created with.
func (c *Controller) Tuning() config.Tuning {
	return c.tuning
}

// Activate is the single player trigger: it starts an idle session and flaps
// during a running one. It does nothing on the game-over screen.
func (c *Controller) Activate() {
	switch c.state.Mode {
	case ModeIdle:
		c.Start()
	case ModeRunning:
		c.Impulse()
	}
}

// Restart resets a finished session. It does nothing in other modes.
func (c *Controller) Restart() {
	if c.state.Mode == ModeOver {
		c.Reset()
	}
}

// Start begins the spawn timer and the per-frame update.
func (c *Controller) Start() {
	if c.state.Mode != ModeIdle {
		return
	}
	c.state.Mode = ModeRunning
	c.cancelSpawn = c.sched.Every(c.tuning.Obstacles.SpawnInterval, c.Spawn)
	c.cancelFrame = c.sched.RequestFrame(c.frame)

	c.logger.Debug("session started")
	c.emit(Event{Type: EventStarted})
}

// Impulse gives the player the jump velocity.
func (c *Controller) Impulse() {
	if c.state.Mode != ModeRunning {
		return
	}
	c.state.Player.Impulse(c.tuning.Player.Jump)
}

// frame runs one tick and asks for the next frame while the session runs.
func (c *Controller) frame() {
	c.cancelFrame = nil
	c.Tick()
	if c.state.Mode == ModeRunning {
		c.cancelFrame = c.sched.RequestFrame(c.frame)
	}
}

// Tick advances the running session by one frame.
func (c *Controller) Tick() {
	if c.state.Mode != ModeRunning {
		return
	}
	c.state.Ticks++

	p := c.state.Player
	p.Fall(c.tuning.Player.Gravity)

	if floor := c.tuning.FloorY(); p.Y > floor {
		p.Y = floor
		c.end(EndFloor)
		return
	}
	if p.Y < 0 {
		p.Y = 0
		p.VY = 0
	}

	c.despawn()

	hit := p.HitBox(c.tuning.Player.HitMargin)
	for _, o := range c.state.Obstacles {
		o.Advance(c.tuning.Obstacles.Speed)

		if o.Hits(hit) {
			c.end(EndCollision)
			return
		}

		if !o.Passed && o.TrailingEdge() < hit.Left() {
			o.Passed = true
			c.state.Score++
			c.emit(Event{Type: EventScored, Score: c.state.Score})
		}
	}
}

// despawn drops the oldest obstacle once the queue is over capacity and the
// obstacle has left the field. At most one obstacle goes per tick.
func (c *Controller) despawn() {
	obs := c.state.Obstacles
	if len(obs) <= c.tuning.Obstacles.QueueCap || obs[0].X >= c.tuning.Obstacles.DespawnX {
		return
	}
	copy(obs, obs[1:])
	obs[len(obs)-1] = nil
	c.state.Obstacles = obs[:len(obs)-1]
}

// Spawn appends a new obstacle at the right edge with a random top height.
func (c *Controller) Spawn() {
	if c.state.Mode != ModeRunning {
		return
	}
	minTop := c.tuning.Obstacles.MinBarrier
	span := max(int(c.tuning.MaxTopBarrier()-minTop), 0)
	c.spawnWithTop(minTop + float64(c.rng.Intn(span+1)))
}

func (c *Controller) spawnWithTop(top float64) {
	o := object.NewObstacle(
		c.tuning.Field.Width,
		c.tuning.Obstacles.Width,
		top,
		c.tuning.Obstacles.Gap,
		c.tuning.Field.Height,
	)
	c.state.Obstacles = append(c.state.Obstacles, o)
}

// End stops a running session and freezes its state.
func (c *Controller) End() {
	if c.state.Mode == ModeRunning {
		c.end(EndStopped)
	}
}

func (c *Controller) end(reason EndReason) {
	c.state.Mode = ModeOver
	c.stopTimers()

	c.logger.Debug("session over", "reason", reason, "score", c.state.Score, "ticks", c.state.Ticks)
	c.emit(Event{Type: EventOver, Score: c.state.Score, Reason: reason})
}

// Reset returns to the idle start screen with a fresh player and no obstacles.
func (c *Controller) Reset() {
	c.stopTimers()
	c.resetState()

	c.logger.Debug("session reset")
	c.emit(Event{Type: EventReset})
}

func (c *Controller) resetState() {
	clear(c.state.Obstacles)
	c.state = State{
		Mode:      ModeIdle,
		Player:    object.NewPlayer(c.tuning.Player.X, c.tuning.Player.StartY, c.tuning.Player.Size),
		Obstacles: c.state.Obstacles[:0],
	}
}

func (c *Controller) stopTimers() {
	if c.cancelSpawn != nil {
		c.cancelSpawn()
		c.cancelSpawn = nil
	}
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
}

func (c *Controller) emit(e Event) {
	for _, l := range c.listeners {
		l(e)
	}
}
