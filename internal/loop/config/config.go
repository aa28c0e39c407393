// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Playfield - the logical coordinate space used by the game model.
// Renderers scale it to whatever surface they draw on.
const (
	FieldWidth  = 360
	FieldHeight = 640
)

// Player
const (
	PlayerX      = 50.0  // Fixed horizontal position of the sprite's left edge
	PlayerStartY = 300.0 // Vertical position on reset
	PlayerSize   = 40.0  // Collision box edge length
	HitMargin    = 10.0  // Hit box shrink on every side
	Gravity      = 0.4   // px/tick²
	JumpStrength = -7.0  // px/tick, applied on impulse
)

// Obstacles
const (
	ObstacleSpeed = 2.5  // px/tick
	ObstacleWidth = 50.0 // Barrier width
	GapHeight     = 160.0
	MinBarrier    = 50.0
	SafetyMargin  = 50.0
	SpawnInterval = 1500 * time.Millisecond
	QueueCap      = 5     // Despawn only kicks in above this length
	DespawnX      = -60.0 // Oldest obstacle is dropped once its X falls below this
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 120
	MaxTermHeight         = 60
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 3.0 // Seconds to show shutdown message before disconnect
)

// ErrInvalidTuning is returned when a Tuning describes an impossible playfield.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds the physics and obstacle parameters of one game session.
// Keys missing from a YAML file keep their defaults; values written explicitly,
// zero included, replace them.
type Tuning struct {
	Field     FieldTuning    `yaml:"field"`
	Player    PlayerTuning   `yaml:"player"`
	Obstacles ObstacleTuning `yaml:"obstacles"`
}

// FieldTuning defines the playfield dimensions.
type FieldTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerTuning defines the sprite and its physics.
type PlayerTuning struct {
	X         float64 `yaml:"x"`
	StartY    float64 `yaml:"start_y"`
	Size      float64 `yaml:"size"`
	HitMargin float64 `yaml:"hit_margin"`
	Gravity   float64 `yaml:"gravity"`
	Jump      float64 `yaml:"jump"`
}

// ObstacleTuning defines obstacle geometry, speed and spawn cadence.
type ObstacleTuning struct {
	Speed         float64       `yaml:"speed"`
	Width         float64       `yaml:"width"`
	Gap           float64       `yaml:"gap"`
	MinBarrier    float64       `yaml:"min_barrier"`
	SafetyMargin  float64       `yaml:"safety_margin"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	QueueCap      int           `yaml:"queue_cap"`
	DespawnX      float64       `yaml:"despawn_x"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		Field: FieldTuning{Width: FieldWidth, Height: FieldHeight},
		Player: PlayerTuning{
			X:         PlayerX,
			StartY:    PlayerStartY,
			Size:      PlayerSize,
			HitMargin: HitMargin,
			Gravity:   Gravity,
			Jump:      JumpStrength,
		},
		Obstacles: ObstacleTuning{
			Speed:         ObstacleSpeed,
			Width:         ObstacleWidth,
			Gap:           GapHeight,
			MinBarrier:    MinBarrier,
			SafetyMargin:  SafetyMargin,
			SpawnInterval: SpawnInterval,
			QueueCap:      QueueCap,
			DespawnX:      DespawnX,
		},
	}
}

// Load reads a YAML tuning file on top of the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to unmarshal tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// MaxTopBarrier is the tallest top barrier a spawn may pick.
func (t Tuning) MaxTopBarrier() float64 {
	return t.Field.Height - t.Obstacles.Gap - t.Obstacles.MinBarrier - t.Obstacles.SafetyMargin
}

// FloorY is the largest Y the player's top edge may reach.
func (t Tuning) FloorY() float64 {
	return t.Field.Height - t.Player.Size
}

// Validate reports geometry under which the spawner or physics cannot work.
func (t Tuning) Validate() error {
	switch {
	case t.Field.Width <= 0 || t.Field.Height <= 0:
		return fmt.Errorf("%w: field must be positive, got %vx%v", ErrInvalidTuning, t.Field.Width, t.Field.Height)
	case t.Player.Size <= 0 || t.Player.Size > t.Field.Height:
		return fmt.Errorf("%w: player size %v does not fit field", ErrInvalidTuning, t.Player.Size)
	case t.Player.StartY < 0 || t.Player.StartY > t.FloorY():
		return fmt.Errorf("%w: start_y %v outside [0, %v]", ErrInvalidTuning, t.Player.StartY, t.FloorY())
	case t.Player.HitMargin < 0:
		return fmt.Errorf("%w: hit_margin must not be negative", ErrInvalidTuning)
	case t.Player.HitMargin*2 >= t.Player.Size:
		return fmt.Errorf("%w: hit_margin %v leaves an empty hit box for size %v", ErrInvalidTuning, t.Player.HitMargin, t.Player.Size)
	case t.Obstacles.Speed <= 0 || t.Obstacles.Width <= 0:
		return fmt.Errorf("%w: obstacle speed and width must be positive", ErrInvalidTuning)
	case t.Obstacles.Gap <= 0 || t.Obstacles.MinBarrier < 0:
		return fmt.Errorf("%w: gap must be positive and min_barrier not negative", ErrInvalidTuning)
	case t.MaxTopBarrier() < t.Obstacles.MinBarrier:
		return fmt.Errorf("%w: gap %v leaves no room for barriers", ErrInvalidTuning, t.Obstacles.Gap)
	case t.Obstacles.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn_interval must be positive", ErrInvalidTuning)
	case t.Obstacles.QueueCap < 1:
		return fmt.Errorf("%w: queue_cap must be at least 1", ErrInvalidTuning)
	}
	return nil
}
