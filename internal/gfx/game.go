// Package gfx renders the game with ebiten for desktop windows and browsers (wasm).
package gfx

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/flappy/internal/loop"
	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/physics"
)

var (
	backgroundColor = color.RGBA{40, 32, 60, 255}
	obstacleColor   = color.RGBA{120, 200, 120, 255}
	obstacleEdge    = color.RGBA{60, 120, 60, 255}
	playerColor     = color.RGBA{240, 240, 240, 255}
	overlayColor    = color.RGBA{0, 0, 0, 160}
	buttonColor     = color.RGBA{220, 60, 120, 255}
	textColor       = color.RGBA{255, 255, 255, 255}
)

// Game adapts a loop.Controller to ebiten's Update/Draw/Layout cycle.
type Game struct {
	ctrl    *loop.Controller
	sched   *loop.FrameScheduler
	logger  *log.Logger
	tuning  config.Tuning
	face    *text.GoXFace
	sprite  *ebiten.Image
	restart physics.Rect // Restart button on the game-over overlay
}

// Compile-time check that Game implements ebiten.Game.
var _ ebiten.Game = (*Game)(nil)

// NewGame creates a game in the idle state.
func NewGame(tuning config.Tuning, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		sched:  loop.NewFrameScheduler(),
		logger: logger,
		tuning: tuning,
		face:   text.NewGoXFace(basicfont.Face7x13),
		restart: physics.Rect{
			X: tuning.Field.Width/2 - 60,
			Y: tuning.Field.Height/2 + 40,
			W: 120,
			H: 40,
		},
	}
	g.ctrl = loop.NewController(tuning, g.sched, loop.WithLogger(logger), loop.WithListener(g.onEvent))

	size := int(math.Ceil(tuning.Player.Size))
	g.sprite = ebiten.NewImage(size, size)
	g.sprite.Fill(playerColor)
	return g
}

// Update handles triggers and advances the game by one frame.
func (g *Game) Update() error {
	pressed, x, y := pointerPressed()

	if g.ctrl.Mode() == loop.ModeOver {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			(pressed && g.restart.Contains(x, y)) {
			g.ctrl.Restart()
		}
	} else if pressed || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.Activate()
	}

	g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// pointerPressed reports a mouse click or a new touch and its position in field coordinates.
func pointerPressed() (bool, float64, float64) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, float64(x), float64(y)
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, float64(x), float64(y)
	}
	return false, 0, 0
}

// Draw renders the field, the player and the overlay for the current mode.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	state := g.ctrl.State()

	for _, o := range state.Obstacles {
		fillRect(screen, o.TopRect(), obstacleColor)
		fillRect(screen, o.BottomRect(), obstacleColor)
		// Cap lips on the gap side
		top := o.TopRect()
		bottom := o.BottomRect()
		fillRect(screen, physics.Rect{X: top.X - 3, Y: top.Bottom() - 12, W: top.W + 6, H: 12}, obstacleEdge)
		fillRect(screen, physics.Rect{X: bottom.X - 3, Y: bottom.Y, W: bottom.W + 6, H: 12}, obstacleEdge)
	}

	p := state.Player
	half := p.Size / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Rotate(p.Rotation() * math.Pi / 180)
	op.GeoM.Translate(p.X+half, p.Y+half)
	screen.DrawImage(g.sprite, op)

	switch state.Mode {
	case loop.ModeIdle:
		g.drawOverlay(screen)
		g.drawText(screen, "FLAPPY", g.tuning.Field.Height/2-80, 3)
		g.drawText(screen, "Press SPACE or tap to start", g.tuning.Field.Height/2, 1)
	case loop.ModeRunning:
		g.drawText(screen, fmt.Sprintf("%d", state.Score), 40, 3)
	case loop.ModeOver:
		score, _ := g.ctrl.FinalScore()
		g.drawOverlay(screen)
		g.drawText(screen, "GAME OVER", g.tuning.Field.Height/2-80, 3)
		g.drawText(screen, fmt.Sprintf("Score: %d", score), g.tuning.Field.Height/2-20, 2)
		fillRect(screen, g.restart, buttonColor)
		g.drawText(screen, "RESTART", g.restart.Y+g.restart.H/2-6, 1)
	}
}

// Layout fixes the logical screen to the field; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.tuning.Field.Width), int(g.tuning.Field.Height)
}

func (g *Game) onEvent(e loop.Event) {
	switch e.Type {
	case loop.EventStarted:
		g.logger.Debug("game started")
	case loop.EventOver:
		g.logger.Info("game over", "score", e.Score, "reason", e.Reason)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	fillRect(screen, physics.Rect{W: g.tuning.Field.Width, H: g.tuning.Field.Height}, overlayColor)
}

// drawText draws s horizontally centered with its top at y, scaled by scale.
func (g *Game) drawText(screen *ebiten.Image, s string, y, scale float64) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(g.tuning.Field.Width/2, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, s, g.face, op)
}

func fillRect(screen *ebiten.Image, r physics.Rect, clr color.Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}
