// Command browser runs the game in a desktop window, or in a browser when built
// with GOOS=js GOARCH=wasm and served by cmd/web.
package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/gfx"
	gameconfig "github.com/tomz197/flappy/internal/loop/config"
)

func main() {
	logger := config.NewLogger("flappy")

	tuning, err := gameconfig.Load(config.GetEnv("FLAPPY_TUNING", ""))
	if err != nil {
		logger.Error("failed to load tuning", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(int(tuning.Field.Width), int(tuning.Field.Height))
	ebiten.SetWindowTitle("Flappy")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gfx.NewGame(tuning, logger)); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
