package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/loop"
	gameconfig "github.com/tomz197/flappy/internal/loop/config"
)

func main() {
	logger := config.NewLogger("flappy")

	tuning, err := gameconfig.Load(config.GetEnv("FLAPPY_TUNING", ""))
	if err != nil {
		logger.Error("failed to load tuning", "err", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Error("failed to enable raw mode", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// Logs would tear the canvas; only errors after the terminal is restored.
	session := loop.NewSession(bufio.NewReader(os.Stdin), os.Stdout, loop.SessionOptions{
		Tuning: &tuning,
	})
	runErr := session.Run(ctx)
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Error("game error", "err", runErr)
		os.Exit(1)
	}
	if score, ok := session.Controller().FinalScore(); ok {
		logger.Info("thanks for playing", "score", score)
	}
}
