package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/loop"
	gameconfig "github.com/tomz197/flappy/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// server holds what every SSH session shares: tuning, the logger and the
// shutdown context that makes sessions show the shutdown notice.
type server struct {
	tuning   gameconfig.Tuning
	logger   *log.Logger
	shutdown context.Context

	mu       sync.Mutex
	closing  bool // Set once waitSessions starts; no new sessions after that
	sessions sync.WaitGroup
}

func main() {
	logger := config.NewLogger("flappy-ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	tuning, err := gameconfig.Load(config.GetEnv("FLAPPY_TUNING", ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	shutdownCtx, notifyShutdown := context.WithCancel(context.Background())
	defer notifyShutdown()
	srv := &server{tuning: tuning, logger: logger, shutdown: shutdownCtx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Sessions show the shutdown notice and return on their own.
	notifyShutdown()
	srv.waitSessions(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// beginSession registers a session unless the server is shutting down.
// A true result must be paired with sessions.Done.
func (srv *server) beginSession() bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.closing || srv.shutdown.Err() != nil {
		return false
	}
	srv.sessions.Add(1)
	return true
}

// waitSessions stops accepting sessions and blocks until all running ones
// ended or timeout elapsed.
func (srv *server) waitSessions(timeout time.Duration) {
	srv.mu.Lock()
	srv.closing = true
	srv.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		srv.sessions.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		srv.logger.Info("All sessions ended")
	case <-time.After(timeout):
		srv.logger.Warn("Timed out waiting for sessions", "timeout", timeout)
	}
}

// gameMiddleware runs an independent game for each SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		if !srv.beginSession() {
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		}
		defer srv.sessions.Done()

		srv.logger.Info("New game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// End the game when either the server shuts down or the client leaves.
		ctx, cancel := context.WithCancel(srv.shutdown)
		defer cancel()

		session := loop.NewSession(bufio.NewReader(sess), sess, loop.SessionOptions{
			TermSizeFunc: sizeTracker.getSize,
			Tuning:       &srv.tuning,
			Logger:       srv.logger,
			Username:     sess.User(),
		})
		if err := session.Run(ctx); err != nil {
			srv.logger.Error("Game error", "user", sess.User(), "err", err)
		}

		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
