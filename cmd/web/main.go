package main

import (
	_ "embed"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/config"
)

const (
	defaultHost    = "0.0.0.0"
	defaultPort    = "8080"
	defaultWasmDir = "./web"
)

//go:embed index.html
var htmlPage string

//go:embed play.html
var playPage string

func main() {
	logger := config.NewLogger("flappy-web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	wasmDir := config.GetEnv("WEB_WASM_DIR", defaultWasmDir)

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(sshHost, wasmDir, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Starting web server", "addr", "http://"+addr, "wasmDir", wasmDir)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

// newMux serves the landing page, the browser player page and the wasm bundle
// (flappy.wasm and wasm_exec.js) from wasmDir.
func newMux(sshHost, wasmDir string, logger *log.Logger) *http.ServeMux {
	landing := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(landing))
	})
	mux.HandleFunc("/play", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(playPage))
	})

	files := http.StripPrefix("/wasm/", http.FileServer(http.Dir(wasmDir)))
	mux.HandleFunc("/wasm/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		logger.Debug("serving wasm asset", "path", r.URL.Path)
		files.ServeHTTP(w, r)
	})
	return mux
}
