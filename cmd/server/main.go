// gridlight-server serves the interactive FOV explorer over SSH: every
// connection gets its own map, observer, and calculator. Build:
//
//	go build -o gridlight-server ./cmd/server
//
// Usage:
//
//	./gridlight-server [--config config.yaml]
//
// Connect:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"

	"gridlight/internal/config"
	"gridlight/internal/explorer"
	"gridlight/internal/logger"
	internalssh "gridlight/internal/ssh"
)

// allowedTerms restricts TERM values passed into the process environment
// to well-known terminfo names.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"tmux":                  true,
	"tmux-256color":         true,
	"screen":                true,
	"screen-256color":       true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	flag.Parse()

	logger.Init()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("load config")
	}

	signer, err := loadOrCreateHostKey(cfg.HostKeyFile)
	if err != nil {
		logger.Log.WithError(err).Fatal("host key")
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", cfg.SSHPort),
		Handler: func(s gossh.Session) {
			handleSession(s, cfg)
		},
		// Accept PTY requests from any client; no auth, sessions are
		// sandboxed to their own in-memory map.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	logger.Log.WithField("port", cfg.SSHPort).Info("gridlight SSH server listening")
	logger.Log.Fatal(srv.ListenAndServe())
}

// handleSession runs one explorer for the lifetime of an SSH connection.
func handleSession(s gossh.Session, cfg config.Server) {
	log := logger.Log.WithFields(logrus.Fields{
		"remote": s.RemoteAddr().String(),
		"user":   s.User(),
	})

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "gridlight requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if t, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[t] {
			term = t
			break
		}
	}

	// TERM must be in the process environment before screen creation.
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(internalssh.NewSessionTty(s, pty, winCh))
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.WithError(err).Warn("screen creation failed")
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		log.WithError(err).Warn("screen init failed")
		return
	}

	log.Info("session started")
	explorer.NewWithScreen(screen, explorer.Options{
		MapWidth:  cfg.Map.Width,
		MapHeight: cfg.Map.Height,
		Radius:    cfg.FOV.Radius,
		Shape:     cfg.Shape(),
		Seed:      cfg.Map.Seed,
	}).Run()
	log.Info("session ended")
}

// termMu serializes os.Setenv("TERM") around screen creation, which is the
// only process-global state sessions share.
var termMu sync.Mutex

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Log.WithField("path", path).Info("loaded host key")
			return signer, nil
		}
	}

	logger.Log.WithField("path", path).Info("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "gridlight server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	return signer, nil
}
