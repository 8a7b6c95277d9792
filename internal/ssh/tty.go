// Package ssh bridges gliderlabs/ssh sessions to tcell screens so the
// explorer can run over a remote terminal.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty backed by a gliderlabs/ssh session.
// Each connected client gets its own SessionTty → tcell.Screen pair.
type SessionTty struct {
	session gossh.Session

	mu     sync.Mutex
	window gossh.Window
	winCh  <-chan gossh.Window
	resize func() // registered by tcell via NotifyResize
}

// NewSessionTty wraps an SSH session as a tcell Tty. pty carries the
// initial window size; winCh delivers subsequent resize events.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

// Read pulls raw keyboard input from the session's stdin.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write pushes rendered output to the session's stdout.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the SSH channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start is a no-op — the SSH channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op — the channel's lifetime belongs to the server handler.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op — SSH flushes writes immediately.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb to run on every window-change event and starts
// a goroutine draining the resize channel for the session's lifetime.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.resize = cb
	t.mu.Unlock()

	go func() {
		for win := range t.winCh {
			t.mu.Lock()
			t.window = win
			cb := t.resize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}()
}
