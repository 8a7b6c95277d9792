package main

import (
	"path/filepath"
	"testing"
)

func TestAllowedTerms(t *testing.T) {
	cases := []struct {
		term    string
		allowed bool
	}{
		{"xterm-256color", true},
		{"tmux", true},
		{"linux", true},
		{"vt100", true},
		{"screen", true},
		{"rxvt-unicode-256color", true},
		{"evil-term", false},
		{"../../../etc/passwd", false},
		{"", false},
		{"xterm-kitty", false},
	}
	for _, tc := range cases {
		if got := allowedTerms[tc.term]; got != tc.allowed {
			t.Errorf("allowedTerms[%q] = %v, want %v", tc.term, got, tc.allowed)
		}
	}
}

func TestLoadOrCreateHostKeyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")

	first, err := loadOrCreateHostKey(path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	second, err := loadOrCreateHostKey(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if first.PublicKey().Type() != second.PublicKey().Type() {
		t.Fatalf("key type changed across reload: %s vs %s",
			first.PublicKey().Type(), second.PublicKey().Type())
	}
	if string(first.PublicKey().Marshal()) != string(second.PublicKey().Marshal()) {
		t.Error("reloaded host key differs from the generated one")
	}
}
