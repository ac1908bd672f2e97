package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/habitual/habits.db", filepath.Join(home, ".config/habitual/habits.db")},
		{"~", home},
		{"/tmp/habits.db", "/tmp/habits.db"},
		{"postgres://user@localhost/habits", "postgres://user@localhost/habits"},
		{":memory:", ":memory:"},
		{"~other/file", "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
