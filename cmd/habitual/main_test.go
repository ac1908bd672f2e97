package main

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/utils"
)

func TestLogDir(t *testing.T) {
	defaultDir := filepath.Dir(utils.ExpandPath(constants.DefaultConfigPath))

	tests := []struct {
		location string
		want     string
	}{
		{"/var/lib/habitual/habits.db", "/var/lib/habitual"},
		{"/tmp/habits.json", "/tmp"},
		{":memory:", defaultDir},
		{"postgresql", defaultDir},
		{"postgres://app@db/habits", defaultDir},
	}
	for _, tt := range tests {
		if got := logDir(tt.location); got != tt.want {
			t.Errorf("logDir(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}
