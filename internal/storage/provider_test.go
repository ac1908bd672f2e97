package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func providers(t *testing.T) map[string]Provider {
	dir := t.TempDir()
	return map[string]Provider{
		"memory": NewMemoryStore(),
		"json":   NewJSONStore(filepath.Join(dir, "habits.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "habits.db")),
	}
}

func TestProviderItems(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := p.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer p.Close()

			if _, ok, err := p.GetItem("habits"); err != nil || ok {
				t.Fatalf("GetItem() on empty store = ok %v, err %v; want absent", ok, err)
			}

			if err := p.SetItem("habits", []byte(`[{"id":"1"}]`)); err != nil {
				t.Fatalf("SetItem() failed: %v", err)
			}
			got, ok, err := p.GetItem("habits")
			if err != nil || !ok {
				t.Fatalf("GetItem() = ok %v, err %v; want present", ok, err)
			}
			if string(got) != `[{"id":"1"}]` {
				t.Errorf("GetItem() = %s", got)
			}

			if err := p.SetItem("habits", []byte(`[]`)); err != nil {
				t.Fatalf("SetItem() overwrite failed: %v", err)
			}
			got, _, _ = p.GetItem("habits")
			if string(got) != `[]` {
				t.Errorf("GetItem() after overwrite = %s, want []", got)
			}

			if err := p.SetItem("other", []byte(`1`)); err != nil {
				t.Fatalf("SetItem() failed: %v", err)
			}
			keys, err := p.Keys()
			if err != nil {
				t.Fatalf("Keys() failed: %v", err)
			}
			if len(keys) != 2 || keys[0] != "habits" || keys[1] != "other" {
				t.Errorf("Keys() = %v, want [habits other]", keys)
			}

			if err := p.RemoveItem("other"); err != nil {
				t.Fatalf("RemoveItem() failed: %v", err)
			}
			if err := p.RemoveItem("missing"); err != nil {
				t.Errorf("RemoveItem() of missing key should succeed, got %v", err)
			}
			if _, ok, _ := p.GetItem("other"); ok {
				t.Error("item still present after RemoveItem()")
			}
		})
	}
}

func TestProviderPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		open func() Provider
	}{
		{"json", func() Provider { return NewJSONStore(filepath.Join(dir, "habits.json")) }},
		{"sqlite", func() Provider { return NewSQLiteStore(filepath.Join(dir, "habits.db")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := tt.open()
			if err := first.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			if err := first.SetItem("habits", []byte(`["a"]`)); err != nil {
				t.Fatalf("SetItem() failed: %v", err)
			}
			first.Close()

			second := tt.open()
			if err := second.Load(); err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			defer second.Close()
			got, ok, err := second.GetItem("habits")
			if err != nil || !ok || string(got) != `["a"]` {
				t.Errorf("GetItem() after reopen = %s, %v, %v", got, ok, err)
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	dir := t.TempDir()
	for name, p := range map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "missing.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "missing.db")),
	} {
		t.Run(name, func(t *testing.T) {
			if err := p.Load(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("Load() error = %v, want ErrNotInitialized", err)
			}
		})
	}
}

func TestJSONStoreRejectsInvalidValue(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := s.SetItem("habits", []byte("{not json")); err == nil {
		t.Error("SetItem() with invalid JSON should fail")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{":memory:", "*storage.MemoryStore"},
		{"/tmp/habits.json", "*storage.JSONStore"},
		{"/tmp/HABITS.JSON", "*storage.JSONStore"},
		{"/tmp/habits.db", "*storage.SQLiteStore"},
		{"postgres://user@localhost/habitual", "*storage.PostgresStore"},
		{"postgresql://user@localhost/habitual", "*storage.PostgresStore"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			var got string
			switch Open(tt.location).(type) {
			case *MemoryStore:
				got = "*storage.MemoryStore"
			case *JSONStore:
				got = "*storage.JSONStore"
			case *SQLiteStore:
				got = "*storage.SQLiteStore"
			case *PostgresStore:
				got = "*storage.PostgresStore"
			}
			if got != tt.want {
				t.Errorf("Open(%q) = %s, want %s", tt.location, got, tt.want)
			}
		})
	}
}
