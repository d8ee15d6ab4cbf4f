package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	mem, err := OpenSQLiteMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { mem.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": mem,
	}
}

func TestStoreSetGetDelete(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := s.Get(KeyTheme); ok {
				t.Error("Expected missing key to read as absent")
			}

			if err := s.Set(KeyTheme, "green"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Set(KeyTheme, "peach"); err != nil {
				t.Fatalf("Overwrite failed: %v", err)
			}

			v, ok := s.Get(KeyTheme)
			if !ok || v != "peach" {
				t.Errorf("Expected peach, got %q (ok=%v)", v, ok)
			}

			if err := s.Delete(KeyTheme); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, ok := s.Get(KeyTheme); ok {
				t.Error("Expected key to be gone after delete")
			}
			if err := s.Delete(KeyTheme); err != nil {
				t.Errorf("Expected deleting a missing key to succeed, got %v", err)
			}
		})
	}
}

func TestTypedGetters(t *testing.T) {
	s := NewMemory()

	if _, ok := GetInt(s, KeyCardsBest); ok {
		t.Error("Expected absent int")
	}

	s.Set(KeyCardsBest, "not-a-number")
	if _, ok := GetInt(s, KeyCardsBest); ok {
		t.Error("Expected malformed int to read as absent")
	}

	SetInt(s, KeyCardsBest, 42)
	if n, ok := GetInt(s, KeyCardsBest); !ok || n != 42 {
		t.Errorf("Expected 42, got %d (ok=%v)", n, ok)
	}

	type stats struct {
		Depth int `json:"depth"`
	}
	var got stats
	s.Set(KeyNarrativeStats, "{broken")
	if GetJSON(s, KeyNarrativeStats, &got) {
		t.Error("Expected malformed JSON to read as absent")
	}

	if err := SetJSON(s, KeyNarrativeStats, stats{Depth: 7}); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}
	if !GetJSON(s, KeyNarrativeStats, &got) || got.Depth != 7 {
		t.Errorf("Expected depth 7, got %+v", got)
	}
}

func TestUnavailable(t *testing.T) {
	var s Store = Unavailable{}
	if err := s.Set(KeyTheme, "red"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if _, ok := s.Get(KeyTheme); ok {
		t.Error("Expected unavailable store to read as absent")
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := s.Set(KeyNarrativeNode, "core"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	if v, ok := reopened.Get(KeyNarrativeNode); !ok || v != "core" {
		t.Errorf("Expected core after reopen, got %q (ok=%v)", v, ok)
	}
	if reopened.Path() != path {
		t.Errorf("Expected path %s, got %s", path, reopened.Path())
	}
}
