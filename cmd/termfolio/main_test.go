package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/store"
)

// withConfigFile points the --config flag at path for one test
func withConfigFile(t *testing.T, path string) {
	t.Helper()
	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })
}

func TestResetKeys(t *testing.T) {
	tests := []struct {
		only string
		want []string
	}{
		{"", []string{store.KeyTheme, store.KeyNarrativeNode, store.KeyNarrativeStats, store.KeyCardsBest}},
		{"theme", []string{store.KeyTheme}},
		{"narrative", []string{store.KeyNarrativeNode, store.KeyNarrativeStats}},
		{"cards", []string{store.KeyCardsBest}},
	}
	for _, tt := range tests {
		got, err := resetKeys(tt.only)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.only, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.only, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: expected %v, got %v", tt.only, tt.want, got)
			}
		}
	}
	if _, err := resetKeys("everything"); err == nil {
		t.Error("Expected error for unknown --only value")
	}
}

func TestClearKeys(t *testing.T) {
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "termfolio.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	db.Set(store.KeyTheme, "red")
	db.Set(store.KeyCardsBest, "17")

	keys, _ := resetKeys("theme")
	if err := clearKeys(db, keys); err != nil {
		t.Fatalf("Expected clear to succeed, got %v", err)
	}
	if _, ok := db.Get(store.KeyTheme); ok {
		t.Error("Expected theme cleared")
	}
	if v, _ := db.Get(store.KeyCardsBest); v != "17" {
		t.Errorf("Expected best score kept, got %q", v)
	}

	if err := clearKeys(store.Unavailable{}, keys); err == nil {
		t.Error("Expected error from an unavailable store")
	}
}

func TestLoadStory(t *testing.T) {
	g, err := loadStory("")
	if err != nil {
		t.Fatalf("Expected bundled story to validate, got %v", err)
	}
	if g.Len() == 0 {
		t.Error("Expected nodes in bundled story")
	}

	path := filepath.Join(t.TempDir(), "story.yaml")
	broken := "entry: start\nnodes:\n  - id: start\n    text: [\"hi\"]\n    choices:\n      - label: go\n        next: nowhere\n"
	if err := os.WriteFile(path, []byte(broken), 0644); err != nil {
		t.Fatalf("Failed to write story: %v", err)
	}
	if _, err := loadStory(path); err == nil {
		t.Error("Expected error for a dangling choice")
	}
	if _, err := loadStory(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	withConfigFile(t, filepath.Join(t.TempDir(), "config.yaml"))

	if _, err := loadConfig(); err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}

	t.Setenv("TERMFOLIO_CARDS__HAND_SIZE", "0")
	t.Setenv("TERMFOLIO_BLOCKS__GRAVITY_START", "0s")
	if cfg, err := loadConfig(); err == nil {
		t.Errorf("Expected validation error, got config %+v", cfg)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatalf("Expected defaults to be written, got %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Expected written config to load, got %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected written defaults to validate, got %v", err)
	}
	if cfg.Cards.HandSize != config.DefaultConfig().Cards.HandSize {
		t.Errorf("Expected hand size %d, got %d", config.DefaultConfig().Cards.HandSize, cfg.Cards.HandSize)
	}

	if err := writeDefaultConfig(path, false); err == nil {
		t.Error("Expected existing file to be kept without --force")
	}
	if err := writeDefaultConfig(path, true); err != nil {
		t.Errorf("Expected --force to overwrite, got %v", err)
	}
}
