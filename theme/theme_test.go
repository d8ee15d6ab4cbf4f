package theme

import (
	"testing"

	"github.com/lixenwraith/termfolio/store"
)

func TestApplyRestoreRoundTrip(t *testing.T) {
	s := store.NewMemory()
	for _, k := range Keys {
		reg := NewRegistry(s, DefaultKey)
		reg.Apply(string(k))

		// Simulate reload with a fresh registry over the same store
		reloaded := NewRegistry(s, DefaultKey)
		got := reloaded.Restore()
		if got.Key != k {
			t.Errorf("Expected restored key %s, got %s", k, got.Key)
		}
	}
}

func TestApplyUnknownFallsBack(t *testing.T) {
	reg := NewRegistry(store.NewMemory(), Green)
	tok := reg.Apply("purple")
	if tok.Key != Green {
		t.Errorf("Expected fallback green, got %s", tok.Key)
	}
	if reg.Active().Key != Green {
		t.Errorf("Expected active green, got %s", reg.Active().Key)
	}
}

func TestRestoreInvalidPersisted(t *testing.T) {
	s := store.NewMemory()
	s.Set(store.KeyTheme, "mauve")

	reg := NewRegistry(s, DefaultKey)
	if got := reg.Restore().Key; got != DefaultKey {
		t.Errorf("Expected default key %s, got %s", DefaultKey, got)
	}
	if v, _ := s.Get(store.KeyTheme); v != string(DefaultKey) {
		t.Errorf("Expected store repaired to %s, got %s", DefaultKey, v)
	}
}

func TestApplySwallowsStorageFailure(t *testing.T) {
	reg := NewRegistry(store.Unavailable{}, DefaultKey)
	tok := reg.Apply("red")
	if tok.Key != Red {
		t.Errorf("Expected red to be active despite storage failure, got %s", tok.Key)
	}
	if got := reg.Restore().Key; got != DefaultKey {
		t.Errorf("Expected default after restore from unavailable store, got %s", got)
	}
}

func TestSubscribeNotifiesUntilCancelled(t *testing.T) {
	reg := NewRegistry(store.NewMemory(), DefaultKey)

	var seen []Key
	cancel := reg.Subscribe(func(tok Token) { seen = append(seen, tok.Key) })

	reg.Apply("yellow")
	cancel()
	cancel()
	reg.Apply("red")

	if len(seen) != 1 || seen[0] != Yellow {
		t.Errorf("Expected exactly [yellow], got %v", seen)
	}
}

func TestTokenPalettes(t *testing.T) {
	black := TokenFor(Black)
	white := TokenFor(White)
	blue := TokenFor(Blue)

	if black.Accent != blue.Accent || white.Accent != blue.Accent {
		t.Error("Expected black and white themes to borrow the blue accent")
	}
	if black.Palette.SiteBG != "#0b0b0b" {
		t.Errorf("Expected fixed black site background, got %s", black.Palette.SiteBG)
	}
	if white.Palette.SiteBG != "#f8fafc" {
		t.Errorf("Expected fixed white site background, got %s", white.Palette.SiteBG)
	}
	if blue.RGB != [3]uint8{116, 176, 214} {
		t.Errorf("Expected blue RGB 116,176,214, got %v", blue.RGB)
	}

	// Derived palettes are deterministic and depend on the accent
	red := TokenFor(Red)
	if TokenFor(Red).Palette != red.Palette {
		t.Error("Expected derived palette to be deterministic")
	}
	if red.Palette.PanelBG == blue.Palette.PanelBG {
		t.Error("Expected tinted panel background to differ between accents")
	}
	if red.Palette.SiteBG != baseSiteBG {
		t.Errorf("Expected base site background, got %s", red.Palette.SiteBG)
	}
}

func TestParse(t *testing.T) {
	if _, ok := Parse("peach"); !ok {
		t.Error("Expected peach to parse")
	}
	if _, ok := Parse("Peach"); ok {
		t.Error("Expected keys to be lowercase only")
	}
	if TokenFor("nope").Key != DefaultKey {
		t.Error("Expected invalid key token to be the default")
	}
}
