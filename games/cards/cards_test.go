package cards

import (
	"testing"

	"github.com/lixenwraith/termfolio/store"
)

func noRelics() Config {
	cfg := DefaultConfig()
	cfg.RelicChance = 0
	return cfg
}

func TestMultiplierAndBonusOnGain(t *testing.T) {
	g := NewGame(noRelics(), store.NewMemory(), 7)
	g.state.Mult = 2
	g.state.Bonus = 1
	g.state.Hand[0].Kind = Gem

	if !g.Play(0) {
		t.Fatal("Expected play accepted")
	}
	s := g.State()
	if s.Score != 11 {
		t.Errorf("Expected score 11, got %d", s.Score)
	}
	if s.Mult != 1 {
		t.Errorf("Expected multiplier consumed, got %d", s.Mult)
	}
	if s.Bonus != 1 {
		t.Errorf("Expected bonus kept, got %d", s.Bonus)
	}
	if s.Turns != DefaultConfig().Turns-1 {
		t.Errorf("Expected one turn spent, got %d left", s.Turns)
	}
}

func TestDoubleCardAppliesToNextGain(t *testing.T) {
	g := NewGame(noRelics(), store.NewMemory(), 7)
	g.state.Hand[1].Kind = Double
	g.Play(1)
	if s := g.State(); s.Mult != 2 || s.Score != 0 || s.Combo != 0 {
		t.Fatalf("Expected mult 2 with no score, got %+v", s)
	}
	g.state.Hand[1].Kind = Spark
	g.Play(1)
	if s := g.State(); s.Score != 6 || s.Mult != 1 {
		t.Errorf("Expected doubled spark 6 and mult reset, got score %d mult %d", s.Score, s.Mult)
	}
}

func TestVoidFloorsAtZeroAndResetsCombo(t *testing.T) {
	g := NewGame(noRelics(), store.NewMemory(), 3)
	g.state.Score = 1
	g.state.Combo = 2
	g.state.Hand[0].Kind = Void
	g.Play(0)
	s := g.State()
	if s.Score != 0 {
		t.Errorf("Expected score floored at 0, got %d", s.Score)
	}
	if s.Combo != 0 {
		t.Errorf("Expected combo reset, got %d", s.Combo)
	}
}

func TestComboGrantsBonus(t *testing.T) {
	g := NewGame(noRelics(), store.NewMemory(), 3)
	for i := 0; i < 3; i++ {
		g.state.Hand[0].Kind = Spark
		g.Play(0)
	}
	s := g.State()
	if s.Combo != 3 || s.Bonus != 1 {
		t.Errorf("Expected combo 3 with bonus 1, got combo %d bonus %d", s.Combo, s.Bonus)
	}
	// bonus applies from the next positive play
	if s.Score != 9 {
		t.Errorf("Expected score 9, got %d", s.Score)
	}
}

func TestWinEndsRunImmediately(t *testing.T) {
	g := NewGame(noRelics(), store.NewMemory(), 11)
	g.state.Score = 18
	g.state.Hand[2].Kind = Gem
	g.Play(2)

	s := g.State()
	if !s.Over || !s.Win {
		t.Fatalf("Expected win, got over=%v win=%v", s.Over, s.Win)
	}
	if s.Turns == 0 {
		t.Error("Expected turns to remain after an early win")
	}
	if g.Play(0) {
		t.Error("Expected plays rejected after the run ends")
	}
}

func TestLoseWhenTurnsRunOut(t *testing.T) {
	g := NewGame(noRelics(), store.NewMemory(), 11)
	for !g.State().Over {
		g.state.Hand[0].Kind = Boost
		g.Play(0)
	}
	s := g.State()
	if s.Win || s.Turns != 0 {
		t.Errorf("Expected loss at 0 turns, got win=%v turns=%d", s.Win, s.Turns)
	}
}

func TestRefillAndSlotBounds(t *testing.T) {
	g := NewGame(noRelics(), store.NewMemory(), 5)
	before := g.State().Hand
	if g.Play(-1) || g.Play(len(before)) {
		t.Error("Expected out-of-range slots rejected")
	}
	g.Play(1)
	after := g.State().Hand
	if after[1].ID == before[1].ID {
		t.Error("Expected played slot refilled")
	}
	if after[0].ID != before[0].ID || after[2].ID != before[2].ID {
		t.Error("Expected other slots untouched")
	}
}

func TestRelicCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RelicChance = 1
	g := NewGame(cfg, store.NewMemory(), 9)
	for i := 0; i < 5; i++ {
		g.state.Hand[0].Kind = Boost
		g.state.Over = false
		g.Play(0)
	}
	if n := len(g.State().Relics); n != cfg.RelicCap {
		t.Errorf("Expected %d relics, got %d", cfg.RelicCap, n)
	}
}

func TestBestScorePersisted(t *testing.T) {
	mem := store.NewMemory()
	g := NewGame(noRelics(), mem, 1)
	g.state.Hand[0].Kind = Gem
	g.Play(0)

	if best, ok := store.GetInt(mem, store.KeyCardsBest); !ok || best != 5 {
		t.Errorf("Expected persisted best 5, got %d (%v)", best, ok)
	}

	g.Reset()
	g.state.Hand[0].Kind = Spark
	g.Play(0)
	if best, _ := store.GetInt(mem, store.KeyCardsBest); best != 5 {
		t.Errorf("Expected best unchanged by lower score, got %d", best)
	}

	g2 := NewGame(noRelics(), mem, 2)
	if g2.Best() != 5 {
		t.Errorf("Expected restored best 5, got %d", g2.Best())
	}
}

func TestBestScoreSurvivesUnavailableStore(t *testing.T) {
	g := NewGame(noRelics(), store.Unavailable{}, 1)
	g.state.Hand[0].Kind = Gem
	if !g.Play(0) {
		t.Fatal("Expected play accepted without storage")
	}
	if g.Best() != 5 {
		t.Errorf("Expected in-memory best 5, got %d", g.Best())
	}
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	a := NewGame(DefaultConfig(), store.NewMemory(), 42)
	b := NewGame(DefaultConfig(), store.NewMemory(), 42)
	for i := 0; i < 5; i++ {
		a.Play(i % 3)
		b.Play(i % 3)
	}
	sa, sb := a.State(), b.State()
	if sa.Score != sb.Score || sa.Log != sb.Log {
		t.Errorf("Expected identical runs, got %q and %q", sa.Log, sb.Log)
	}
	for i := range sa.Hand {
		if sa.Hand[i].ID != sb.Hand[i].ID {
			t.Errorf("Expected identical hands, slot %d differs", i)
		}
	}

	seed := a.Seed()
	a.Reset()
	if a.Seed() == seed {
		t.Error("Expected a fresh seed on reset")
	}
	if s := a.State(); s.Score != 0 || s.Turns != DefaultConfig().Turns || s.Over {
		t.Errorf("Expected clean state after reset, got %+v", s)
	}
}

func TestArtDeterministic(t *testing.T) {
	c := Card{Kind: Gem, Seed: 12345}
	a, b := c.Art(false), c.Art(false)
	if a.From != b.From || a.Sides != b.Sides {
		t.Error("Expected identical art for the same seed")
	}
	if a.Sides < 5 || a.Sides > 7 {
		t.Errorf("Expected 5-7 sides, got %d", a.Sides)
	}
	_, _, lLight := a.From.Hsl()
	_, _, lDark := c.Art(true).From.Hsl()
	if lDark >= lLight {
		t.Errorf("Expected darker art, got %.2f vs %.2f", lDark, lLight)
	}
}
