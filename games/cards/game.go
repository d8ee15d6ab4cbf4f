// Package cards implements the card draw and score loop: a small hand,
// score modifiers, combo streaks, relics and a persisted best score.
package cards

import (
	"encoding/binary"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/store"
)

// Relic is a modifier found at random during play
type Relic string

const (
	Ember Relic = "ember" // +1 permanent bonus
	Lens  Relic = "lens"  // multiplier raised to at least 2
)

// Config holds loop parameters
type Config struct {
	Goal        int
	Turns       int
	HandSize    int
	ComboStep   int
	RelicChance float64
	RelicCap    int
}

// DefaultConfig returns the reference parameters
func DefaultConfig() Config {
	return Config{
		Goal:        constants.CardGoal,
		Turns:       constants.CardTurns,
		HandSize:    constants.CardHandSize,
		ComboStep:   constants.CardComboStep,
		RelicChance: constants.RelicChance,
		RelicCap:    constants.RelicCap,
	}
}

// State is a snapshot of one run
type State struct {
	Score  int
	Goal   int
	Turns  int
	Mult   int
	Bonus  int
	Combo  int
	Relics []Relic
	Hand   []Card
	Log    string
	Over   bool
	Win    bool
}

// Game runs the loop; it is not safe for concurrent use
type Game struct {
	cfg    Config
	store  store.Store
	master *rand.Rand
	rng    *rand.Rand
	src    *rand.ChaCha8
	seed   uint64
	state  State
	best   int
}

// NewGame creates a dealt game; seed fixes every run drawn from it
func NewGame(cfg Config, s store.Store, seed uint64) *Game {
	g := &Game{
		cfg:    cfg,
		store:  s,
		master: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	if best, ok := store.GetInt(s, store.KeyCardsBest); ok {
		g.best = best
	}
	g.Reset()
	return g
}

// Reset starts a fresh run with a new seed and hand
func (g *Game) Reset() {
	g.seed = g.master.Uint64()
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], g.seed)
	g.src = rand.NewChaCha8(key)
	g.rng = rand.New(g.src)

	g.state = State{
		Goal:  g.cfg.Goal,
		Turns: g.cfg.Turns,
		Mult:  1,
		Log:   "Pick a card",
		Hand:  make([]Card, g.cfg.HandSize),
	}
	for i := range g.state.Hand {
		g.state.Hand[i] = g.draw()
	}
}

func (g *Game) draw() Card {
	k := Kind(g.rng.IntN(int(kindCount)))
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		id = uuid.New()
	}
	return Card{ID: k.String() + "-" + id.String(), Kind: k, Seed: g.rng.Uint64()}
}

// State returns a copy of the current run
func (g *Game) State() State {
	s := g.state
	s.Relics = append([]Relic(nil), g.state.Relics...)
	s.Hand = append([]Card(nil), g.state.Hand...)
	return s
}

// Seed returns the seed of the current run
func (g *Game) Seed() uint64 { return g.seed }

// Best returns the highest score seen, persisted or not
func (g *Game) Best() int { return g.best }

// Play resolves the card in slot; plays after the run ends or on a bad slot are rejected
func (g *Game) Play(slot int) bool {
	prev := g.state
	if prev.Over || slot < 0 || slot >= len(prev.Hand) {
		return false
	}
	chosen := prev.Hand[slot]

	next := prev
	next.Relics = append([]Relic(nil), prev.Relics...)
	next.Log = chosen.Kind.apply(&next)

	gain := next.Score - prev.Score
	if gain > 0 && prev.Mult > 1 {
		next.Score = prev.Score + gain*prev.Mult
		next.Mult = 1
	}
	if gain > 0 && prev.Bonus > 0 {
		next.Score += prev.Bonus
	}

	if gain > 0 {
		next.Combo++
		if next.Combo%g.cfg.ComboStep == 0 {
			next.Bonus++
			next.Log += " · combo! +1 bonus"
		}
	} else {
		next.Combo = 0
	}

	if len(next.Relics) < g.cfg.RelicCap && g.rng.Float64() < g.cfg.RelicChance {
		kind := Ember
		if g.rng.Float64() < 0.5 {
			kind = Lens
		}
		next.Relics = append(next.Relics, kind)
		switch kind {
		case Ember:
			next.Bonus++
			next.Log += " · found EMBER (+1 bonus)"
		case Lens:
			next.Mult = max(next.Mult, 2)
			next.Log += " · found LENS (x2)"
		}
	}

	next.Turns--
	next.Log = fmt.Sprintf("%s → %s", chosen.Kind.Label(), next.Log)

	next.Hand = append([]Card(nil), prev.Hand...)
	next.Hand[slot] = g.draw()

	if next.Score >= next.Goal {
		next.Over, next.Win = true, true
	} else if next.Turns <= 0 {
		next.Over, next.Win = true, false
	}
	g.state = next

	if next.Score > g.best {
		g.best = next.Score
		if err := store.SetInt(g.store, store.KeyCardsBest, next.Score); err != nil {
			log.Printf("cards: persist best: %v", err)
		}
	}
	return true
}
