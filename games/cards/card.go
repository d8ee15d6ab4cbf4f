package cards

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies a card type in the draw pool
type Kind int

const (
	Spark Kind = iota
	Gem
	Void
	Boost
	Double
	kindCount
)

var kindInfo = [kindCount]struct {
	key   string
	label string
}{
	Spark:  {"spark", "Spark"},
	Gem:    {"gem", "Gem"},
	Void:   {"void", "Void"},
	Boost:  {"boost", "Boost"},
	Double: {"x2", "x2"},
}

func (k Kind) String() string { return kindInfo[k].key }

// Label is the face text
func (k Kind) Label() string { return kindInfo[k].label }

// apply runs the card effect on s and returns the log fragment
func (k Kind) apply(s *State) string {
	switch k {
	case Spark:
		s.Score += 3
		return "+3"
	case Gem:
		s.Score += 5
		return "+5"
	case Void:
		s.Score = max(0, s.Score-2)
		return "-2"
	case Boost:
		s.Bonus++
		return "Bonus +1"
	default:
		s.Mult = 2
		return "Next x2"
	}
}

// Card is one drawn instance; Seed drives its artwork
type Card struct {
	ID   string
	Kind Kind
	Seed uint64
}

// Art is the deterministic face pattern of a card
type Art struct {
	From, To colorful.Color
	Ink      colorful.Color
	Sides    int
	Stripes  []float64
}

// Art derives gradient colors, icon sides and stripe offsets from the seed
// Dark art is used when the surrounding page is light
func (c Card) Art(dark bool) Art {
	r := rand.New(rand.NewPCG(c.Seed, c.Seed>>17|1))
	hue := float64(r.IntN(360))
	var a Art
	if dark {
		a.From = colorful.Hsl(hue, 0.6, 0.25)
		a.To = colorful.Hsl(float64(int(hue+40)%360), 0.6, 0.18)
		a.Ink = colorful.Color{R: 1, G: 1, B: 1}
	} else {
		a.From = colorful.Hsl(hue, 0.7, 0.65)
		a.To = colorful.Hsl(float64(int(hue+40)%360), 0.7, 0.55)
	}
	a.Stripes = make([]float64, 4)
	for i := range a.Stripes {
		a.Stripes[i] = r.Float64()
	}
	a.Sides = 5 + r.IntN(3)
	return a
}
