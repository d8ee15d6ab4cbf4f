// Package theme holds the closed set of accent themes and the registry that
// tracks, persists and broadcasts the active one.
package theme

import (
	"fmt"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Key names one entry of the closed theme set
type Key string

const (
	Red    Key = "red"
	Blue   Key = "blue"
	Green  Key = "green"
	Yellow Key = "yellow"
	Peach  Key = "peach"
	Black  Key = "black"
	White  Key = "white"
)

// DefaultKey is used whenever no valid key is available
const DefaultKey = Blue

// Keys lists every theme key in display order
var Keys = []Key{Red, Blue, Green, Yellow, Peach, Black, White}

// Valid reports whether k is a member of the theme set
func (k Key) Valid() bool {
	return slices.Contains(Keys, k)
}

// Parse returns the key for s, or false when s is not a theme key
func Parse(s string) (Key, bool) {
	k := Key(s)
	return k, k.Valid()
}

// Palette is the set of surface colors derived for a theme
type Palette struct {
	SiteBG     string
	SiteFG     string
	PanelBG    string
	PanelFG    string
	SectionBG  string
	AccentText string // accent as used for headings; plain foreground on white
}

// Token is the full color description of one theme
type Token struct {
	Key      Key
	Accent   string   // hex accent
	RGB      [3]uint8 // accent channels for translucency effects
	Contrast string   // text color drawn on top of the accent
	Palette  Palette
}

type accentEntry struct {
	hex      string
	contrast string
}

var accents = map[Key]accentEntry{
	Red:    {"#ef4444", "#ffffff"},
	Blue:   {"#74b0d6", "#000000"},
	Green:  {"#34d399", "#000000"},
	Yellow: {"#f59e0b", "#000000"},
	Peach:  {"#ffc6a1", "#000000"},
	Black:  {"#111827", "#ffffff"},
	White:  {"#ffffff", "#000000"},
}

// Surfaces of the default (colored) scheme
const (
	baseSiteBG  = "#0f0b0a"
	baseSiteFG  = "#ffe5d6"
	basePanelFG = "#e8f5fc"
)

// Tint amounts blended from the accent into the site background
const (
	panelTint   = 0.14
	sectionTint = 0.07
	accentLift  = 0.2
)

// TokenFor builds the token for k; invalid keys yield the default token
func TokenFor(k Key) Token {
	if !k.Valid() {
		k = DefaultKey
	}

	// Black and white are surface schemes; they keep a readable colored accent
	accentKey := k
	if k == Black || k == White {
		accentKey = Blue
	}
	entry := accents[accentKey]
	accent := mustHex(entry.hex)
	r, g, b := accent.RGB255()

	return Token{
		Key:      k,
		Accent:   entry.hex,
		RGB:      [3]uint8{r, g, b},
		Contrast: entry.contrast,
		Palette:  paletteFor(k, accent),
	}
}

func paletteFor(k Key, accent colorful.Color) Palette {
	switch k {
	case Black:
		return Palette{
			SiteBG:     "#0b0b0b",
			SiteFG:     "#e5e5e5",
			PanelBG:    "#000000",
			PanelFG:    "#e5e7eb",
			SectionBG:  "#111111",
			AccentText: accent.Hex(),
		}
	case White:
		return Palette{
			SiteBG:     "#f8fafc",
			SiteFG:     "#0b0f13",
			PanelBG:    "#ffffff",
			PanelFG:    "#0b0f13",
			SectionBG:  "#eef2f6",
			AccentText: "#0b0f13",
		}
	}

	site := mustHex(baseSiteBG)
	return Palette{
		SiteBG:     baseSiteBG,
		SiteFG:     baseSiteFG,
		PanelBG:    Tint(site, accent, panelTint),
		PanelFG:    basePanelFG,
		SectionBG:  Tint(site, accent, sectionTint),
		AccentText: Tint(accent, colorful.Color{R: 1, G: 1, B: 1}, accentLift),
	}
}

// Tint blends amount of over into base in Lab space and returns the hex result
func Tint(base, over colorful.Color, amount float64) string {
	return base.BlendLab(over, amount).Clamped().Hex()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("theme: bad color literal %q: %v", s, err))
	}
	return c
}
