package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/games/cards"
)

var cardGlyphs = map[int]rune{5: '⬟', 6: '⬢', 7: '✶'}

var cardHints = map[cards.Kind]string{
	cards.Spark:  "+3",
	cards.Gem:    "+5",
	cards.Void:   "-2",
	cards.Boost:  "bonus +1",
	cards.Double: "next x2",
}

// drawCards draws the HUD, the hand and the run log
func drawCards(c canvas, g *cards.Game, width int, st Styles) {
	s := g.State()
	text := st.Section.Foreground(st.PageFG)
	dim := st.Section.Foreground(st.MutedFG)

	hud := fmt.Sprintf("score %d/%d   turns %d   x%d   bonus %d   combo %d   best %d",
		s.Score, s.Goal, s.Turns, s.Mult, s.Bonus, s.Combo, g.Best())
	c.textMax(0, 0, hud, width, text)

	relics := "none"
	if len(s.Relics) > 0 {
		names := make([]string, len(s.Relics))
		for i, r := range s.Relics {
			names[i] = string(r)
		}
		relics = strings.Join(names, ", ")
	}
	c.textMax(0, 1, "relics: "+relics, width, dim)

	for i, card := range s.Hand {
		x := i * (constants.CardWidth + constants.CardGap)
		drawCard(c.sub(x, 3, constants.CardWidth, constants.CardHeight), card, i, st)
		c.region(x, 3, constants.CardWidth, constants.CardHeight, Target{Kind: TargetCard, Index: i})
	}

	y := 3 + constants.CardHeight + 1
	if s.Log != "" {
		c.textMax(0, y, s.Log, width, text)
	}

	if s.Over {
		msg := " out of turns "
		if s.Win {
			msg = " you win! "
		}
		n := c.text(0, y+2, msg, st.AccentInv)
		c.button(n+2, y+2, "reset", st.Button.Background(st.SectionBG), Target{Kind: TargetCardReset})
	} else {
		c.textMax(0, y+2, "1 2 3 play a card · r reset", width, dim)
	}
}

func drawCard(c canvas, card cards.Card, slot int, st Styles) {
	art := card.Art(st.Dark)
	w, h := constants.CardWidth, constants.CardHeight
	ink := colorOf(art.Ink)

	for row := 0; row < h; row++ {
		t := float64(row) / float64(h-1)
		base := tcell.StyleDefault.Background(colorOf(art.From.BlendLab(art.To, t))).Foreground(ink)
		stripe := base.Foreground(colorOf(art.From.BlendLab(art.To, 1-t)))
		c.fill(0, row, w, 1, base)
		for _, off := range art.Stripes {
			// stripes lean right as they descend
			col := 1 + int(off*float64(w-2)) + row/2
			if col > 0 && col < w-1 {
				c.set(col, row, '╱', stripe)
			}
		}

		switch row {
		case 0:
			c.text(1, row, strconv.Itoa(slot+1), base.Bold(true))
		case h / 2:
			c.set(w/2, row, glyphFor(art.Sides), base)
		case h - 3:
			c.centered(0, row, w, " "+card.Kind.Label()+" ", base.Bold(true))
		case h - 2:
			c.centered(0, row, w, cardHints[card.Kind], base)
		}
	}
}

func glyphFor(sides int) rune {
	if r, ok := cardGlyphs[sides]; ok {
		return r
	}
	return '◆'
}
