// Package render draws the page, the terminal window and the embedded
// minigame onto a tcell screen and reports clickable regions.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/games/blocks"
	"github.com/lixenwraith/termfolio/games/cards"
	"github.com/lixenwraith/termfolio/games/narrative"
	"github.com/lixenwraith/termfolio/section"
	"github.com/lixenwraith/termfolio/theme"
)

// Focus names the component receiving keystrokes
type Focus int

const (
	FocusPrompt Focus = iota
	FocusPage
	FocusGame
)

// Terminal is the visible state of the terminal window
type Terminal struct {
	Lines   []string
	Input   string
	Buttons []string
}

// Frame is everything needed to draw one screen
type Frame struct {
	Token    theme.Token
	Catalog  section.Catalog
	Layout   *content.Layout
	Scroll   int
	Current  int
	Terminal Terminal
	Focus    Focus
	Sound    bool

	// At most one game is set
	Blocks *blocks.Game
	Cards  *cards.Game
	Story  *narrative.Session
}

// Geometry is the screen split for a terminal size
type Geometry struct {
	Width, Height int
	PageTop       int
	PageHeight    int
	ContentX      int
	ContentWidth  int
	TerminalTop   int
}

// Measure splits a w x h screen into status bar, page and terminal window
func Measure(w, h int) Geometry {
	pageH := max(1, h-constants.StatusBarHeight-constants.TerminalHeight)
	cw := max(1, min(w-2*constants.PagePaddingX, constants.MaxContentWidth))
	return Geometry{
		Width:        w,
		Height:       h,
		PageTop:      constants.StatusBarHeight,
		PageHeight:   pageH,
		ContentX:     max(0, (w-cw)/2),
		ContentWidth: cw,
		TerminalTop:  constants.StatusBarHeight + pageH,
	}
}

// Renderer draws frames; it holds no per-frame state
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer { return &Renderer{} }

// Draw paints f onto s and returns the clickable regions
func (r *Renderer) Draw(s tcell.Screen, f Frame) *Hits {
	w, h := s.Size()
	g := Measure(w, h)
	st := StylesFor(f.Token)
	hits := &Hits{}
	root := canvas{s: s, hits: hits, clip: rect{0, 0, w, h}}

	root.fill(0, 0, w, h, st.Page)
	r.drawPage(root.sub(0, g.PageTop, w, g.PageHeight), g, f, st)
	r.drawStatus(root.sub(0, 0, w, constants.StatusBarHeight), f, st)
	r.drawTerminal(root.sub(0, g.TerminalTop, w, h-g.TerminalTop), f, st)
	return hits
}

func (r *Renderer) drawStatus(c canvas, f Frame, st Styles) {
	w := c.clip.w
	c.fill(0, 0, w, 1, st.Status)
	col := c.text(0, 0, " termfolio ", st.AccentInv)
	col++
	for i, sec := range f.Catalog {
		label := " " + sec.Title + " "
		style := st.Status
		if i == f.Current {
			style = st.Current
		}
		n := c.text(col, 0, label, style)
		c.region(col, 0, n, 1, Target{Kind: TargetSection, Index: i})
		col += n
	}

	right := string(f.Token.Key)
	if f.Sound {
		right = "♪ " + right
	} else {
		right = "· " + right
	}
	right += " "
	x := w - runewidth.StringWidth(right)
	c.text(x, 0, right, st.PanelDim)
	if f.Current != 0 {
		label := "[home]"
		hx := x - runewidth.StringWidth(label) - 1
		if hx > col {
			c.button(hx, 0, "home", st.Button, Target{Kind: TargetHome})
		}
	}
}

func (r *Renderer) drawPage(c canvas, g Geometry, f Frame, st Styles) {
	l := f.Layout
	if l == nil {
		return
	}
	for row := 0; row < g.PageHeight; row++ {
		y := f.Scroll + row
		if y < 0 || y >= len(l.Lines) {
			continue
		}
		line := l.Lines[y]
		col := g.ContentX + line.Indent
		for _, span := range line.Spans {
			n := c.text(col, row, span.Text, st.For(span.Kind))
			if span.URL != "" {
				c.region(col, row, n, 1, Target{Kind: TargetLink, Text: span.URL})
			}
			col += n
		}
	}

	if l.GameTop >= 0 {
		top := l.GameTop - f.Scroll
		gc := c.sub(g.ContentX, top, g.ContentWidth, l.GameRows)
		gc.fill(0, 0, g.ContentWidth, l.GameRows, st.Section)
		switch {
		case f.Blocks != nil:
			drawBlocks(gc, f.Blocks, g.ContentWidth, st)
		case f.Cards != nil:
			drawCards(gc, f.Cards, g.ContentWidth, st)
		case f.Story != nil:
			drawStory(gc, f.Story, g.ContentWidth, l.GameRows, st)
		}
	}
}

func (r *Renderer) drawTerminal(c canvas, f Frame, st Styles) {
	w, h := c.clip.w, c.clip.h
	if h <= 0 {
		return
	}
	c.fill(0, 0, w, h, st.Panel)

	c.set(1, 0, '●', st.Panel.Foreground(RgbDotRed))
	c.set(3, 0, '●', st.Panel.Foreground(RgbDotYellow))
	c.set(5, 0, '●', st.Panel.Foreground(RgbDotGreen))
	c.centered(0, 0, w, "terminal — bash", st.PanelDim)

	// transcript fills the rows between the title and the prompt
	rows := max(0, h-3)
	lines := f.Terminal.Lines
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i, line := range lines {
		c.textMax(1, 1+i, line, w-2, st.Panel)
	}

	py := 1 + rows
	col := 1 + c.text(1, py, constants.Prompt, st.Accent)
	col++
	avail := w - col - 7
	input := f.Terminal.Input
	if iw := runewidth.StringWidth(input); iw > avail && avail > 0 {
		// keep the tail visible while typing
		input = runewidth.TruncateLeft(input, iw-avail+1, "…")
	}
	col += c.text(col, py, input, st.Panel)
	if f.Focus == FocusPrompt {
		c.set(col, py, ' ', st.Current)
	}
	c.region(0, py, w-6, 1, Target{Kind: TargetPrompt})
	c.button(w-6, py, "run", st.Button, Target{Kind: TargetRun})

	bx := 1
	for _, b := range f.Terminal.Buttons {
		n := c.button(bx, py+1, b, st.Button, Target{Kind: TargetButton, Text: b})
		bx += n + 1
	}
}

// GameView reports the visible fraction of the game block for the current scroll
func GameView(l *content.Layout, scroll int) float64 {
	if l == nil || l.GameTop < 0 || l.GameRows <= 0 {
		return 0
	}
	top := max(l.GameTop, scroll)
	bottom := min(l.GameTop+l.GameRows, scroll+l.Viewport)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(l.GameRows)
}

func scoreLine(label string, v int) string {
	return fmt.Sprintf("%-6s %d", label, v)
}
