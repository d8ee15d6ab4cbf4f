package render

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// canvas draws in local coordinates translated by (ox, oy) and clipped to a screen rectangle
type canvas struct {
	s      tcell.Screen
	hits   *Hits
	ox, oy int
	clip   rect
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) intersect(o rect) rect {
	x0, y0 := max(r.x, o.x), max(r.y, o.y)
	x1, y1 := min(r.x+r.w, o.x+o.w), min(r.y+r.h, o.y+o.h)
	if x1 <= x0 || y1 <= y0 {
		return rect{}
	}
	return rect{x0, y0, x1 - x0, y1 - y0}
}

// sub returns a canvas whose origin is at local (x, y) and clipped to w x h
func (c canvas) sub(x, y, w, h int) canvas {
	r := rect{c.ox + x, c.oy + y, w, h}
	return canvas{s: c.s, hits: c.hits, ox: r.x, oy: r.y, clip: c.clip.intersect(r)}
}

func (c canvas) set(x, y int, r rune, st tcell.Style) {
	sx, sy := c.ox+x, c.oy+y
	if c.clip.contains(sx, sy) {
		c.s.SetContent(sx, sy, r, nil, st)
	}
}

// text draws s at (x, y) and returns the number of columns advanced
func (c canvas) text(x, y int, s string, st tcell.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(col, y, r, st)
		if w == 2 {
			// the trailing half of a wide rune must not be painted over by the next cell
			col++
		}
		col++
	}
	return col - x
}

// textMax draws at most n columns of s
func (c canvas) textMax(x, y int, s string, n int, st tcell.Style) int {
	if n <= 0 {
		return 0
	}
	if runewidth.StringWidth(s) > n {
		s = runewidth.Truncate(s, n, "…")
	}
	return c.text(x, y, s, st)
}

// centered draws s centered within [x, x+w)
func (c canvas) centered(x, y, w int, s string, st tcell.Style) int {
	sw := runewidth.StringWidth(s)
	if sw > w {
		s = runewidth.Truncate(s, w, "…")
		sw = runewidth.StringWidth(s)
	}
	start := x + (w-sw)/2
	c.text(start, y, s, st)
	return start
}

func (c canvas) fill(x, y, w, h int, st tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.set(col, row, ' ', st)
		}
	}
}

func (c canvas) box(x, y, w, h int, st tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	c.set(x, y, '┌', st)
	c.set(x+w-1, y, '┐', st)
	c.set(x, y+h-1, '└', st)
	c.set(x+w-1, y+h-1, '┘', st)
	for col := x + 1; col < x+w-1; col++ {
		c.set(col, y, '─', st)
		c.set(col, y+h-1, '─', st)
	}
	for row := y + 1; row < y+h-1; row++ {
		c.set(x, row, '│', st)
		c.set(x+w-1, row, '│', st)
	}
}

// button draws a bracketed label and registers its clipped region
func (c canvas) button(x, y int, label string, st tcell.Style, t Target) int {
	w := c.text(x, y, "["+label+"]", st)
	c.region(x, y, w, 1, t)
	return w
}

// region registers a local rectangle, clipped to the visible area
func (c canvas) region(x, y, w, h int, t Target) {
	if c.hits == nil {
		return
	}
	r := c.clip.intersect(rect{c.ox + x, c.oy + y, w, h})
	c.hits.add(r.x, r.y, r.w, r.h, t)
}

// wrap splits s into lines no wider than w, breaking on spaces
func wrap(s string, w int) []string {
	if w <= 0 {
		return nil
	}
	var out []string
	var line string
	for _, word := range splitWords(s) {
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= w:
			line += " " + word
		default:
			out = append(out, line)
			line = word
		}
		for runewidth.StringWidth(line) > w {
			head := runewidth.Truncate(line, w, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(line)
				head = line[:size]
			}
			out = append(out, head)
			line = line[len(head):]
		}
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
