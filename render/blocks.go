package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/games/blocks"
)

var blocksHelp = []string{
	"← → move",
	"↑ rotate",
	"↓ soft drop",
	"space hard drop",
	"p pause",
	"r restart",
	"esc release",
}

// drawBlocks draws the board with its side panel; clicking the board focuses the game
func drawBlocks(c canvas, g *blocks.Game, width int, st Styles) {
	grid := g.Grid()
	bw := grid.Cols()*constants.BlockCellWidth + 2
	bh := grid.Rows() + 2

	border := st.Section.Foreground(st.AccentColor)
	if !g.Focused() {
		border = st.Section.Foreground(st.MutedFG)
	}
	c.box(0, 0, bw, bh, border)
	c.region(0, 0, bw, bh, Target{Kind: TargetGame})

	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			if v := grid.At(x, y); v != 0 {
				drawCell(c, x, y, cellStyle(v, st), '█')
			}
		}
	}

	phase := g.Phase()
	if phase != blocks.PhaseIdle && phase != blocks.PhaseOver {
		p := g.Piece()
		ghost := g.Ghost()
		ghostStyle := st.Section.Foreground(RgbGhost)
		eachCell(p.Shape, func(dx, dy int) {
			if ghost != p.Y {
				drawCell(c, p.X+dx, ghost+dy, ghostStyle, '░')
			}
		})
		style := cellStyle(p.Type.Color(), st)
		eachCell(p.Shape, func(dx, dy int) {
			drawCell(c, p.X+dx, p.Y+dy, style, '█')
		})
	}

	drawBlocksPanel(c, g, bw+2, width-bw-2, st)
	drawBlocksOverlay(c, g, bw, bh, st)
}

func drawCell(c canvas, x, y int, st tcell.Style, r rune) {
	if y < 0 {
		return
	}
	col := 1 + x*constants.BlockCellWidth
	for i := 0; i < constants.BlockCellWidth; i++ {
		c.set(col+i, 1+y, r, st)
	}
}

func cellStyle(v blocks.Color, st Styles) tcell.Style {
	return st.Section.Foreground(tcell.NewHexColor(int32(v)))
}

func eachCell(s blocks.Shape, fn func(dx, dy int)) {
	for dy, row := range s {
		for dx, on := range row {
			if on {
				fn(dx, dy)
			}
		}
	}
}

func drawBlocksPanel(c canvas, g *blocks.Game, x, w int, st Styles) {
	if w < 10 {
		return
	}
	text := st.Section.Foreground(st.PageFG)
	c.text(x, 0, "blocks", st.Section.Foreground(st.AccentColor).Bold(true))
	c.text(x, 2, scoreLine("score", g.Score()), text)
	c.text(x, 3, scoreLine("lines", g.Lines()), text)
	c.text(x, 4, fmt.Sprintf("%-6s %dms", "speed", g.Interval().Milliseconds()), text)
	c.text(x, 5, fmt.Sprintf("%-6s %s", "state", g.Phase()), text)

	dim := st.Section.Foreground(st.MutedFG)
	for i, line := range blocksHelp {
		c.textMax(x, 7+i, line, w, dim)
	}
}

func drawBlocksOverlay(c canvas, g *blocks.Game, bw, bh int, st Styles) {
	mid := bh / 2
	msg := st.AccentInv
	switch g.Phase() {
	case blocks.PhaseIdle:
		c.centered(1, mid, bw-2, " click to play ", msg)
	case blocks.PhasePaused:
		if g.PauseReasons()&blocks.PauseManual == 0 {
			c.centered(1, mid, bw-2, " paused ", msg)
			return
		}
		c.centered(1, mid-1, bw-2, " paused ", msg)
		x := c.centered(1, mid+1, bw-2, "[resume]", st.Button)
		c.region(x, mid+1, len("[resume]"), 1, Target{Kind: TargetResume})
	case blocks.PhaseOver:
		c.centered(1, mid-1, bw-2, " game over ", msg)
		x := c.centered(1, mid+1, bw-2, "[restart]", st.Button)
		c.region(x, mid+1, len("[restart]"), 1, Target{Kind: TargetRestart})
	case blocks.PhaseRunning:
		if !g.Focused() {
			c.centered(1, mid, bw-2, " click to focus ", msg)
		}
	}
}
