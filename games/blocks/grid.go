package blocks

// Grid is a fixed-size cell matrix indexed [row][col]
// Cells change only through Merge and ClearLines
type Grid struct {
	cols, rows int
	cells      [][]Color
}

// NewGrid creates an empty grid
func NewGrid(cols, rows int) *Grid {
	g := &Grid{cols: cols, rows: rows, cells: make([][]Color, rows)}
	for y := range g.cells {
		g.cells[y] = make([]Color, cols)
	}
	return g
}

// Cols returns the grid width
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height
func (g *Grid) Rows() int { return g.rows }

// At returns the cell value; coordinates outside the grid read as empty
func (g *Grid) At(x, y int) Color {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return 0
	}
	return g.cells[y][x]
}

// Collides reports whether shape placed with its top-left at (x, y) is illegal
// Cells above the top edge are allowed; side walls, the floor and occupied cells are not
func (g *Grid) Collides(s Shape, x, y int) bool {
	hit := false
	s.Cells(func(dx, dy int) {
		if hit {
			return
		}
		gx, gy := x+dx, y+dy
		if gx < 0 || gx >= g.cols || gy >= g.rows {
			hit = true
			return
		}
		if gy >= 0 && g.cells[gy][gx] != 0 {
			hit = true
		}
	})
	return hit
}

// Merge writes the piece's occupied in-bounds cells into the grid
func (g *Grid) Merge(p Piece) {
	color := p.Type.Color()
	p.Shape.Cells(func(dx, dy int) {
		gx, gy := p.X+dx, p.Y+dy
		if gy >= 0 && gy < g.rows && gx >= 0 && gx < g.cols {
			g.cells[gy][gx] = color
		}
	})
}

// ClearLines removes every full row, inserting empty rows at the top
// Returns the number of rows removed
func (g *Grid) ClearLines() int {
	kept := make([][]Color, 0, g.rows)
	for _, row := range g.cells {
		if !full(row) {
			kept = append(kept, row)
		}
	}
	cleared := g.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]Color, 0, g.rows)
	for i := 0; i < cleared; i++ {
		fresh = append(fresh, make([]Color, g.cols))
	}
	g.cells = append(fresh, kept...)
	return cleared
}

// SetRow fills row y with c; used to build fixtures
func (g *Grid) SetRow(y int, c Color) {
	for x := range g.cells[y] {
		g.cells[y][x] = c
	}
}

// Set writes one cell; used to build fixtures
func (g *Grid) Set(x, y int, c Color) {
	g.cells[y][x] = c
}

func full(row []Color) bool {
	for _, c := range row {
		if c == 0 {
			return false
		}
	}
	return true
}
