package blocks

// Shape is a small boolean matrix indexed [row][col]
type Shape [][]bool

// ShapeType identifies one of the seven tetrominoes
type ShapeType int

const (
	ShapeI ShapeType = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
	shapeCount
)

var shapeNames = [shapeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (t ShapeType) String() string {
	if t < 0 || t >= shapeCount {
		return "?"
	}
	return shapeNames[t]
}

// Color is an opaque cell value; zero means empty
type Color uint32

// Piece colors as 0xRRGGBB
var shapeColors = [shapeCount]Color{
	ShapeI: 0x74b0d6,
	ShapeO: 0xf59e0b,
	ShapeT: 0xa78bfa,
	ShapeS: 0x34d399,
	ShapeZ: 0xef4444,
	ShapeJ: 0x60a5fa,
	ShapeL: 0xf472b6,
}

// Color returns the cell value used when a piece of this type locks
func (t ShapeType) Color() Color {
	if t < 0 || t >= shapeCount {
		return 0xffffff
	}
	return shapeColors[t]
}

var catalog = [shapeCount]Shape{
	ShapeI: parseShape("####"),
	ShapeO: parseShape("##", "##"),
	ShapeT: parseShape("###", ".#."),
	ShapeS: parseShape(".##", "##."),
	ShapeZ: parseShape("##.", ".##"),
	ShapeJ: parseShape("#..", "###"),
	ShapeL: parseShape("..#", "###"),
}

// BaseShape returns a fresh copy of the spawn orientation for t
func BaseShape(t ShapeType) Shape {
	return catalog[t].Clone()
}

func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// Clone returns a deep copy
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = append([]bool(nil), s[y]...)
	}
	return out
}

// Width returns the column count
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the row count
func (s Shape) Height() int {
	return len(s)
}

// Rotate returns s turned 90 degrees clockwise as a new matrix
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for x := 0; x < w; x++ {
		out[x] = make([]bool, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[x][h-1-y] = s[y][x]
		}
	}
	return out
}

// Cells calls fn for each occupied cell with its offset inside the matrix
func (s Shape) Cells(fn func(dx, dy int)) {
	for dy, row := range s {
		for dx, on := range row {
			if on {
				fn(dx, dy)
			}
		}
	}
}
