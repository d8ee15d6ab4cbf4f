// Package blocks implements the falling-block puzzle: a fixed grid, seven
// tetrominoes, gravity ticks, line clears and game-over detection.
package blocks

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/termfolio/constants"
)

// Phase is the coarse game state
type Phase int

const (
	PhaseIdle Phase = iota // not entered yet
	PhaseRunning
	PhasePaused
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	default:
		return "over"
	}
}

// PauseReason is a bitmask of conditions suspending gravity
type PauseReason uint8

const (
	// PauseManual is set by the pause key or by the host losing focus; cleared only by Resume
	PauseManual PauseReason = 1 << iota
	// PauseOutOfView is set while the game area is scrolled out of view
	PauseOutOfView
)

// Config holds grid and gravity parameters
type Config struct {
	Cols         int
	Rows         int
	GravityStart time.Duration
	GravityDecay float64
	GravityFloor time.Duration
}

// DefaultConfig returns the reference parameters
func DefaultConfig() Config {
	return Config{
		Cols:         constants.BlocksCols,
		Rows:         constants.BlocksRows,
		GravityStart: constants.GravityStart,
		GravityDecay: constants.GravityDecay,
		GravityFloor: constants.GravityFloor,
	}
}

// Piece is the falling tetromino; X, Y locate the shape's top-left cell
type Piece struct {
	Type  ShapeType
	Shape Shape
	X, Y  int
}

// TickResult reports what one gravity tick did
type TickResult struct {
	Moved   bool
	Locked  bool
	Cleared int
	Points  int
	Over    bool
}

// Game is the puzzle model; it is not safe for concurrent use
type Game struct {
	cfg      Config
	rng      *rand.Rand
	grid     *Grid
	piece    Piece
	score    int
	lines    int
	locks    int
	interval time.Duration

	entered bool
	over    bool
	focused bool
	paused  PauseReason
}

// NewGame creates a game in the idle phase; rng selects shapes
func NewGame(cfg Config, rng *rand.Rand) *Game {
	g := &Game{cfg: cfg, rng: rng}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.grid = NewGrid(g.cfg.Cols, g.cfg.Rows)
	g.piece = g.spawn()
	g.score = 0
	g.lines = 0
	g.locks = 0
	g.interval = g.cfg.GravityStart
	g.over = false
}

func (g *Game) spawn() Piece {
	t := ShapeType(g.rng.IntN(int(shapeCount)))
	return Piece{Type: t, Shape: BaseShape(t), X: g.cfg.Cols/2 - 1, Y: 0}
}

// Phase derives the current state
func (g *Game) Phase() Phase {
	switch {
	case g.over:
		return PhaseOver
	case !g.entered:
		return PhaseIdle
	case g.paused != 0:
		return PhasePaused
	default:
		return PhaseRunning
	}
}

// Running reports whether gravity should tick
func (g *Game) Running() bool {
	return g.Phase() == PhaseRunning
}

// Grid exposes the locked cells
func (g *Game) Grid() *Grid { return g.grid }

// Piece returns the falling piece
func (g *Game) Piece() Piece { return g.piece }

// Score returns the accumulated points
func (g *Game) Score() int { return g.score }

// Lines returns the total cleared rows
func (g *Game) Lines() int { return g.lines }

// Interval returns the current gravity period
func (g *Game) Interval() time.Duration { return g.interval }

// Focused reports whether the game receives keys
func (g *Game) Focused() bool { return g.focused }

// PauseReasons returns the active pause conditions
func (g *Game) PauseReasons() PauseReason { return g.paused }

// Ghost returns the row the piece would rest on after a hard drop
func (g *Game) Ghost() int {
	y := g.piece.Y
	for !g.grid.Collides(g.piece.Shape, g.piece.X, y+1) {
		y++
	}
	return y
}

// Enter starts the simulation and takes focus; later calls only refocus
func (g *Game) Enter() {
	g.entered = true
	g.focused = true
}

// SetFocus routes or withdraws key input
func (g *Game) SetFocus(focused bool) {
	g.focused = focused
}

// SetInView toggles the out-of-view pause condition
func (g *Game) SetInView(inView bool) {
	if inView {
		g.paused &^= PauseOutOfView
	} else {
		g.paused |= PauseOutOfView
	}
}

// SetHostVisible pauses manually when the host becomes hidden
// Becoming visible again does not resume; the player must resume explicitly
func (g *Game) SetHostVisible(visible bool) {
	if !visible && g.entered && !g.over {
		g.paused |= PauseManual
	}
}

// TogglePause flips the manual pause from the keyboard
func (g *Game) TogglePause() bool {
	if !g.entered || g.over || !g.focused {
		return false
	}
	g.paused ^= PauseManual
	return true
}

// Resume clears the manual pause; the out-of-view condition still applies
func (g *Game) Resume() bool {
	if g.paused&PauseManual == 0 || g.over {
		return false
	}
	g.paused &^= PauseManual
	return true
}

// Restart clears the board and score and resumes play
func (g *Game) Restart() {
	g.reset()
	g.entered = true
	g.focused = true
	g.paused &^= PauseManual
}

func (g *Game) acceptsInput() bool {
	return g.Running() && g.focused
}

func (g *Game) tryMove(dx, dy int) bool {
	if !g.acceptsInput() {
		return false
	}
	p := g.piece
	if g.grid.Collides(p.Shape, p.X+dx, p.Y+dy) {
		return false
	}
	g.piece.X += dx
	g.piece.Y += dy
	return true
}

// MoveLeft shifts the piece one column left if legal
func (g *Game) MoveLeft() bool { return g.tryMove(-1, 0) }

// MoveRight shifts the piece one column right if legal
func (g *Game) MoveRight() bool { return g.tryMove(1, 0) }

// SoftDrop moves the piece one row down if legal
func (g *Game) SoftDrop() bool { return g.tryMove(0, 1) }

// Rotate turns the piece clockwise; a rotation that collides is rejected without kicks
func (g *Game) Rotate() bool {
	if !g.acceptsInput() {
		return false
	}
	r := g.piece.Shape.Rotate()
	if g.grid.Collides(r, g.piece.X, g.piece.Y) {
		return false
	}
	g.piece.Shape = r
	return true
}

// HardDrop moves the piece to its resting row
// The lock itself happens on the next gravity tick
func (g *Game) HardDrop() bool {
	if !g.acceptsInput() {
		return false
	}
	g.piece.Y = g.Ghost()
	return true
}

// Tick applies one gravity step
func (g *Game) Tick() TickResult {
	if !g.Running() {
		return TickResult{}
	}

	p := g.piece
	if !g.grid.Collides(p.Shape, p.X, p.Y+1) {
		g.piece.Y++
		return TickResult{Moved: true}
	}

	res := TickResult{Locked: true}
	g.grid.Merge(p)
	g.locks++
	res.Cleared = g.grid.ClearLines()
	if res.Cleared > 0 {
		res.Points = scoreFor(res.Cleared)
		g.score += res.Points
		g.lines += res.Cleared
	}

	next := g.spawn()
	if g.grid.Collides(next.Shape, next.X, next.Y) {
		g.over = true
		res.Over = true
		return res
	}
	g.piece = next
	g.interval = max(g.cfg.GravityFloor, time.Duration(float64(g.interval)*g.cfg.GravityDecay))
	return res
}

func scoreFor(cleared int) int {
	if cleared >= len(constants.LineClearScores) {
		cleared = len(constants.LineClearScores) - 1
	}
	return constants.LineClearScores[cleared]
}
