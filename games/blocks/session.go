package blocks

import (
	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/termfolio/engine"
)

// Session owns a game and its gravity task
// Every mutation goes through the session so the task follows the game phase
type Session struct {
	game    *Game
	gravity *engine.Task
	onTick  func(TickResult)
	closed  bool
}

// NewSession wires game to a gravity task on clock; onTick may be nil
func NewSession(game *Game, clock clockwork.Clock, dispatch engine.Dispatcher, onTick func(TickResult)) *Session {
	s := &Session{game: game, onTick: onTick}
	s.gravity = engine.NewTask(clock, dispatch, game.Interval(), s.tick)
	return s
}

// Game returns the underlying model for rendering
func (s *Session) Game() *Game { return s.game }

// GravityRunning reports whether a gravity tick is scheduled
func (s *Session) GravityRunning() bool { return s.gravity.Running() }

func (s *Session) tick() {
	res := s.game.Tick()
	if s.onTick != nil && (res.Locked || res.Over) {
		s.onTick(res)
	}
	s.sync()
}

// sync starts, retimes or stops gravity to match the game phase
func (s *Session) sync() {
	if s.closed || !s.game.Running() {
		s.gravity.Stop()
		return
	}
	s.gravity.SetInterval(s.game.Interval())
	s.gravity.Start()
}

func (s *Session) do(fn func() bool) bool {
	if s.closed {
		return false
	}
	ok := fn()
	s.sync()
	return ok
}

func (s *Session) Enter() { s.do(func() bool { s.game.Enter(); return true }) }
func (s *Session) Restart() { s.do(func() bool { s.game.Restart(); return true }) }
func (s *Session) SetFocus(focused bool) { s.do(func() bool { s.game.SetFocus(focused); return true }) }
func (s *Session) SetInView(inView bool) { s.do(func() bool { s.game.SetInView(inView); return true }) }
func (s *Session) SetHostVisible(v bool) { s.do(func() bool { s.game.SetHostVisible(v); return true }) }
func (s *Session) TogglePause() bool { return s.do(s.game.TogglePause) }
func (s *Session) Resume() bool { return s.do(s.game.Resume) }
func (s *Session) MoveLeft() bool { return s.do(s.game.MoveLeft) }
func (s *Session) MoveRight() bool { return s.do(s.game.MoveRight) }
func (s *Session) Rotate() bool { return s.do(s.game.Rotate) }
func (s *Session) SoftDrop() bool { return s.do(s.game.SoftDrop) }
func (s *Session) HardDrop() bool { return s.do(s.game.HardDrop) }

// Close cancels gravity; later calls and actions are no-ops
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.gravity.Stop()
}
