package engine

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Dispatcher runs callbacks on the owner's single event-loop goroutine
type Dispatcher interface {
	Post(fn func())
}

// DispatchFunc adapts a function to Dispatcher
type DispatchFunc func(fn func())

func (f DispatchFunc) Post(fn func()) { f(fn) }

// Inline runs posted callbacks immediately on the posting goroutine
var Inline = DispatchFunc(func(fn func()) { fn() })

// Task is a cancellable repeating callback with an adjustable interval
// Timer expiry is handed to the dispatcher so fn always runs on the event loop
// Callbacks queued before Stop or an interval change are dropped when they arrive
type Task struct {
	clock    clockwork.Clock
	dispatch Dispatcher
	fn       func()

	mu       sync.Mutex
	interval time.Duration
	timer    clockwork.Timer
	gen      uint64
	running  bool
	fires    uint64
}

// NewTask creates a stopped task
func NewTask(clock clockwork.Clock, dispatch Dispatcher, interval time.Duration, fn func()) *Task {
	return &Task{
		clock:    clock,
		dispatch: dispatch,
		fn:       fn,
		interval: interval,
	}
}

// Start begins scheduling; starting a running task is a no-op
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.gen++
	t.scheduleLocked()
}

// Stop cancels the pending tick; safe to call repeatedly
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// SetInterval changes the period and restarts the countdown if running
func (t *Task) SetInterval(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d == t.interval {
		return
	}
	t.interval = d
	if !t.running {
		return
	}
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
	}
	t.scheduleLocked()
}

// Interval returns the current period
func (t *Task) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// Running reports whether the task is scheduled
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Fires returns how many times fn has run
func (t *Task) Fires() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fires
}

func (t *Task) scheduleLocked() {
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.interval, func() {
		t.dispatch.Post(func() { t.fire(gen) })
	})
}

func (t *Task) fire(gen uint64) {
	t.mu.Lock()
	if !t.running || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.fires++
	t.mu.Unlock()

	t.fn()

	t.mu.Lock()
	// fn may have stopped or retimed the task
	if t.running && gen == t.gen {
		t.scheduleLocked()
	}
	t.mu.Unlock()
}

// After runs fn once after d unless the returned task is stopped first
func After(clock clockwork.Clock, dispatch Dispatcher, d time.Duration, fn func()) *Task {
	var t *Task
	t = NewTask(clock, dispatch, d, func() {
		t.Stop()
		fn()
	})
	t.Start()
	return t
}
