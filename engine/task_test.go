package engine

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// queue is a dispatcher that hands callbacks to the test goroutine
type queue chan func()

func (q queue) Post(fn func()) { q <- fn }

// runNext executes the next posted callback or fails after a timeout
func (q queue) runNext(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a posted callback")
	}
}

func (q queue) expectEmpty(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q:
		fn()
		t.Error("Expected no posted callback")
	case <-time.After(50 * time.Millisecond):
	}
}

func waitTimers(t *testing.T, fc *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fc.BlockUntilContext(ctx, n); err != nil {
		t.Fatalf("Expected %d pending timers: %v", n, err)
	}
}

func TestTaskFiresOnInterval(t *testing.T) {
	fc := clockwork.NewFakeClock()
	q := make(queue, 8)
	count := 0
	task := NewTask(fc, q, 800*time.Millisecond, func() { count++ })
	task.Start()
	defer task.Stop()

	waitTimers(t, fc, 1)
	fc.Advance(800 * time.Millisecond)
	q.runNext(t)

	waitTimers(t, fc, 1)
	fc.Advance(800 * time.Millisecond)
	q.runNext(t)

	if count != 2 {
		t.Errorf("Expected 2 ticks, got %d", count)
	}
	if task.Fires() != 2 {
		t.Errorf("Expected Fires()=2, got %d", task.Fires())
	}
}

func TestTaskStopDropsQueuedTick(t *testing.T) {
	fc := clockwork.NewFakeClock()
	q := make(queue, 8)
	count := 0
	task := NewTask(fc, q, time.Second, func() { count++ })
	task.Start()

	waitTimers(t, fc, 1)
	fc.Advance(time.Second)

	// Tick is queued on the loop; teardown happens before it is processed
	task.Stop()
	task.Stop()
	q.runNext(t)

	if count != 0 {
		t.Errorf("Expected stale tick to be dropped, got %d runs", count)
	}
	if task.Running() {
		t.Error("Expected task to be stopped")
	}
	q.expectEmpty(t)
}

func TestTaskSetIntervalRetimes(t *testing.T) {
	fc := clockwork.NewFakeClock()
	q := make(queue, 8)
	count := 0
	task := NewTask(fc, q, time.Second, func() { count++ })
	task.Start()
	defer task.Stop()

	waitTimers(t, fc, 1)
	task.SetInterval(100 * time.Millisecond)
	if task.Interval() != 100*time.Millisecond {
		t.Errorf("Expected 100ms interval, got %v", task.Interval())
	}

	waitTimers(t, fc, 1)
	fc.Advance(100 * time.Millisecond)
	q.runNext(t)

	if count != 1 {
		t.Errorf("Expected retimed tick to fire, got %d", count)
	}
}

func TestTaskStopFromCallback(t *testing.T) {
	fc := clockwork.NewFakeClock()
	q := make(queue, 8)
	var task *Task
	task = NewTask(fc, q, time.Second, func() { task.Stop() })
	task.Start()

	waitTimers(t, fc, 1)
	fc.Advance(time.Second)
	q.runNext(t)

	if task.Running() {
		t.Error("Expected task stopped by its own callback")
	}
	fc.Advance(5 * time.Second)
	q.expectEmpty(t)
}

func TestAfterRunsOnce(t *testing.T) {
	fc := clockwork.NewFakeClock()
	q := make(queue, 8)
	count := 0
	task := After(fc, q, 1200*time.Millisecond, func() { count++ })

	waitTimers(t, fc, 1)
	fc.Advance(1200 * time.Millisecond)
	q.runNext(t)

	fc.Advance(5 * time.Second)
	q.expectEmpty(t)

	if count != 1 {
		t.Errorf("Expected one run, got %d", count)
	}
	if task.Running() {
		t.Error("Expected one-shot task to be stopped")
	}
}

func TestTeardownRunsOnceInReverse(t *testing.T) {
	var td Teardown
	var order []int
	td.Add(func() { order = append(order, 1) })
	td.Add(func() { order = append(order, 2) })

	td.Run()
	td.Run()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("Expected [2 1], got %v", order)
	}
	if !td.Done() {
		t.Error("Expected Done after Run")
	}

	late := false
	td.Add(func() { late = true })
	if !late {
		t.Error("Expected cleanup added after Run to execute immediately")
	}
}

func TestInlineDispatch(t *testing.T) {
	ran := false
	Inline.Post(func() { ran = true })
	if !ran {
		t.Error("Expected inline dispatch to run synchronously")
	}
}
