package engine

import "sync"

// Teardown collects cleanup functions and runs them exactly once in reverse order
type Teardown struct {
	mu   sync.Mutex
	fns  []func()
	done bool
}

// Add registers fn; if teardown already ran, fn runs immediately
func (td *Teardown) Add(fn func()) {
	td.mu.Lock()
	if td.done {
		td.mu.Unlock()
		fn()
		return
	}
	td.fns = append(td.fns, fn)
	td.mu.Unlock()
}

// Run executes all registered cleanups; later calls are no-ops
func (td *Teardown) Run() {
	td.mu.Lock()
	if td.done {
		td.mu.Unlock()
		return
	}
	td.done = true
	fns := td.fns
	td.fns = nil
	td.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Done reports whether Run has executed
func (td *Teardown) Done() bool {
	td.mu.Lock()
	defer td.mu.Unlock()
	return td.done
}
