package core

import (
	"runtime"
	"sync/atomic"
)

// ReadySignal is the single-bit flag shared between the timer interrupt and
// the main loop. At most one signal is pending: raising an already raised
// signal coalesces with it.
type ReadySignal struct {
	ready atomic.Bool
}

// Raise sets the signal. Safe to call from interrupt context.
func (s *ReadySignal) Raise() {
	s.ready.Store(true)
}

// Pending reports whether a signal is waiting to be taken
func (s *ReadySignal) Pending() bool {
	return s.ready.Load()
}

// Take clears a pending signal and reports whether there was one.
// Observe and clear happen in one atomic step.
func (s *ReadySignal) Take() bool {
	return s.ready.CompareAndSwap(true, false)
}

// Wait spins until the signal is raised. It does not clear it.
func (s *ReadySignal) Wait() {
	for !s.ready.Load() {
		// Let the async log worker run on cooperative schedulers
		runtime.Gosched()
	}
}
