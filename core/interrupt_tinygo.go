//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts so the timer IRQ cannot observe a
// half-programmed compare channel. Returns the previous state.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
