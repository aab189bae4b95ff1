//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// On a hosted OS the timing source is a goroutine rather than an IRQ, so the
// critical section is a mutex. It is not reentrant.
var irqMu sync.Mutex

// disableInterrupts enters the critical section
func disableInterrupts() State {
	irqMu.Lock()
	return 0
}

// restoreInterrupts leaves the critical section
func restoreInterrupts(state State) {
	irqMu.Unlock()
}
