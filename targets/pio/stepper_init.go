//go:build rp2040

// Package pio drives step outputs from RP2040 PIO state machines.
package pio

import (
	"errors"
	"machine"
)

var errNoStateMachine = errors.New("pio: all state machines in use")

// slot is one state machine of one PIO block
type slot struct {
	block uint8
	sm    uint8
}

// claimed marks state machines that drive a step pin, owner records which
var (
	claimed [2][4]bool
	owner   [2][4]machine.Pin
)

// claimSlot returns the state machine driving pin. A pin keeps its state
// machine if the turtle is rebuilt; new pins fill PIO0 before PIO1.
func claimSlot(pin machine.Pin) (slot, error) {
	free, found := slot{}, false
	for block := uint8(0); block < 2; block++ {
		for sm := uint8(0); sm < 4; sm++ {
			switch {
			case claimed[block][sm] && owner[block][sm] == pin:
				return slot{block, sm}, nil
			case !claimed[block][sm] && !found:
				free, found = slot{block, sm}, true
			}
		}
	}
	if !found {
		return slot{}, errNoStateMachine
	}
	claimed[free.block][free.sm] = true
	owner[free.block][free.sm] = pin
	return free, nil
}
