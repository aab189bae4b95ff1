//go:build rp2040

package main

import (
	"errors"
	"machine"
	"strconv"
	"strings"

	"turtlebot/core"
	"turtlebot/targets/pio"
)

var errBadPin = errors.New("unknown pin")

// parsePin accepts "GPIO17", "GP17", "gpio17" or "17"
func parsePin(name string) (machine.Pin, error) {
	n := strings.ToUpper(name)
	n = strings.TrimPrefix(n, "GPIO")
	n = strings.TrimPrefix(n, "GP")
	num, err := strconv.Atoi(n)
	if err != nil || num < 0 || num > 29 {
		return machine.NoPin, errBadPin
	}
	return machine.Pin(num), nil
}

// outputPin adapts a machine pin to the engine's output line
type outputPin machine.Pin

func (p outputPin) Set(high bool) error {
	machine.Pin(p).Set(high)
	return nil
}

// hardware resolves configured pin names to RP2040 outputs. Step lines are
// driven by PIO state machines.
type hardware struct{}

func (hardware) Pin(name string) (core.Pin, error) {
	pin, err := parsePin(name)
	if err != nil {
		return nil, err
	}
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return outputPin(pin), nil
}

func (hardware) StepBackend(name string, invertStep bool) (core.StepperBackend, error) {
	pin, err := parsePin(name)
	if err != nil {
		return nil, err
	}
	return pio.NewStepBackend(pin, invertStep)
}
