package core

// StepperBackend defines the hardware abstraction for step pulse output.
// Implementations can use GPIO, PIO, or other methods.
type StepperBackend interface {
	// Step generates a single step pulse.
	// Must handle pulse width timing internally.
	// Should be fast (called from the timer handler).
	Step()

	// Stop immediately halts stepping and leaves the step line idle
	Stop()

	// Name returns backend implementation name
	Name() string
}

// PinBackend emits step pulses by toggling a Pin high then low
type PinBackend struct {
	pin    Pin
	invert bool
	errors uint32
}

// NewPinBackend creates a step backend on a plain digital output
func NewPinBackend(pin Pin, invertStep bool) *PinBackend {
	b := &PinBackend{pin: pin, invert: invertStep}
	b.Stop()
	return b
}

// Step drives one pulse
func (b *PinBackend) Step() {
	if b.pin.Set(!b.invert) != nil {
		b.errors++
	}
	if b.pin.Set(b.invert) != nil {
		b.errors++
	}
}

// Stop leaves the step line at its idle level
func (b *PinBackend) Stop() {
	if b.pin.Set(b.invert) != nil {
		b.errors++
	}
}

// Name returns the backend name
func (b *PinBackend) Name() string {
	return "GPIO"
}

// Errors returns how many pin writes failed since creation
func (b *PinBackend) Errors() uint32 {
	return b.errors
}
