//go:build rp2040

package main

import (
	"machine"
	"time"

	"turtlebot/robot"
)

// blinkPeriodUS is the half-period of the error blink
const blinkPeriodUS = 250000

// ledIndicator lights the LED while moving and blinks it after an error
type ledIndicator struct {
	led    machine.Pin
	status robot.Status
	on     bool
	last   uint64
}

func newLEDIndicator(led machine.Pin) *ledIndicator {
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.Low()
	return &ledIndicator{led: led}
}

func (l *ledIndicator) Show(s robot.Status) {
	l.status = s
	l.set(s == robot.StatusBusy)
}

// Update advances the error blink; now is the hardware uptime in us
func (l *ledIndicator) Update(now uint64) {
	if l.status != robot.StatusError || now-l.last < blinkPeriodUS {
		return
	}
	l.last = now
	l.set(!l.on)
}

func (l *ledIndicator) set(on bool) {
	l.on = on
	l.led.Set(on)
}

// blinkForever signals a fatal startup error
func blinkForever(led machine.Pin) {
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
