//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/servo"

	"turtlebot/config"
)

// pwmForPin returns the PWM slice that drives pin
// RP2040: GPIO pin N maps to slice (N >> 1) & 0x7
func pwmForPin(pin machine.Pin) servo.PWM {
	switch (pin >> 1) & 0x7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// servoPen lifts the pen with a hobby servo
type servoPen struct {
	servo    servo.Servo
	up, down int
}

func newServoPen(cfg config.Pen) (*servoPen, error) {
	pin, err := parsePin(cfg.Pin)
	if err != nil {
		return nil, err
	}
	s, err := servo.New(pwmForPin(pin), pin)
	if err != nil {
		return nil, err
	}
	return &servoPen{servo: s, up: cfg.UpAngle, down: cfg.DownAngle}, nil
}

func (p *servoPen) Up() error {
	return p.servo.SetAngle(p.up)
}

func (p *servoPen) Down() error {
	return p.servo.SetAngle(p.down)
}
