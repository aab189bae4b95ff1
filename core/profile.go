package core

import "math"

// Phase is the ramp state of a pulse generator
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAccelerating
	PhaseCruising
	PhaseDecelerating
	PhaseStopped
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAccelerating:
		return "accelerating"
	case PhaseCruising:
		return "cruising"
	case PhaseDecelerating:
		return "decelerating"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Profile is the trapezoidal motion state of one pulse generator. Advance is
// pure, so ramp behaviour can be checked without a timing source.
type Profile struct {
	Acceleration float64 // steps/s^2
	TargetSpeed  float64 // steps/s
	Remaining    int64   // whole steps still to emit
	Speed        float64 // instantaneous speed, steps/s
	Travel       float64 // distance covered toward the next step, in steps
	Phase        Phase
}

// DecelerationDistance returns the distance in steps needed to stop from
// speed at the given deceleration: v^2 / 2a. Without a ramp the stop is
// immediate.
func DecelerationDistance(speed, accel float64) float64 {
	if accel <= 0 {
		return 0
	}
	return speed * speed / (2 * accel)
}

// NewProfile arms a move of steps (magnitude). A zero-length move stays Idle.
// Without acceleration the move starts directly at cruise speed.
func NewProfile(accel, targetSpeed float64, steps int64) Profile {
	switch {
	case steps == math.MinInt64:
		steps = math.MaxInt64
	case steps < 0:
		steps = -steps
	}
	p := Profile{
		Acceleration: accel,
		TargetSpeed:  targetSpeed,
		Remaining:    steps,
	}
	switch {
	case steps == 0:
		p.Phase = PhaseIdle
	case accel <= 0:
		p.Phase = PhaseCruising
		p.Speed = targetSpeed
	default:
		p.Phase = PhaseAccelerating
	}
	return p
}

// Distance returns the remaining travel in steps, including the partially
// covered step.
func (p Profile) Distance() float64 {
	d := float64(p.Remaining) - p.Travel
	if d < 0 {
		return 0
	}
	return d
}

// Active reports whether the profile still has a ramp phase to run
func (p Profile) Active() bool {
	switch p.Phase {
	case PhaseAccelerating, PhaseCruising, PhaseDecelerating:
		return true
	}
	return false
}

// Advance moves the profile forward by dt seconds and returns the new state
// together with the number of step pulses that fell due. Zero speed accrues
// no distance, so a pulse is simply not due yet.
func (p Profile) Advance(dt float64) (Profile, int64) {
	if !p.Active() || dt <= 0 {
		return p, 0
	}

	switch p.Phase {
	case PhaseAccelerating:
		v := p.Speed + p.Acceleration*dt
		if v > p.TargetSpeed {
			v = p.TargetSpeed
		}
		p.Travel += (p.Speed + v) / 2 * dt
		p.Speed = v
	case PhaseCruising:
		p.Speed = p.TargetSpeed
		p.Travel += p.Speed * dt
	case PhaseDecelerating:
		p.Travel += p.Speed * dt
	}

	steps := int64(p.Travel)
	if steps > p.Remaining {
		steps = p.Remaining
	}
	p.Remaining -= steps
	p.Travel -= float64(steps)

	if p.Remaining == 0 {
		p.Speed = 0
		p.Travel = 0
		p.Phase = PhaseStopped
		return p, steps
	}

	d := p.Distance()
	switch p.Phase {
	case PhaseAccelerating:
		if p.Acceleration > 0 && p.Speed > 0 && d <= DecelerationDistance(p.Speed, p.Acceleration) {
			// Too short to reach cruise: the ramp turns over at the midpoint.
			p.Phase = PhaseDecelerating
		} else if p.Speed >= p.TargetSpeed {
			p.Phase = PhaseCruising
		}
	case PhaseCruising:
		if p.Acceleration > 0 && p.Speed > 0 && d <= DecelerationDistance(p.Speed, p.Acceleration) {
			p.Phase = PhaseDecelerating
		}
	}

	if p.Phase == PhaseDecelerating {
		// Speed that brings the motor to rest exactly at the last step; it
		// falls at rate a as the remaining distance shrinks.
		if v := math.Sqrt(2 * p.Acceleration * d); v < p.Speed {
			p.Speed = v
		}
	}
	return p, steps
}
