package core

import "math"

// PhaseObserver is notified of every phase change. It runs inside the
// critical section and must not call back into the generator.
type PhaseObserver func(from, to Phase)

// PulseGenerator emits a trapezoidal step pulse train for one motor. It is
// advanced one fixed tick at a time, either by its own scheduler timer or by
// calling Tick directly.
type PulseGenerator struct {
	backend  StepperBackend
	sched    *Scheduler
	timer    Timer
	interval uint32
	dt       float64

	profile Profile

	// Applied at the next Move so a running ramp never jumps.
	accel float64
	speed float64

	direction int64
	position  int64
	pulses    uint64

	observer PhaseObserver
}

// NewPulseGenerator creates an idle generator. With a nil scheduler the
// caller drives Tick itself. A zero tickRate selects DefaultTickRate.
func NewPulseGenerator(backend StepperBackend, sched *Scheduler, tickRate uint32) *PulseGenerator {
	interval := TickInterval(tickRate)
	g := &PulseGenerator{
		backend:  backend,
		sched:    sched,
		interval: interval,
		dt:       float64(interval) / TimerFreq,
	}
	g.timer.Handler = g.timerEvent
	return g
}

// SetAcceleration sets the ramp rate in steps/s^2 for the next move
func (g *PulseGenerator) SetAcceleration(spsps float64) error {
	if spsps < 0 || math.IsNaN(spsps) || math.IsInf(spsps, 0) {
		return ErrInvalidArgument
	}
	state := disableInterrupts()
	g.accel = spsps
	restoreInterrupts(state)
	return nil
}

// SetTargetSpeed sets the cruise speed in steps/s for the next move
func (g *PulseGenerator) SetTargetSpeed(sps float64) error {
	if sps < 0 || math.IsNaN(sps) || math.IsInf(sps, 0) {
		return ErrInvalidArgument
	}
	state := disableInterrupts()
	g.speed = sps
	restoreInterrupts(state)
	return nil
}

// Acceleration returns the configured ramp rate
func (g *PulseGenerator) Acceleration() float64 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.accel
}

// TargetSpeed returns the configured cruise speed
func (g *PulseGenerator) TargetSpeed() float64 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.speed
}

// SetPhaseObserver installs a phase change callback (nil removes it)
func (g *PulseGenerator) SetPhaseObserver(fn PhaseObserver) {
	state := disableInterrupts()
	g.observer = fn
	restoreInterrupts(state)
}

// Move arms a profile of |steps| pulses and returns immediately. The sign
// only affects position accounting; the direction line belongs to the motor.
func (g *PulseGenerator) Move(steps int64) error {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if g.profile.Phase != PhaseIdle {
		return ErrMotionAlreadyInProgress
	}
	if steps == 0 {
		return nil
	}
	if steps == math.MinInt64 {
		return ErrInvalidArgument
	}

	g.direction = 1
	if steps < 0 {
		g.direction = -1
	}
	g.profile = NewProfile(g.accel, g.speed, steps)
	if debugEnabled {
		debugLocked("pulsegen: move steps=" + itoa(steps) +
			" accel=" + ftoa(g.accel) + " speed=" + ftoa(g.speed))
	}
	g.notify(PhaseIdle, g.profile.Phase)

	if g.sched != nil {
		// A move finished through Tick can leave the timer queued
		g.sched.deleteTimer(&g.timer)
		g.timer.WakeTime = g.sched.currentTime + g.interval
		g.sched.insertTimer(&g.timer)
	}
	return nil
}

// Stop halts immediately without a ramp and discards the remaining steps
func (g *PulseGenerator) Stop() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	prev := g.profile.Phase
	if prev == PhaseIdle {
		return
	}
	g.profile = Profile{Phase: PhaseIdle}
	g.direction = 0
	g.backend.Stop()
	if g.sched != nil {
		g.sched.deleteTimer(&g.timer)
	}
	if debugEnabled {
		debugLocked("pulsegen: hard stop from " + prev.String())
	}
	g.notify(prev, PhaseIdle)
}

// Tick advances the profile by dt seconds and emits any due pulses
func (g *PulseGenerator) Tick(dt float64) {
	state := disableInterrupts()
	g.tickLocked(dt)
	restoreInterrupts(state)
}

// timerEvent is the scheduler handler: one tick per fixed interval until the
// profile is idle again.
func (g *PulseGenerator) timerEvent(t *Timer) uint8 {
	g.tickLocked(g.dt)
	if g.profile.Phase == PhaseIdle {
		return SF_DONE
	}
	t.WakeTime += g.interval
	return SF_RESCHEDULE
}

func (g *PulseGenerator) tickLocked(dt float64) {
	prev := g.profile.Phase
	if prev == PhaseIdle {
		return
	}

	next, n := g.profile.Advance(dt)
	for i := int64(0); i < n; i++ {
		g.backend.Step()
	}
	g.position += n * g.direction
	g.pulses += uint64(n)
	g.profile = next

	if next.Phase != prev {
		g.notify(prev, next.Phase)
	}
	if next.Phase == PhaseStopped {
		g.profile.Phase = PhaseIdle
		g.direction = 0
		if debugEnabled {
			debugLocked("pulsegen: move complete position=" + itoa(g.position))
		}
		g.notify(PhaseStopped, PhaseIdle)
	}
}

func (g *PulseGenerator) notify(from, to Phase) {
	if g.observer != nil && from != to {
		g.observer(from, to)
	}
}

// IsBusy reports whether a move is in progress
func (g *PulseGenerator) IsBusy() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.profile.Phase != PhaseIdle
}

// Phase returns the current ramp phase
func (g *PulseGenerator) Phase() Phase {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.profile.Phase
}

// Speed returns the instantaneous speed in steps/s
func (g *PulseGenerator) Speed() float64 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.profile.Speed
}

// Remaining returns the steps left in the current move
func (g *PulseGenerator) Remaining() int64 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.profile.Remaining
}

// Position returns the signed count of pulses emitted since the last reset
func (g *PulseGenerator) Position() int64 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.position
}

// ResetPosition sets the current position to pos
func (g *PulseGenerator) ResetPosition(pos int64) {
	state := disableInterrupts()
	g.position = pos
	restoreInterrupts(state)
}

// Pulses returns the total number of pulses emitted
func (g *PulseGenerator) Pulses() uint64 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return g.pulses
}

// TickPeriod returns the length of one tick in seconds
func (g *PulseGenerator) TickPeriod() float64 {
	return g.dt
}

// Backend returns the step output backend
func (g *PulseGenerator) Backend() StepperBackend {
	return g.backend
}
