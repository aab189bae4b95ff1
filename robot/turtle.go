// Package robot coordinates the two wheel motors of a turtle-style drawing
// robot that share one microstepping driver.
package robot

import (
	"context"
	"fmt"
	"time"

	"turtlebot/core"
)

// Pen lifts and lowers the drawing pen
type Pen interface {
	Up() error
	Down() error
}

// Status is what the indicator shows
type Status uint8

const (
	StatusIdle Status = iota
	StatusBusy
	StatusError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusBusy:
		return "busy"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Indicator displays the turtle status, typically on an LED
type Indicator interface {
	Show(Status)
}

// DefaultPollInterval is how often Wait checks for motion completion
const DefaultPollInterval = 10 * time.Millisecond

// Turtle is the motion coordinator. It exclusively owns the driver layer and
// issues paired moves to the left and right wheel motors.
type Turtle struct {
	driver      *core.DriverConfig
	left, right *core.StepperMotor
	geometry    Geometry

	pen       Pen
	indicator Indicator
	poll      time.Duration

	pose    Pose
	penDown bool
	status  Status
}

// Option customises a Turtle
type Option func(*Turtle)

// WithPen attaches the pen-lift collaborator
func WithPen(p Pen) Option {
	return func(t *Turtle) { t.pen = p }
}

// WithIndicator attaches the status indicator collaborator
func WithIndicator(i Indicator) Option {
	return func(t *Turtle) { t.indicator = i }
}

// WithPollInterval overrides the Wait polling period
func WithPollInterval(d time.Duration) Option {
	return func(t *Turtle) {
		if d > 0 {
			t.poll = d
		}
	}
}

// NewTurtle assembles the coordinator. Both motors must share driver.
func NewTurtle(driver *core.DriverConfig, left, right *core.StepperMotor, geometry Geometry, opts ...Option) (*Turtle, error) {
	if driver == nil || left == nil || right == nil {
		return nil, fmt.Errorf("turtle needs a driver and two motors: %w", core.ErrInvalidConfiguration)
	}
	if left.Driver() != driver || right.Driver() != driver {
		return nil, fmt.Errorf("motors must share the turtle's driver: %w", core.ErrInvalidConfiguration)
	}
	if err := geometry.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, core.ErrInvalidConfiguration)
	}

	t := &Turtle{
		driver:   driver,
		left:     left,
		right:    right,
		geometry: geometry,
		poll:     DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.show(StatusIdle)
	return t, nil
}

// Driver returns the shared driver layer
func (t *Turtle) Driver() *core.DriverConfig {
	return t.driver
}

// LeftMotor returns the left wheel motor
func (t *Turtle) LeftMotor() *core.StepperMotor {
	return t.left
}

// RightMotor returns the right wheel motor
func (t *Turtle) RightMotor() *core.StepperMotor {
	return t.right
}

// Pose returns the commanded pose. A hard stop leaves it at the target of
// the interrupted move.
func (t *Turtle) Pose() Pose {
	return t.pose
}

// PenIsDown reports the last pen command
func (t *Turtle) PenIsDown() bool {
	return t.penDown
}

// SetSpeed sets the cruise speed of both wheels in steps/s
func (t *Turtle) SetSpeed(sps float64) error {
	if err := t.left.SetTargetSpeedSPS(sps); err != nil {
		return err
	}
	return t.right.SetTargetSpeedSPS(sps)
}

// SetAcceleration sets the ramp rate of both wheels in steps/s^2
func (t *Turtle) SetAcceleration(spsps float64) error {
	if err := t.left.SetAccelerationSPSPS(spsps); err != nil {
		return err
	}
	return t.right.SetAccelerationSPSPS(spsps)
}

// Forward drives straight ahead by mm
func (t *Turtle) Forward(mm float64) error {
	steps, err := t.geometry.StepsForDistance(mm, t.driver.MicrostepsPerRevolution())
	if err != nil {
		return err
	}
	if err := t.move(steps, steps); err != nil {
		return err
	}
	t.pose = t.pose.forward(mm)
	return nil
}

// Backward drives straight back by mm
func (t *Turtle) Backward(mm float64) error {
	return t.Forward(-mm)
}

// Left rotates counter-clockwise on the spot by degrees
func (t *Turtle) Left(degrees float64) error {
	steps, err := t.geometry.StepsForTurn(degrees, t.driver.MicrostepsPerRevolution())
	if err != nil {
		return err
	}
	if err := t.move(-steps, steps); err != nil {
		return err
	}
	t.pose = t.pose.turn(degrees)
	return nil
}

// Right rotates clockwise on the spot by degrees
func (t *Turtle) Right(degrees float64) error {
	return t.Left(-degrees)
}

// move starts both wheels. Both motors get identical rates and step counts,
// so straight travel relies on their independent timers staying in step.
func (t *Turtle) move(left, right int64) error {
	if t.IsBusy() {
		return core.ErrMotionAlreadyInProgress
	}
	if left == 0 && right == 0 {
		return nil
	}
	if !t.driver.Enabled() {
		if err := t.driver.SetEnable(true); err != nil {
			t.show(StatusError)
			return err
		}
	}
	if err := t.left.Move(left); err != nil {
		t.show(StatusError)
		return err
	}
	if err := t.right.Move(right); err != nil {
		t.left.Stop()
		t.show(StatusError)
		return err
	}
	t.show(StatusBusy)
	return nil
}

// IsBusy reports whether either wheel is moving
func (t *Turtle) IsBusy() bool {
	return t.left.IsBusy() || t.right.IsBusy()
}

// Update refreshes the indicator from the motion state and reports busy.
// Firmware main loops call it once per iteration.
func (t *Turtle) Update() bool {
	busy := t.IsBusy()
	if !busy && t.status == StatusBusy {
		t.show(StatusIdle)
	}
	return busy
}

// Wait polls until both wheels are idle or ctx is done. It never stops the
// motors; a cancelled caller decides whether to call Stop.
func (t *Turtle) Wait(ctx context.Context) error {
	if !t.Update() {
		return nil
	}
	ticker := time.NewTicker(t.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !t.Update() {
				return nil
			}
		}
	}
}

// Stop hard-stops both wheels without a ramp
func (t *Turtle) Stop() {
	t.left.Stop()
	t.right.Stop()
	t.show(StatusIdle)
}

// Enable powers the motors
func (t *Turtle) Enable() error {
	return t.driver.SetEnable(true)
}

// Disable cuts motor current. During a move this is an emergency stop of
// the physical rotation; the motion state is left as is.
func (t *Turtle) Disable() error {
	return t.driver.SetEnable(false)
}

// SetMicrostepMode changes the driver resolution. It is refused while
// either wheel is moving.
func (t *Turtle) SetMicrostepMode(mode core.MicrostepMode) error {
	if t.IsBusy() {
		return core.ErrMotionAlreadyInProgress
	}
	return t.driver.SetMicrostepMode(mode)
}

// PenUp lifts the pen
func (t *Turtle) PenUp() error {
	if t.pen != nil {
		if err := t.pen.Up(); err != nil {
			return err
		}
	}
	t.penDown = false
	return nil
}

// PenDown lowers the pen
func (t *Turtle) PenDown() error {
	if t.pen != nil {
		if err := t.pen.Down(); err != nil {
			return err
		}
	}
	t.penDown = true
	return nil
}

func (t *Turtle) show(s Status) {
	t.status = s
	if t.indicator != nil {
		t.indicator.Show(s)
	}
}
