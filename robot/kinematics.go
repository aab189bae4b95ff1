package robot

import (
	"errors"
	"fmt"
	"math"

	"turtlebot/core"
)

// maxSteps bounds a single move so the step count stays representable
// with either sign
const maxSteps = math.MaxInt64 / 2

// Geometry describes a two-wheel differential drive
type Geometry struct {
	WheelDiameterMM float64 // drive wheel diameter
	WheelBaseMM     float64 // distance between the wheel contact points
}

// Validate checks that the geometry can be used for conversions
func (g Geometry) Validate() error {
	if g.WheelDiameterMM <= 0 {
		return errors.New("wheel diameter must be positive")
	}
	if g.WheelBaseMM <= 0 {
		return errors.New("wheel base must be positive")
	}
	return nil
}

// StepsForDistance converts a straight-line distance into wheel steps at
// stepsPerRev pulses per wheel revolution. Distances that are not finite or
// do not fit in a step count fail with ErrInvalidArgument.
func (g Geometry) StepsForDistance(mm float64, stepsPerRev int) (int64, error) {
	circumference := math.Pi * g.WheelDiameterMM
	steps := math.Round(mm / circumference * float64(stepsPerRev))
	if math.IsNaN(steps) || math.Abs(steps) > maxSteps {
		return 0, fmt.Errorf("%v mm is out of range: %w", mm, core.ErrInvalidArgument)
	}
	return int64(steps), nil
}

// StepsForTurn converts an on-the-spot rotation into the steps each wheel
// travels in opposite directions
func (g Geometry) StepsForTurn(degrees float64, stepsPerRev int) (int64, error) {
	arc := math.Pi * g.WheelBaseMM * degrees / 360
	steps, err := g.StepsForDistance(arc, stepsPerRev)
	if err != nil {
		return 0, fmt.Errorf("%v degrees is out of range: %w", degrees, core.ErrInvalidArgument)
	}
	return steps, nil
}

// Pose is the commanded position of the turtle in mm and degrees
type Pose struct {
	X, Y    float64
	Heading float64 // degrees, counter-clockwise from +X
}

// forward returns the pose after driving mm along the heading
func (p Pose) forward(mm float64) Pose {
	rad := p.Heading * math.Pi / 180
	p.X += mm * math.Cos(rad)
	p.Y += mm * math.Sin(rad)
	return p
}

// turn returns the pose after rotating degrees counter-clockwise
func (p Pose) turn(degrees float64) Pose {
	p.Heading = math.Mod(p.Heading+degrees, 360)
	if p.Heading < 0 {
		p.Heading += 360
	}
	return p
}
