package robot

import (
	"fmt"

	"turtlebot/config"
	"turtlebot/core"
)

// Hardware resolves configured line names on a particular target
type Hardware interface {
	// Pin returns an output line by name
	Pin(name string) (core.Pin, error)
	// StepBackend returns the pulse output for a step line
	StepBackend(name string, invertStep bool) (core.StepperBackend, error)
}

// Build wires a Turtle from cfg. Empty enable or mode pin names mean the
// line is hard-wired on the board.
func Build(cfg *config.Config, hw Hardware, sched *core.Scheduler, opts ...Option) (*Turtle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pins := core.DriverPins{EnableActiveLow: !cfg.Driver.EnableActiveHigh}
	if cfg.Driver.EnablePin != "" {
		p, err := hw.Pin(cfg.Driver.EnablePin)
		if err != nil {
			return nil, fmt.Errorf("enable pin: %w", err)
		}
		pins.Enable = p
	}
	for i, name := range cfg.Driver.ModePins {
		if name == "" {
			continue
		}
		p, err := hw.Pin(name)
		if err != nil {
			return nil, fmt.Errorf("mode pin %d: %w", i+1, err)
		}
		pins.ModeSelect[i] = p
	}

	driver, err := core.NewDriverConfig(pins)
	if err != nil {
		return nil, err
	}
	if err := driver.SetStepsPerRevolution(cfg.Driver.StepsPerRev); err != nil {
		return nil, err
	}
	mode, err := core.MicrostepModeFor(cfg.Driver.Microstep)
	if err != nil {
		return nil, fmt.Errorf("driver.microstep %d: %w", cfg.Driver.Microstep, err)
	}
	if err := driver.SetMicrostepMode(mode); err != nil {
		return nil, err
	}

	left, err := buildMotor("left", cfg.Left, cfg, hw, driver, sched)
	if err != nil {
		return nil, err
	}
	right, err := buildMotor("right", cfg.Right, cfg, hw, driver, sched)
	if err != nil {
		return nil, err
	}

	t, err := NewTurtle(driver, left, right, Geometry{
		WheelDiameterMM: cfg.Geometry.WheelDiameterMM,
		WheelBaseMM:     cfg.Geometry.WheelBaseMM,
	}, opts...)
	if err != nil {
		return nil, err
	}
	if err := t.SetAcceleration(cfg.Motion.Acceleration); err != nil {
		return nil, err
	}
	if err := t.SetSpeed(cfg.Motion.Speed); err != nil {
		return nil, err
	}
	return t, nil
}

func buildMotor(name string, m config.Motor, cfg *config.Config, hw Hardware, driver *core.DriverConfig, sched *core.Scheduler) (*core.StepperMotor, error) {
	dir, err := hw.Pin(m.DirPin)
	if err != nil {
		return nil, fmt.Errorf("%s dir pin: %w", name, err)
	}
	backend, err := hw.StepBackend(m.StepPin, m.InvertStep)
	if err != nil {
		return nil, fmt.Errorf("%s step pin: %w", name, err)
	}
	return core.NewStepperMotor(core.StepperConfig{
		Name:      name,
		Dir:       dir,
		InvertDir: m.InvertDir,
		Backend:   backend,
		TickRate:  cfg.TickRateHz,
	}, driver, sched)
}
