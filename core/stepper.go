package core

// StepperConfig describes one physical motor
type StepperConfig struct {
	Name string

	// Direction output line
	Dir Pin

	// InvertDir reflects mirror mounting; fixed for the motor's lifetime
	InvertDir bool

	// Step pulse output
	Backend StepperBackend

	// Pulse generator update rate in Hz (0 = DefaultTickRate)
	TickRate uint32
}

// StepperMotor pairs a pulse generator with a direction line so that
// "forwards" means the same thing on both mirror-mounted wheels.
type StepperMotor struct {
	name      string
	gen       *PulseGenerator
	dir       Pin
	invertDir bool
	driver    *DriverConfig

	forwards bool
}

// NewStepperMotor creates a motor on the shared driver. The generator is
// timed by sched, or by the caller through Generator().Tick when sched is nil.
func NewStepperMotor(cfg StepperConfig, driver *DriverConfig, sched *Scheduler) (*StepperMotor, error) {
	if cfg.Dir == nil || cfg.Backend == nil || driver == nil {
		return nil, ErrInvalidConfiguration
	}

	m := &StepperMotor{
		name:      cfg.Name,
		gen:       NewPulseGenerator(cfg.Backend, sched, cfg.TickRate),
		dir:       cfg.Dir,
		invertDir: cfg.InvertDir,
		driver:    driver,
	}
	if err := m.writeDirection(true); err != nil {
		return nil, err
	}
	return m, nil
}

// Name returns the motor's label
func (m *StepperMotor) Name() string {
	return m.name
}

// Driver returns the shared driver layer. Motors only read from it.
func (m *StepperMotor) Driver() *DriverConfig {
	return m.driver
}

// Generator returns the motor's pulse generator
func (m *StepperMotor) Generator() *PulseGenerator {
	return m.gen
}

// InvertDir reports the mounting inversion
func (m *StepperMotor) InvertDir() bool {
	return m.invertDir
}

// SetDirectionForwards drives the direction line to "forwards"
func (m *StepperMotor) SetDirectionForwards() error {
	return m.setDirection(true)
}

// SetDirectionBackwards drives the direction line to "backwards"
func (m *StepperMotor) SetDirectionBackwards() error {
	return m.setDirection(false)
}

// Forwards reports the last direction written
func (m *StepperMotor) Forwards() bool {
	return m.forwards
}

func (m *StepperMotor) setDirection(forwards bool) error {
	if m.gen.IsBusy() {
		return ErrMotionAlreadyInProgress
	}
	return m.writeDirection(forwards)
}

func (m *StepperMotor) writeDirection(forwards bool) error {
	if err := m.dir.Set(forwards != m.invertDir); err != nil {
		return err
	}
	m.forwards = forwards
	return nil
}

// SetAccelerationSPSPS sets the ramp rate in steps/s^2
func (m *StepperMotor) SetAccelerationSPSPS(spsps float64) error {
	return m.gen.SetAcceleration(spsps)
}

// SetTargetSpeedSPS sets the cruise speed in steps/s
func (m *StepperMotor) SetTargetSpeedSPS(sps float64) error {
	return m.gen.SetTargetSpeed(sps)
}

// Move sets the direction from the sign of steps and starts the profile.
// It fails with ErrMotionAlreadyInProgress while busy; nothing is queued.
func (m *StepperMotor) Move(steps int64) error {
	if m.gen.IsBusy() {
		return ErrMotionAlreadyInProgress
	}
	if steps == 0 {
		return nil
	}
	if err := m.writeDirection(steps > 0); err != nil {
		return err
	}
	return m.gen.Move(steps)
}

// IsBusy reports whether the motor is executing a move
func (m *StepperMotor) IsBusy() bool {
	return m.gen.IsBusy()
}

// Stop halts the motor immediately
func (m *StepperMotor) Stop() {
	m.gen.Stop()
}

// Position returns the signed step position
func (m *StepperMotor) Position() int64 {
	return m.gen.Position()
}
