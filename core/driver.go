package core

// MicrostepMode selects the driver's step resolution. The value is the number
// of microsteps per full step.
type MicrostepMode uint8

const (
	MicrostepFull      MicrostepMode = 1
	MicrostepHalf      MicrostepMode = 2
	MicrostepQuarter   MicrostepMode = 4
	MicrostepEighth    MicrostepMode = 8
	MicrostepSixteenth MicrostepMode = 16
)

// modeSelect maps each resolution to the MS1/MS2/MS3 levels of an
// A4988-style driver.
var modeSelect = map[MicrostepMode][3]bool{
	MicrostepFull:      {false, false, false},
	MicrostepHalf:      {true, false, false},
	MicrostepQuarter:   {false, true, false},
	MicrostepEighth:    {true, true, false},
	MicrostepSixteenth: {true, true, true},
}

// Valid reports whether the driver supports the mode
func (m MicrostepMode) Valid() bool {
	_, ok := modeSelect[m]
	return ok
}

// MicrostepModeFor returns the mode with n microsteps per full step. Values
// outside the supported set fail with ErrInvalidConfiguration.
func MicrostepModeFor(n int) (MicrostepMode, error) {
	if n < 0 || n > 255 {
		return 0, ErrInvalidConfiguration
	}
	m := MicrostepMode(n)
	if !m.Valid() {
		return 0, ErrInvalidConfiguration
	}
	return m, nil
}

// String returns the resolution name
func (m MicrostepMode) String() string {
	switch m {
	case MicrostepFull:
		return "full"
	case MicrostepHalf:
		return "half"
	case MicrostepQuarter:
		return "quarter"
	case MicrostepEighth:
		return "eighth"
	case MicrostepSixteenth:
		return "sixteenth"
	default:
		return "invalid(" + itoa(int64(m)) + ")"
	}
}

// DriverPins are the lines of the driver chip shared by both motors
type DriverPins struct {
	Enable          Pin
	EnableActiveLow bool
	ModeSelect      [3]Pin // MS1, MS2, MS3
}

// DriverConfig owns the enable line and the microstep select lines of the
// driver chip. It is created once by the motion coordinator and shared
// read-mostly with both motors.
//
// Changing the mode or cutting enable while a motor is moving is not
// prevented here; the coordinator decides whether to allow it.
type DriverConfig struct {
	pins        DriverPins
	enabled     bool
	mode        MicrostepMode
	stepsPerRev int
}

// NewDriverConfig creates the driver layer, leaves the motors disabled and
// selects full stepping. Missing mode pins are treated as hard-wired.
func NewDriverConfig(pins DriverPins) (*DriverConfig, error) {
	d := &DriverConfig{pins: pins, stepsPerRev: 200}
	if err := d.SetEnable(false); err != nil {
		return nil, err
	}
	if err := d.SetMicrostepMode(MicrostepFull); err != nil {
		return nil, err
	}
	return d, nil
}

// SetStepsPerRevolution stores the motor's full steps per revolution. It has
// no hardware effect.
func (d *DriverConfig) SetStepsPerRevolution(n int) error {
	if n <= 0 {
		return ErrInvalidConfiguration
	}
	d.stepsPerRev = n
	return nil
}

// StepsPerRevolution returns the configured full steps per revolution
func (d *DriverConfig) StepsPerRevolution() int {
	return d.stepsPerRev
}

// MicrostepsPerRevolution returns the number of step pulses per revolution at
// the current microstep mode
func (d *DriverConfig) MicrostepsPerRevolution() int {
	return d.stepsPerRev * int(d.mode)
}

// SetEnable drives the shared enable line. Disabling cuts holding current to
// both motors at once without touching their motion state.
func (d *DriverConfig) SetEnable(on bool) error {
	if d.pins.Enable != nil {
		level := on
		if d.pins.EnableActiveLow {
			level = !on
		}
		if err := d.pins.Enable.Set(level); err != nil {
			return err
		}
	}
	d.enabled = on
	debug("driver: enable=" + boolStr(on))
	return nil
}

// Enabled reports the last enable state written
func (d *DriverConfig) Enabled() bool {
	return d.enabled
}

// SetMicrostepMode drives the three select lines. Unsupported modes fail with
// ErrInvalidConfiguration and leave the previous mode in place.
func (d *DriverConfig) SetMicrostepMode(mode MicrostepMode) error {
	levels, ok := modeSelect[mode]
	if !ok {
		return ErrInvalidConfiguration
	}
	for i, pin := range d.pins.ModeSelect {
		if pin == nil {
			continue
		}
		if err := pin.Set(levels[i]); err != nil {
			return err
		}
	}
	d.mode = mode
	debug("driver: microstep=" + mode.String())
	return nil
}

// MicrostepMode returns the active resolution
func (d *DriverConfig) MicrostepMode() MicrostepMode {
	return d.mode
}

func boolStr(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
