// Package config describes the wiring and motion defaults of a turtle robot.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"turtlebot/core"
)

// Driver is the shared microstepping driver wiring
type Driver struct {
	EnablePin        string    `json:"enable_pin"`
	EnableActiveHigh bool      `json:"enable_active_high"`
	ModePins         [3]string `json:"mode_pins"`
	Microstep        int       `json:"microstep"`
	StepsPerRev      int       `json:"steps_per_rev"`
}

// Motor is the wiring of one wheel motor
type Motor struct {
	StepPin    string `json:"step_pin"`
	DirPin     string `json:"dir_pin"`
	InvertDir  bool   `json:"invert_dir"`
	InvertStep bool   `json:"invert_step"`
}

// Geometry is the drive train size in millimetres
type Geometry struct {
	WheelDiameterMM float64 `json:"wheel_diameter_mm"`
	WheelBaseMM     float64 `json:"wheel_base_mm"`
}

// Motion holds the initial ramp settings in steps/s and steps/s^2
type Motion struct {
	Acceleration float64 `json:"acceleration"`
	Speed        float64 `json:"speed"`
}

// Pen is the pen-lift servo
type Pen struct {
	Pin       string `json:"pin"`
	UpAngle   int    `json:"up_angle"`
	DownAngle int    `json:"down_angle"`
}

// Config is the complete robot configuration
type Config struct {
	Driver     Driver   `json:"driver"`
	Left       Motor    `json:"left"`
	Right      Motor    `json:"right"`
	Geometry   Geometry `json:"geometry"`
	Motion     Motion   `json:"motion"`
	TickRateHz uint32   `json:"tick_rate_hz"`
	Pen        Pen      `json:"pen"`
	LEDPin     string   `json:"led_pin"`
}

// DefaultConfig returns the stock turtle wiring. The right motor is mounted
// mirrored, so its direction is inverted.
func DefaultConfig() *Config {
	return &Config{
		Driver: Driver{
			EnablePin:   "GPIO6",
			ModePins:    [3]string{"GPIO7", "GPIO8", "GPIO9"},
			Microstep:   int(core.MicrostepSixteenth),
			StepsPerRev: 200,
		},
		Left: Motor{
			StepPin: "GPIO2",
			DirPin:  "GPIO3",
		},
		Right: Motor{
			StepPin:   "GPIO4",
			DirPin:    "GPIO5",
			InvertDir: true,
		},
		Geometry: Geometry{
			WheelDiameterMM: 65,
			WheelBaseMM:     112,
		},
		Motion: Motion{
			Acceleration: 1600,
			Speed:        800,
		},
		TickRateHz: core.DefaultTickRate,
		Pen: Pen{
			Pin:       "GPIO16",
			UpAngle:   90,
			DownAngle: 0,
		},
	}
}

// LoadConfig parses JSON on top of DefaultConfig and validates the result
func LoadConfig(jsonData []byte) (*Config, error) {
	config := DefaultConfig()

	err := json.Unmarshal(jsonData, config)
	if err != nil {
		return nil, err
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFile reads and parses a JSON configuration file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(data)
}

// applyDefaults replaces explicit zero values with the stock ones
func applyDefaults(config *Config) {
	def := DefaultConfig()

	if config.Driver.Microstep == 0 {
		config.Driver.Microstep = def.Driver.Microstep
	}
	if config.Driver.StepsPerRev == 0 {
		config.Driver.StepsPerRev = def.Driver.StepsPerRev
	}
	if config.TickRateHz == 0 {
		config.TickRateHz = def.TickRateHz
	}
	if config.Motion.Speed == 0 {
		config.Motion.Speed = def.Motion.Speed
	}
}

// Validate checks the configuration for values the engine would reject
func (c *Config) Validate() error {
	if _, err := core.MicrostepModeFor(c.Driver.Microstep); err != nil {
		return invalid("driver.microstep %d is not 1, 2, 4, 8 or 16", c.Driver.Microstep)
	}
	if c.Driver.StepsPerRev <= 0 {
		return invalid("driver.steps_per_rev must be positive, got %d", c.Driver.StepsPerRev)
	}
	for _, m := range []struct {
		name  string
		motor Motor
	}{{"left", c.Left}, {"right", c.Right}} {
		if m.motor.StepPin == "" {
			return invalid("%s.step_pin is required", m.name)
		}
		if m.motor.DirPin == "" {
			return invalid("%s.dir_pin is required", m.name)
		}
	}
	if c.Geometry.WheelDiameterMM <= 0 {
		return invalid("geometry.wheel_diameter_mm must be positive")
	}
	if c.Geometry.WheelBaseMM <= 0 {
		return invalid("geometry.wheel_base_mm must be positive")
	}
	if c.Motion.Acceleration < 0 {
		return invalid("motion.acceleration must not be negative")
	}
	if c.Motion.Speed < 0 {
		return invalid("motion.speed must not be negative")
	}
	if c.Pen.UpAngle < 0 || c.Pen.UpAngle > 180 || c.Pen.DownAngle < 0 || c.Pen.DownAngle > 180 {
		return invalid("pen angles must be within 0..180")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("config: "+format+": %w", append(args, core.ErrInvalidConfiguration)...)
}
