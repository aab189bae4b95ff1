// Package serial talks to the turtle firmware's line interpreter over a
// USB CDC or UART link.
package serial

import (
	"io"
)

// Port is the byte link to the firmware. Tests substitute an in-memory pipe.
type Port interface {
	io.ReadWriteCloser

	// Flush drops input that arrived before the next command
	Flush() error
}

// Config selects the firmware's serial device
type Config struct {
	Device      string // e.g. /dev/ttyACM0
	Baud        int    // ignored by USB CDC
	ReadTimeout int    // milliseconds, 0 blocks until a reply arrives
}

// DefaultConfig returns a default configuration for the firmware console.
// Replies arrive only once a command has been parsed, so reads block.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 0,
	}
}
