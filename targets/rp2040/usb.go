//go:build rp2040

package main

import (
	"errors"
	"machine"
)

var errLineTooLong = errors.New("line too long")

// maxLine bounds a command line; longer input is discarded up to the
// next newline
const maxLine = 96

// InitUSB initializes USB serial communication
// TinyGo automatically sets up USB CDC-ACM on RP2040
func InitUSB() {
	// machine.Serial is USB CDC on RP2040
	machine.Serial.Configure(machine.UARTConfig{})
}

// lineReader assembles command lines from USB bytes without blocking
type lineReader struct {
	buf      [maxLine]byte
	n        int
	overflow bool
}

// Poll consumes the buffered bytes and reports whether a complete line is
// ready. An overlong line is reported as errLineTooLong.
func (r *lineReader) Poll() (string, bool, error) {
	for machine.Serial.Buffered() > 0 {
		c, err := machine.Serial.ReadByte()
		if err != nil {
			return "", false, err
		}
		switch {
		case c == '\n' || c == '\r':
			if r.n == 0 && !r.overflow {
				continue
			}
			line := string(r.buf[:r.n])
			overflow := r.overflow
			r.n = 0
			r.overflow = false
			if overflow {
				return "", true, errLineTooLong
			}
			return line, true, nil
		case r.n < len(r.buf):
			r.buf[r.n] = c
			r.n++
		default:
			r.overflow = true
		}
	}
	return "", false, nil
}

// writeLine sends s followed by CRLF
func writeLine(s string) {
	machine.Serial.Write([]byte(s))
	machine.Serial.Write([]byte("\r\n"))
}
