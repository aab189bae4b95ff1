//go:build !wasm

package serial

import (
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// NativePort is a tarm/serial port to the firmware
type NativePort struct {
	port   *serial.Port
	device string
}

// Open opens the firmware's serial device
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errors.New("serial config is nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", cfg.Device)
	}

	return &NativePort{port: port, device: cfg.Device}, nil
}

func (p *NativePort) Read(b []byte) (int, error) {
	if p.port == nil {
		return 0, p.closed()
	}
	n, err := p.port.Read(b)
	if err != nil {
		return n, errors.Wrapf(err, "reading %s", p.device)
	}
	return n, nil
}

func (p *NativePort) Write(b []byte) (int, error) {
	if p.port == nil {
		return 0, p.closed()
	}
	n, err := p.port.Write(b)
	if err != nil {
		return n, errors.Wrapf(err, "writing %s", p.device)
	}
	return n, nil
}

// Close releases the device. Closing twice is a no-op.
func (p *NativePort) Close() error {
	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	return errors.Wrapf(err, "closing %s", p.device)
}

// Flush discards unread input so the next reply lines up with the next
// command
func (p *NativePort) Flush() error {
	if p.port == nil {
		return p.closed()
	}
	return errors.Wrapf(p.port.Flush(), "flushing %s", p.device)
}

func (p *NativePort) closed() error {
	return errors.Errorf("%s is closed", p.device)
}
