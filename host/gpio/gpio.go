// Package gpio exposes Linux GPIO lines through periph.io as motion engine
// outputs.
package gpio

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"turtlebot/core"
)

// Lookup resolves a line name to a periph pin, returning nil if unknown
type Lookup func(name string) gpio.PinIO

// Board hands out output lines by name. Asking for the same name twice
// returns the same Pin.
type Board struct {
	mu     sync.Mutex
	lookup Lookup
	pins   map[string]*Pin
	logger *zap.SugaredLogger
}

// Open initialises the periph host drivers and returns a board backed by
// the global pin registry
func Open(logger *zap.SugaredLogger) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initialising periph host drivers")
	}
	return NewBoard(gpioreg.ByName, logger), nil
}

// NewBoard returns a board resolving names with lookup
func NewBoard(lookup Lookup, logger *zap.SugaredLogger) *Board {
	return &Board{
		lookup: lookup,
		pins:   map[string]*Pin{},
		logger: logger,
	}
}

// Pin returns the output line called name
func (b *Board) Pin(name string) (core.Pin, error) {
	return b.pin(name)
}

func (b *Board) pin(name string) (*Pin, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.pins[name]; ok {
		return p, nil
	}
	pin := b.lookup(name)
	if pin == nil {
		return nil, errors.Errorf("no gpio pin found for %q", name)
	}
	p := &Pin{name: name, pin: pin}
	b.pins[name] = p
	b.logger.Debugw("claimed gpio", "name", name, "pin", pin.String())
	return p, nil
}

// StepBackend returns a bit-banged step output on the line called name
func (b *Board) StepBackend(name string, invertStep bool) (core.StepperBackend, error) {
	p, err := b.pin(name)
	if err != nil {
		return nil, err
	}
	return core.NewPinBackend(p, invertStep), nil
}

// Names returns the claimed line names in order
func (b *Board) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.pins))
	for n := range b.pins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close halts every claimed line and reports all failures
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	for name, p := range b.pins {
		err = multierr.Append(err, errors.Wrapf(p.pin.Halt(), "halting %s", name))
	}
	b.pins = map[string]*Pin{}
	return err
}

// Pin is a digital output line
type Pin struct {
	name string
	pin  gpio.PinIO
}

// Name returns the configured line name
func (p *Pin) Name() string {
	return p.name
}

// Set drives the line high or low
func (p *Pin) Set(high bool) error {
	l := gpio.Low
	if high {
		l = gpio.High
	}
	return errors.Wrapf(p.pin.Out(l), "setting %s", p.name)
}
