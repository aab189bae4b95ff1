// Package sim provides recording hardware so motion scripts can be run
// without a robot attached.
package sim

import (
	"sort"
	"sync"

	"turtlebot/core"
)

// Hardware records every line it hands out. It satisfies robot.Hardware.
type Hardware struct {
	mu       sync.Mutex
	lines    map[string]*Line
	counters map[string]*Counter
}

// NewHardware returns empty recording hardware
func NewHardware() *Hardware {
	return &Hardware{
		lines:    map[string]*Line{},
		counters: map[string]*Counter{},
	}
}

// Pin returns a recording output line
func (h *Hardware) Pin(name string) (core.Pin, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.lines[name]
	if !ok {
		l = &Line{name: name}
		h.lines[name] = l
	}
	return l, nil
}

// StepBackend returns a pulse counter
func (h *Hardware) StepBackend(name string, invertStep bool) (core.StepperBackend, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.counters[name]
	if !ok {
		c = &Counter{name: name}
		h.counters[name] = c
	}
	return c, nil
}

// Line returns a recorded line, or nil if it was never requested
func (h *Hardware) Line(name string) *Line {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lines[name]
}

// Pulses returns the pulses emitted on a step line
func (h *Hardware) Pulses(name string) uint64 {
	h.mu.Lock()
	c, ok := h.counters[name]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	return c.Pulses()
}

// StepLines returns the names of the step lines in order
func (h *Hardware) StepLines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(h.counters))
	for n := range h.counters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Line is a recording digital output
type Line struct {
	mu     sync.Mutex
	name   string
	level  bool
	writes int
}

// Set records the level
func (l *Line) Set(high bool) error {
	l.mu.Lock()
	l.level = high
	l.writes++
	l.mu.Unlock()
	return nil
}

// Level returns the last level written
func (l *Line) Level() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Writes returns the number of writes
func (l *Line) Writes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writes
}

// Counter counts step pulses
type Counter struct {
	mu     sync.Mutex
	name   string
	pulses uint64
	stops  int
}

func (c *Counter) Step() {
	c.mu.Lock()
	c.pulses++
	c.mu.Unlock()
}

func (c *Counter) Stop() {
	c.mu.Lock()
	c.stops++
	c.mu.Unlock()
}

func (c *Counter) Name() string { return "sim" }

// Pulses returns the pulses counted so far
func (c *Counter) Pulses() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pulses
}
