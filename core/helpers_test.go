package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingPin remembers every level written to it
type recordingPin struct {
	level  bool
	writes []bool
	fail   error
}

func (p *recordingPin) Set(high bool) error {
	if p.fail != nil {
		return p.fail
	}
	p.level = high
	p.writes = append(p.writes, high)
	return nil
}

// countingBackend counts step pulses
type countingBackend struct {
	steps int
	stops int
}

func (b *countingBackend) Step()        { b.steps++ }
func (b *countingBackend) Stop()        { b.stops++ }
func (b *countingBackend) Name() string { return "counting" }

var errPinBroken = errors.New("pin broken")

func newTestDriver(t *testing.T) (*DriverConfig, *recordingPin, [3]*recordingPin) {
	t.Helper()
	enable := &recordingPin{}
	ms := [3]*recordingPin{{}, {}, {}}
	d, err := NewDriverConfig(DriverPins{
		Enable:          enable,
		EnableActiveLow: true,
		ModeSelect:      [3]Pin{ms[0], ms[1], ms[2]},
	})
	require.NoError(t, err)
	return d, enable, ms
}

// phaseLog collects observer callbacks
type phaseLog struct {
	transitions [][2]Phase
}

func (l *phaseLog) observe(from, to Phase) {
	l.transitions = append(l.transitions, [2]Phase{from, to})
}

// sequence returns the visited phases starting with the first "from"
func (l *phaseLog) sequence() []Phase {
	if len(l.transitions) == 0 {
		return nil
	}
	seq := []Phase{l.transitions[0][0]}
	for _, tr := range l.transitions {
		seq = append(seq, tr[1])
	}
	return seq
}

// runToIdle ticks g until it reports idle and returns the tick count
func runToIdle(t *testing.T, g *PulseGenerator, maxTicks int) int {
	t.Helper()
	dt := g.TickPeriod()
	ticks := 0
	for g.IsBusy() {
		require.Less(t, ticks, maxTicks, "generator did not finish, phase=%s remaining=%d", g.Phase(), g.Remaining())
		g.Tick(dt)
		ticks++
	}
	return ticks
}
