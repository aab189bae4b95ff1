package robot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"turtlebot/config"
	"turtlebot/core"
)

var errBroken = errors.New("broken")

type fakePin struct {
	name   string
	level  bool
	writes int
	fail   error
}

func (p *fakePin) Set(high bool) error {
	if p.fail != nil {
		return p.fail
	}
	p.level = high
	p.writes++
	return nil
}

type fakeBackend struct {
	name  string
	steps int
}

func (b *fakeBackend) Step()        { b.steps++ }
func (b *fakeBackend) Stop()        {}
func (b *fakeBackend) Name() string { return b.name }

// fakeHardware hands out named fake lines
type fakeHardware struct {
	pins     map[string]*fakePin
	backends map[string]*fakeBackend
	missing  string
}

func newFakeHardware() *fakeHardware {
	return &fakeHardware{pins: map[string]*fakePin{}, backends: map[string]*fakeBackend{}}
}

func (h *fakeHardware) Pin(name string) (core.Pin, error) {
	if name == h.missing {
		return nil, errBroken
	}
	p, ok := h.pins[name]
	if !ok {
		p = &fakePin{name: name}
		h.pins[name] = p
	}
	return p, nil
}

func (h *fakeHardware) StepBackend(name string, invertStep bool) (core.StepperBackend, error) {
	if name == h.missing {
		return nil, errBroken
	}
	b := &fakeBackend{name: name}
	h.backends[name] = b
	return b, nil
}

type fakePen struct {
	ups, downs int
	fail       error
}

func (p *fakePen) Up() error {
	if p.fail != nil {
		return p.fail
	}
	p.ups++
	return nil
}

func (p *fakePen) Down() error {
	if p.fail != nil {
		return p.fail
	}
	p.downs++
	return nil
}

type fakeIndicator struct {
	shown []Status
}

func (i *fakeIndicator) Show(s Status) { i.shown = append(i.shown, s) }

func (i *fakeIndicator) last() Status {
	if len(i.shown) == 0 {
		return Status(255)
	}
	return i.shown[len(i.shown)-1]
}

// rig is a turtle on fake hardware with a manually advanced clock
type rig struct {
	turtle    *Turtle
	hw        *fakeHardware
	sched     *core.Scheduler
	pen       *fakePen
	indicator *fakeIndicator
	now       uint32
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		hw:        newFakeHardware(),
		sched:     core.NewScheduler(),
		pen:       &fakePen{},
		indicator: &fakeIndicator{},
	}
	tu, err := Build(config.DefaultConfig(), r.hw, r.sched, WithPen(r.pen), WithIndicator(r.indicator))
	require.NoError(t, err)
	r.turtle = tu
	return r
}

// run dispatches scheduler ticks until the turtle is idle
func (r *rig) run(t *testing.T) {
	t.Helper()
	interval := core.TickInterval(0)
	for i := 0; r.turtle.IsBusy(); i++ {
		require.Less(t, i, 10000000, "turtle did not finish")
		r.now += interval
		r.sched.Dispatch(r.now)
	}
	r.turtle.Update()
}

func (r *rig) leftSteps() int  { return r.hw.backends["GPIO2"].steps }
func (r *rig) rightSteps() int { return r.hw.backends["GPIO4"].steps }

// mustSteps unwraps a step conversion that is known to be in range
func mustSteps(n int64, err error) int64 {
	if err != nil {
		panic(err)
	}
	return n
}
