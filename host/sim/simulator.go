package sim

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"turtlebot/config"
	"turtlebot/core"
	"turtlebot/host/ticker"
	"turtlebot/robot"
)

// DefaultMoveLimit bounds the virtual time a single command may take
const DefaultMoveLimit = 10 * time.Minute

// Simulator runs interpreter commands against recording hardware on a
// virtual clock, so a script finishes as fast as the host can compute it.
type Simulator struct {
	Hardware *Hardware
	Turtle   *robot.Turtle
	Plotter  *Plotter

	interp  *robot.Interpreter
	runner  *ticker.Runner
	limit   time.Duration
	elapsed time.Duration
	logger  *zap.SugaredLogger
}

// New builds a simulated turtle from cfg
func New(cfg *config.Config, logger *zap.SugaredLogger) (*Simulator, error) {
	hw := NewHardware()
	sched := core.NewScheduler()
	t, err := robot.Build(cfg, hw, sched)
	if err != nil {
		return nil, errors.Wrap(err, "building simulated turtle")
	}
	return &Simulator{
		Hardware: hw,
		Turtle:   t,
		Plotter:  NewPlotter(t),
		interp:   robot.NewInterpreter(t),
		runner:   ticker.New(sched, clock.NewMock(), 10*time.Millisecond, logger),
		limit:    DefaultMoveLimit,
		logger:   logger,
	}, nil
}

// Elapsed returns the virtual time spent moving
func (s *Simulator) Elapsed() time.Duration {
	return s.elapsed
}

// Exec runs one command line and simulates until the turtle is idle
func (s *Simulator) Exec(line string) (string, error) {
	reply, err := s.interp.Exec(line)
	if err != nil {
		return "", err
	}
	d := s.runner.Simulate(s.Turtle.IsBusy, s.limit)
	s.elapsed += d
	if s.Turtle.Update() {
		s.Turtle.Stop()
		return "", errors.Errorf("%q did not finish within %s", line, s.limit)
	}
	s.Plotter.Record(s.Turtle)
	if d > 0 {
		s.logger.Debugw("simulated move", "command", line, "duration", d)
	}
	return reply, nil
}

// RunScript executes every line of r, echoing each reply to out. It stops
// at the first failing line.
func (s *Simulator) RunScript(r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		reply, err := s.Exec(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		if reply != "" {
			fmt.Fprintf(out, "%s: %s\n", line, reply)
		}
	}
	return errors.Wrap(scanner.Err(), "reading script")
}
