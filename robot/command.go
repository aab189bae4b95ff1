package robot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"turtlebot/core"
)

// Replies written by the interpreter
const (
	ReplyOK   = "ok"
	ReplyBusy = "busy"
	ReplyIdle = "idle"
)

// ErrUnknownCommand is returned for a command word the interpreter lacks
var ErrUnknownCommand = errors.New("unknown command")

type handler struct {
	args int
	run  func(t *Turtle, args []float64) (string, error)
}

// commandTable maps each command word and its alias to a handler
var commandTable = map[string]handler{}

func register(h handler, names ...string) {
	for _, n := range names {
		commandTable[n] = h
	}
}

func init() {
	register(handler{1, func(t *Turtle, a []float64) (string, error) { return ReplyOK, t.Forward(a[0]) }}, "fd", "forward")
	register(handler{1, func(t *Turtle, a []float64) (string, error) { return ReplyOK, t.Backward(a[0]) }}, "bk", "back", "backward")
	register(handler{1, func(t *Turtle, a []float64) (string, error) { return ReplyOK, t.Left(a[0]) }}, "lt", "left")
	register(handler{1, func(t *Turtle, a []float64) (string, error) { return ReplyOK, t.Right(a[0]) }}, "rt", "right")
	register(handler{0, func(t *Turtle, _ []float64) (string, error) { return ReplyOK, t.PenUp() }}, "pu", "penup")
	register(handler{0, func(t *Turtle, _ []float64) (string, error) { return ReplyOK, t.PenDown() }}, "pd", "pendown")
	register(handler{1, func(t *Turtle, a []float64) (string, error) { return ReplyOK, t.SetSpeed(a[0]) }}, "speed")
	register(handler{1, func(t *Turtle, a []float64) (string, error) { return ReplyOK, t.SetAcceleration(a[0]) }}, "accel")
	register(handler{1, func(t *Turtle, a []float64) (string, error) {
		if a[0] != math.Trunc(a[0]) || a[0] < 0 || a[0] > 255 {
			return "", fmt.Errorf("%v microsteps: %w", a[0], core.ErrInvalidConfiguration)
		}
		mode, err := core.MicrostepModeFor(int(a[0]))
		if err != nil {
			return "", fmt.Errorf("%v microsteps: %w", a[0], err)
		}
		return ReplyOK, t.SetMicrostepMode(mode)
	}}, "microstep")
	register(handler{0, func(t *Turtle, _ []float64) (string, error) { return ReplyOK, t.Enable() }}, "enable")
	register(handler{0, func(t *Turtle, _ []float64) (string, error) { return ReplyOK, t.Disable() }}, "disable")
	register(handler{0, func(t *Turtle, _ []float64) (string, error) {
		t.Stop()
		return ReplyOK, nil
	}}, "stop")
	register(handler{0, func(t *Turtle, _ []float64) (string, error) {
		if t.Update() {
			return ReplyBusy, nil
		}
		return ReplyIdle, nil
	}}, "status")
}

// IsMotion reports whether the command word starts a move
func IsMotion(word string) bool {
	switch strings.ToLower(word) {
	case "fd", "forward", "bk", "back", "backward", "lt", "left", "rt", "right":
		return true
	}
	return false
}

// Interpreter executes single-line turtle commands
type Interpreter struct {
	turtle *Turtle
}

// NewInterpreter creates an interpreter driving t
func NewInterpreter(t *Turtle) *Interpreter {
	return &Interpreter{turtle: t}
}

// Turtle returns the coordinator the interpreter drives
func (in *Interpreter) Turtle() *Turtle {
	return in.turtle
}

// Exec runs one line. Blank lines and comments return an empty reply.
func (in *Interpreter) Exec(line string) (string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", line, err)
	}
	if len(words) == 0 {
		return "", nil
	}

	name := strings.ToLower(words[0])
	h, ok := commandTable[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", words[0], ErrUnknownCommand)
	}
	if len(words)-1 != h.args {
		return "", fmt.Errorf("%s takes %d argument(s), got %d: %w", name, h.args, len(words)-1, core.ErrInvalidArgument)
	}

	args := make([]float64, h.args)
	for i := range args {
		v, err := strconv.ParseFloat(words[i+1], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%s: bad number %q: %w", name, words[i+1], core.ErrInvalidArgument)
		}
		args[i] = v
	}

	reply, err := h.run(in.turtle, args)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return reply, nil
}

// Reply runs one line and formats the outcome as a single reply line
func (in *Interpreter) Reply(line string) string {
	reply, err := in.Exec(line)
	if err != nil {
		return "error: " + err.Error()
	}
	return reply
}
