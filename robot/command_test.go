package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turtlebot/core"
)

func TestInterpreterDrawsSquare(t *testing.T) {
	r := newRig(t)
	in := NewInterpreter(r.turtle)

	script := []string{
		"# square with 40 mm sides",
		"pd",
		"fd 40", "lt 90",
		"fd 40", "lt 90",
		"forward 40", "left 90",
		"fd 40  # last side", "lt 90",
		"pu",
	}
	for _, line := range script {
		reply, err := in.Exec(line)
		require.NoError(t, err, line)
		if line[0] == '#' {
			assert.Empty(t, reply)
			continue
		}
		assert.Equal(t, ReplyOK, reply, line)
		r.run(t)
	}

	p := r.turtle.Pose()
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
	assert.InDelta(t, 0, p.Heading, 1e-9)
	assert.Equal(t, 1, r.pen.downs)
	assert.Equal(t, 1, r.pen.ups)
}

func TestInterpreterStatus(t *testing.T) {
	r := newRig(t)
	in := NewInterpreter(r.turtle)

	assert.Equal(t, ReplyIdle, in.Reply("status"))
	assert.Equal(t, ReplyOK, in.Reply("fd 10"))
	assert.Equal(t, ReplyBusy, in.Reply("status"))
	r.run(t)
	assert.Equal(t, ReplyIdle, in.Reply("STATUS"))
}

func TestInterpreterBusyMove(t *testing.T) {
	r := newRig(t)
	in := NewInterpreter(r.turtle)

	require.Equal(t, ReplyOK, in.Reply("bk 10"))
	_, err := in.Exec("rt 45")
	assert.ErrorIs(t, err, core.ErrMotionAlreadyInProgress)
	assert.Equal(t, "error: rt: motion already in progress", in.Reply("rt 45"))

	assert.Equal(t, ReplyOK, in.Reply("stop"))
	assert.False(t, r.turtle.IsBusy())
}

func TestInterpreterSettings(t *testing.T) {
	r := newRig(t)
	in := NewInterpreter(r.turtle)

	assert.Equal(t, ReplyOK, in.Reply("speed 400"))
	assert.Equal(t, ReplyOK, in.Reply("accel '200'"))
	assert.Equal(t, 400.0, r.turtle.LeftMotor().Generator().TargetSpeed())
	assert.Equal(t, 200.0, r.turtle.RightMotor().Generator().Acceleration())

	assert.Equal(t, ReplyOK, in.Reply("microstep 4"))
	assert.Equal(t, core.MicrostepQuarter, r.turtle.Driver().MicrostepMode())

	assert.Equal(t, ReplyOK, in.Reply("enable"))
	assert.True(t, r.turtle.Driver().Enabled())
	assert.Equal(t, ReplyOK, in.Reply("disable"))
	assert.False(t, r.turtle.Driver().Enabled())
}

func TestInterpreterErrors(t *testing.T) {
	r := newRig(t)
	in := NewInterpreter(r.turtle)

	tests := []struct {
		line string
		err  error
	}{
		{"jump 3", ErrUnknownCommand},
		{"fd", core.ErrInvalidArgument},
		{"pu now", core.ErrInvalidArgument},
		{"fd ten", core.ErrInvalidArgument},
		{"speed -5", core.ErrInvalidArgument},
		{"microstep 3", core.ErrInvalidConfiguration},
		{"microstep 2.5", core.ErrInvalidConfiguration},
		{"microstep 272", core.ErrInvalidConfiguration},
		{"microstep 258", core.ErrInvalidConfiguration},
		{"microstep -240", core.ErrInvalidConfiguration},
		{"fd inf", core.ErrInvalidArgument},
		{"fd nan", core.ErrInvalidArgument},
		{"bk -Inf", core.ErrInvalidArgument},
		{"fd 1e30", core.ErrInvalidArgument},
		{"lt 1e300", core.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reply, err := in.Exec(tt.line)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, reply)
		})
	}

	assert.Equal(t, core.MicrostepSixteenth, r.turtle.Driver().MicrostepMode())
	assert.False(t, r.turtle.IsBusy())
	assert.Equal(t, Pose{}, r.turtle.Pose())

	_, err := in.Exec(`fd "10`)
	assert.Error(t, err)
	assert.Contains(t, in.Reply("jump"), "error: ")
}

func TestInterpreterBlankLine(t *testing.T) {
	in := NewInterpreter(newRig(t).turtle)

	for _, line := range []string{"", "   ", "# only a comment"} {
		reply, err := in.Exec(line)
		assert.NoError(t, err)
		assert.Empty(t, reply)
	}
}

func TestIsMotion(t *testing.T) {
	for _, w := range []string{"fd", "BK", "left", "rt"} {
		assert.True(t, IsMotion(w), w)
	}
	for _, w := range []string{"pu", "speed", "status", ""} {
		assert.False(t, IsMotion(w), w)
	}
}
