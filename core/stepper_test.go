package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMotor(t *testing.T, invert bool) (*StepperMotor, *recordingPin, *countingBackend) {
	t.Helper()
	d, _, _ := newTestDriver(t)
	dir := &recordingPin{}
	backend := &countingBackend{}
	m, err := NewStepperMotor(StepperConfig{
		Name:      "test",
		Dir:       dir,
		InvertDir: invert,
		Backend:   backend,
	}, d, nil)
	require.NoError(t, err)
	require.NoError(t, m.SetAccelerationSPSPS(4000))
	require.NoError(t, m.SetTargetSpeedSPS(2000))
	return m, dir, backend
}

func TestStepperMotorRequiresPins(t *testing.T) {
	d, _, _ := newTestDriver(t)
	_, err := NewStepperMotor(StepperConfig{Backend: &countingBackend{}}, d, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewStepperMotor(StepperConfig{Dir: &recordingPin{}}, d, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewStepperMotor(StepperConfig{Dir: &recordingPin{}, Backend: &countingBackend{}}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestStepperMotorDirectionInversion(t *testing.T) {
	for _, invert := range []bool{false, true} {
		m, dir, _ := newTestMotor(t, invert)

		require.NoError(t, m.SetDirectionForwards())
		assert.Equal(t, !invert, dir.level)
		assert.True(t, m.Forwards())

		require.NoError(t, m.SetDirectionBackwards())
		assert.Equal(t, invert, dir.level)
		assert.False(t, m.Forwards())
	}
}

func TestStepperMotorMoveSetsOppositeDirections(t *testing.T) {
	for _, invert := range []bool{false, true} {
		m, dir, backend := newTestMotor(t, invert)

		require.NoError(t, m.Move(300))
		runToIdle(t, m.Generator(), 10*DefaultTickRate)
		afterForward := dir.level

		require.NoError(t, m.Move(-300))
		runToIdle(t, m.Generator(), 10*DefaultTickRate)
		afterBackward := dir.level

		assert.NotEqual(t, afterForward, afterBackward)
		assert.Equal(t, !invert, afterForward)
		assert.Equal(t, 600, backend.steps)
		assert.Zero(t, m.Position())
	}
}

func TestStepperMotorMoveWhileBusy(t *testing.T) {
	m, dir, _ := newTestMotor(t, false)

	require.NoError(t, m.Move(1000))
	m.Generator().Tick(m.Generator().TickPeriod())
	writes := len(dir.writes)

	assert.ErrorIs(t, m.Move(-5), ErrMotionAlreadyInProgress)
	assert.ErrorIs(t, m.SetDirectionBackwards(), ErrMotionAlreadyInProgress)
	assert.Len(t, dir.writes, writes, "direction must not change while busy")
	assert.Equal(t, int64(1000), m.Generator().Remaining())
	assert.True(t, m.IsBusy())

	m.Stop()
	assert.False(t, m.IsBusy())
	require.NoError(t, m.Move(-5))
}

func TestStepperMotorMoveZero(t *testing.T) {
	m, dir, _ := newTestMotor(t, true)
	writes := len(dir.writes)

	require.NoError(t, m.Move(0))
	assert.False(t, m.IsBusy())
	assert.Len(t, dir.writes, writes)
}

func TestStepperMotorSharesDriver(t *testing.T) {
	d, _, _ := newTestDriver(t)
	left, err := NewStepperMotor(StepperConfig{Name: "left", Dir: &recordingPin{}, Backend: &countingBackend{}}, d, nil)
	require.NoError(t, err)
	right, err := NewStepperMotor(StepperConfig{Name: "right", Dir: &recordingPin{}, Backend: &countingBackend{}, InvertDir: true}, d, nil)
	require.NoError(t, err)

	assert.Same(t, left.Driver(), right.Driver())
	assert.Equal(t, "left", left.Name())
	assert.True(t, right.InvertDir())
}
