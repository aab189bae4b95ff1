package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverConfigStartsDisabledFullStep(t *testing.T) {
	d, enable, ms := newTestDriver(t)

	assert.False(t, d.Enabled())
	assert.True(t, enable.level, "active-low enable must idle high")
	assert.Equal(t, MicrostepFull, d.MicrostepMode())
	for _, p := range ms {
		assert.False(t, p.level)
	}
}

func TestDriverConfigEnable(t *testing.T) {
	d, enable, _ := newTestDriver(t)

	require.NoError(t, d.SetEnable(true))
	assert.True(t, d.Enabled())
	assert.False(t, enable.level)

	require.NoError(t, d.SetEnable(false))
	assert.False(t, d.Enabled())
	assert.True(t, enable.level)
}

func TestDriverConfigEnableActiveHigh(t *testing.T) {
	enable := &recordingPin{}
	d, err := NewDriverConfig(DriverPins{Enable: enable})
	require.NoError(t, err)

	require.NoError(t, d.SetEnable(true))
	assert.True(t, enable.level)
}

func TestDriverConfigMicrostepModes(t *testing.T) {
	d, _, ms := newTestDriver(t)

	cases := []struct {
		mode   MicrostepMode
		levels [3]bool
	}{
		{MicrostepFull, [3]bool{false, false, false}},
		{MicrostepHalf, [3]bool{true, false, false}},
		{MicrostepQuarter, [3]bool{false, true, false}},
		{MicrostepEighth, [3]bool{true, true, false}},
		{MicrostepSixteenth, [3]bool{true, true, true}},
	}
	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			require.NoError(t, d.SetMicrostepMode(tc.mode))
			assert.Equal(t, tc.mode, d.MicrostepMode())
			assert.Equal(t, tc.levels, [3]bool{ms[0].level, ms[1].level, ms[2].level})
		})
	}
}

func TestDriverConfigRejectsInvalidMode(t *testing.T) {
	d, _, ms := newTestDriver(t)
	require.NoError(t, d.SetMicrostepMode(MicrostepEighth))
	writes := len(ms[0].writes)

	err := d.SetMicrostepMode(MicrostepMode(3))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, MicrostepEighth, d.MicrostepMode())
	assert.Len(t, ms[0].writes, writes, "no select line may change")
	assert.False(t, MicrostepMode(32).Valid())
	assert.Equal(t, "invalid(3)", MicrostepMode(3).String())
}

func TestMicrostepModeFor(t *testing.T) {
	m, err := MicrostepModeFor(8)
	require.NoError(t, err)
	assert.Equal(t, MicrostepEighth, m)

	for _, n := range []int{0, 3, 32, 258, 272, -240} {
		_, err := MicrostepModeFor(n)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, n)
	}
}

func TestDriverConfigStepsPerRevolution(t *testing.T) {
	d, _, _ := newTestDriver(t)
	assert.Equal(t, 200, d.StepsPerRevolution())

	require.NoError(t, d.SetStepsPerRevolution(400))
	require.NoError(t, d.SetMicrostepMode(MicrostepQuarter))
	assert.Equal(t, 400, d.StepsPerRevolution())
	assert.Equal(t, 1600, d.MicrostepsPerRevolution())

	assert.ErrorIs(t, d.SetStepsPerRevolution(0), ErrInvalidConfiguration)
	assert.ErrorIs(t, d.SetStepsPerRevolution(-5), ErrInvalidConfiguration)
	assert.Equal(t, 400, d.StepsPerRevolution())
}

func TestDriverConfigPinFailure(t *testing.T) {
	enable := &recordingPin{fail: errPinBroken}
	_, err := NewDriverConfig(DriverPins{Enable: enable})
	assert.ErrorIs(t, err, errPinBroken)
}
