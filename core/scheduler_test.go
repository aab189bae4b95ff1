package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerDispatchOrder(t *testing.T) {
	s := NewScheduler()
	var fired []uint32
	handler := func(tm *Timer) uint8 {
		fired = append(fired, tm.WakeTime)
		return SF_DONE
	}
	timers := []*Timer{
		{WakeTime: 30, Handler: handler},
		{WakeTime: 10, Handler: handler},
		{WakeTime: 20, Handler: handler},
	}
	for _, tm := range timers {
		s.Add(tm)
	}
	s.Add(timers[0])
	assert.Equal(t, 3, s.Pending())

	s.Dispatch(25)
	assert.Equal(t, []uint32{10, 20}, fired)
	assert.Equal(t, uint32(25), s.Now())

	s.Dispatch(30)
	assert.Equal(t, []uint32{10, 20, 30}, fired)
	assert.Zero(t, s.Pending())
}

func TestSchedulerReschedule(t *testing.T) {
	s := NewScheduler()
	count := 0
	tm := &Timer{WakeTime: 100, Handler: func(tm *Timer) uint8 {
		count++
		if count == 5 {
			return SF_DONE
		}
		tm.WakeTime += 100
		return SF_RESCHEDULE
	}}
	s.Add(tm)

	s.Dispatch(250)
	assert.Equal(t, 2, count)
	s.Dispatch(10000)
	assert.Equal(t, 5, count)
	assert.Zero(t, s.Pending())
}

func TestSchedulerRemove(t *testing.T) {
	s := NewScheduler()
	fired := false
	a := &Timer{WakeTime: 5, Handler: func(*Timer) uint8 { fired = true; return SF_DONE }}
	b := &Timer{WakeTime: 6, Handler: func(*Timer) uint8 { return SF_DONE }}
	s.Add(a)
	s.Add(b)

	s.Remove(a)
	s.Remove(a)
	assert.Equal(t, 1, s.Pending())
	s.Dispatch(10)
	assert.False(t, fired)
}

func TestSchedulerWraparound(t *testing.T) {
	s := NewScheduler()
	var order []string
	late := &Timer{WakeTime: 10, Handler: func(*Timer) uint8 { order = append(order, "late"); return SF_DONE }}
	early := &Timer{WakeTime: 0xFFFFFFF0, Handler: func(*Timer) uint8 { order = append(order, "early"); return SF_DONE }}
	s.Dispatch(0xFFFFFF00)
	s.Add(late)
	s.Add(early)

	s.Dispatch(0xFFFFFFF8)
	assert.Equal(t, []string{"early"}, order)
	s.Dispatch(20)
	assert.Equal(t, []string{"early", "late"}, order)
}

func TestTimerConversions(t *testing.T) {
	assert.Equal(t, uint32(1500), TimerFromUS(1500))
	assert.Equal(t, uint32(1500), TimerToUS(1500))
	assert.Equal(t, uint32(50), TickInterval(20000))
	assert.Equal(t, uint32(TimerFreq/DefaultTickRate), TickInterval(0))
	assert.Equal(t, uint32(1), TickInterval(5*TimerFreq))
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "-42", itoa(-42))
	assert.Equal(t, "1.500", ftoa(1.5))
	assert.Equal(t, "-0.050", ftoa(-0.05))
	assert.Equal(t, "3.000", ftoa(2.9999))
}

func TestPinBackend(t *testing.T) {
	pin := &recordingPin{}
	b := NewPinBackend(pin, false)
	b.Step()
	assert.Equal(t, []bool{false, true, false}, pin.writes)
	assert.Equal(t, "GPIO", b.Name())

	inv := &recordingPin{}
	NewPinBackend(inv, true).Step()
	assert.Equal(t, []bool{true, false, true}, inv.writes)

	broken := NewPinBackend(&recordingPin{fail: errPinBroken}, false)
	broken.Step()
	assert.Equal(t, uint32(3), broken.Errors())
}

func TestDebugWriter(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(nil)

	debug("hidden")
	assert.Empty(t, lines)

	SetDebugEnabled(true)
	defer SetDebugEnabled(false)
	assert.True(t, IsDebugEnabled())
	debug("shown")
	assert.Equal(t, []string{"shown"}, lines)
}
