package core

// Timer frequency of the scheduler clock. The RP2040 hardware timer and the
// host ticker both count microseconds.
const (
	TimerFreq = 1000000 // 1MHz

	// DefaultTickRate is the pulse generator update rate in Hz.
	DefaultTickRate = 20000
)

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TickInterval returns the timer interval for an update rate in Hz.
// A zero rate selects DefaultTickRate.
func TickInterval(rate uint32) uint32 {
	if rate == 0 {
		rate = DefaultTickRate
	}
	interval := TimerFreq / rate
	if interval == 0 {
		interval = 1
	}
	return interval
}

// timeBefore reports whether a is earlier than b, tolerating uint32 wraparound
func timeBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
