package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// Disabled by default so the tick path never builds strings
	debugEnabled bool
)

// SetDebugWriter sets the platform-specific debug output function.
// Firmware points it at the USB serial; host tools bridge it to zap.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	state := disableInterrupts()
	debugPrintln = writer
	restoreInterrupts(state)
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	state := disableInterrupts()
	debugEnabled = enabled
	restoreInterrupts(state)
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return debugEnabled
}

// debugLocked writes msg when enabled. Caller must hold the critical section.
func debugLocked(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// debug writes msg when enabled
func debug(msg string) {
	state := disableInterrupts()
	debugLocked(msg)
	restoreInterrupts(state)
}
