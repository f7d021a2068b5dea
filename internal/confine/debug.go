package confine

import "sync/atomic"

// debugTicks controls whether verbose per-tick logs are emitted.
var debugTicks atomic.Bool

// SetDebugLogging enables/disables verbose state machine logs.
func SetDebugLogging(enabled bool) {
	debugTicks.Store(enabled)
}

// debugEnabled reports whether per-tick logs are enabled.
func debugEnabled() bool {
	return debugTicks.Load()
}
