//go:build !amd64 && !arm64

package cpu

import "time"

var genericEpoch = time.Now()

// readCycleCounter falls back to the Go monotonic clock on platforms without
// assembly support. Returns nanoseconds since package initialization.
func readCycleCounter() uint64 {
	return uint64(time.Since(genericEpoch))
}

// getCounterFrequencyHz returns 1 GHz: the fallback counter is in nanoseconds.
func getCounterFrequencyHz() uint64 {
	return uint64(time.Second)
}
