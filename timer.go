package algoprof

import (
	"time"

	"github.com/cwbudde/algo-prof/internal/cpu"
)

// ReadTicks reads the CPU tick counter. Only differences are meaningful.
func ReadTicks() uint64 {
	return cpu.ReadTicks()
}

// TicksSince returns the ticks elapsed since start, tolerating wraparound.
func TicksSince(start uint64) uint64 {
	return cpu.TicksSince(start)
}

// EstimateFrequency measures the tick rate in Hz by busy-waiting on the OS
// timer for wait. It returns 0 if the OS timer did not advance.
func EstimateFrequency(wait time.Duration) uint64 {
	return cpu.EstimateFrequency(wait)
}

// TicksToSeconds converts ticks at freq Hz. ok is false when freq is 0.
func TicksToSeconds(ticks, freq uint64) (seconds float64, ok bool) {
	return cpu.TicksToSeconds(ticks, freq)
}

// DetectFeatures reports the CPU's architecture and SIMD extensions.
func DetectFeatures() Features {
	return cpu.DetectFeatures()
}
