package cpu

import (
	"math"
	"math/bits"
	"time"
)

// ReadTicks reads the hardware tick counter (TSC on x86, CNTVCT on ARM).
// Only differences between two readings are meaningful.
// On platforms without assembly support, falls back to the Go monotonic clock.
func ReadTicks() uint64 {
	return readCycleCounter()
}

// TicksSince returns the ticks elapsed since start.
// The subtraction is modular, so a counter wrap still yields the right delta.
func TicksSince(start uint64) uint64 {
	return ReadTicks() - start
}

// NominalFrequency returns the architectural counter frequency in Hz when the
// hardware reports one (CNTFRQ_EL0 on ARM64, 1 GHz for the fallback clock).
// It returns 0 on AMD64, where the TSC rate can only be estimated.
func NominalFrequency() uint64 {
	return getCounterFrequencyHz()
}

// EstimateFrequency measures how many ticks elapse per second of OS timer time.
//
// It busy-waits on the OS timer for the given duration. The result is an
// approximation: turbo, throttling and cache effects mean two calls can
// disagree, so callers should estimate once per session and treat the value
// as a scaling constant. Returns 0 if the OS timer reported no elapsed time.
func EstimateFrequency(wait time.Duration) uint64 {
	osFreq := OSTimerFrequency()

	var osWait uint64
	if wait > 0 {
		osWait = scale(uint64(wait), osFreq, uint64(time.Second))
	}

	var osElapsed uint64

	cpuStart := ReadTicks()
	osStart := ReadOSTimer()

	for osElapsed < osWait {
		osElapsed = ReadOSTimer() - osStart
	}

	cpuElapsed := ReadTicks() - cpuStart

	if osElapsed == 0 {
		return 0
	}

	return scale(cpuElapsed, osFreq, osElapsed)
}

// TicksToSeconds converts a tick count to seconds at the given frequency.
// ok is false when freq is 0 and no conversion is possible.
func TicksToSeconds(ticks, freq uint64) (seconds float64, ok bool) {
	if freq == 0 {
		return 0, false
	}

	return float64(ticks) / float64(freq), true
}

// SecondsToTicks converts a duration to ticks at the given frequency.
func SecondsToTicks(d time.Duration, freq uint64) uint64 {
	if d <= 0 || freq == 0 {
		return 0
	}

	return scale(uint64(d), freq, uint64(time.Second))
}

// scale computes a*b/c with a 128-bit intermediate product.
func scale(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return math.MaxUint64
	}

	q, _ := bits.Div64(hi, lo, c)

	return q
}
