// Package units holds the byte and bandwidth conversions shared by the
// profiler and repetition tester reports.
package units

// Binary byte multiples used in every report.
const (
	Kilobyte = 1024.0
	Megabyte = 1024.0 * Kilobyte
	Gigabyte = 1024.0 * Megabyte
)

// Megabytes converts a byte count to MB.
func Megabytes(bytes uint64) float64 {
	return float64(bytes) / Megabyte
}

// GigabytesPerSecond returns the bandwidth of moving bytes in seconds.
// Returns 0 when seconds is not positive.
func GigabytesPerSecond(bytes uint64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}

	return float64(bytes) / (seconds * Gigabyte)
}

// KilobytesPerFault returns how many KB were processed per page fault.
// Returns 0 when no faults occurred.
func KilobytesPerFault(bytes, faults uint64) float64 {
	if faults == 0 {
		return 0
	}

	return float64(bytes) / (float64(faults) * Kilobyte)
}
