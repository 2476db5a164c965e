//go:build !linux

package cpu

// ReadOSTimer reads the Go monotonic clock in nanoseconds.
func ReadOSTimer() uint64 {
	return readMonotonic()
}
