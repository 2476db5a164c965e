//go:build linux

package cpu

import "golang.org/x/sys/unix"

// ReadOSTimer reads CLOCK_MONOTONIC_RAW in nanoseconds.
// Unlike CLOCK_MONOTONIC it is not slewed by NTP, which keeps the
// frequency estimate from drifting with clock adjustments.
func ReadOSTimer() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		return readMonotonic()
	}

	return uint64(ts.Nano())
}
