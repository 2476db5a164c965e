//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package osmetrics

import "golang.org/x/sys/unix"

// ReadPageFaults returns the number of minor plus major page faults the
// process has taken so far.
func ReadPageFaults() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}

	return uint64(ru.Minflt) + uint64(ru.Majflt)
}

// Available reports whether ReadPageFaults returns real data.
func Available() bool {
	var ru unix.Rusage
	return unix.Getrusage(unix.RUSAGE_SELF, &ru) == nil
}
