//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package osmetrics

// ReadPageFaults is unavailable on this platform and always returns 0.
func ReadPageFaults() uint64 {
	return 0
}

// Available reports whether ReadPageFaults returns real data.
func Available() bool {
	return false
}
