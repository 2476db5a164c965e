package cpu

import "time"

var osEpoch = time.Now()

// OSTimerFrequency returns the frequency of ReadOSTimer in Hz.
func OSTimerFrequency() uint64 {
	return uint64(time.Second)
}

func readMonotonic() uint64 {
	return uint64(time.Since(osEpoch))
}
