//go:build amd64

package cpu

// readCycleCounter reads the CPU timestamp counter using RDTSC.
// Implemented in cycles_amd64.s
//
//go:noescape
func readCycleCounter() uint64

// getCounterFrequencyHz returns 0: the TSC has no architectural frequency
// register, so the rate has to be estimated against the OS timer.
func getCounterFrequencyHz() uint64 {
	return 0
}
