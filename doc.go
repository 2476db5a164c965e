// Package algoprof measures code with the CPU's tick counter.
//
// It offers two instruments that share one timer:
//
//   - A zone profiler that attributes elapsed ticks to named, possibly nested
//     and recursive regions, reporting exclusive and inclusive time, hit
//     counts and bandwidth.
//   - A repetition tester that reruns an operation until its fastest sample
//     stops improving for a time budget, reporting min, max and average time,
//     bandwidth and page faults.
//
// Ticks come from RDTSC on amd64, CNTVCT_EL0 on arm64 and the Go monotonic
// clock elsewhere. Convert them with a frequency from EstimateFrequency.
//
// Profiling a function:
//
//	p := algoprof.NewProfiler(algoprof.ProfilerConfig{})
//	p.Start()
//
//	func parse(p *algoprof.Profiler, data []byte) {
//	    defer p.Begin("parse", 1, uint64(len(data))).End()
//	    ...
//	}
//
//	p.Stop()
//	p.WriteReport(os.Stdout, p.Elapsed())
//
// A nil *Profiler is valid and records nothing, so instrumentation can stay
// in place in production builds.
package algoprof
