// Package reptest implements an adaptive repetition tester.
//
// A Tester runs a candidate operation over and over for a time budget and
// keeps the min, max and total of the per-iteration samples. Every time a new
// minimum shows up, the budget restarts: a wave only ends once the budget
// elapses without the candidate getting any faster. This makes the reported
// minimum a stable floor rather than a function of scheduler noise.
//
// The candidate drives the loop itself:
//
//	t.NewWave(uint64(len(buf)), freq, 10*time.Second)
//	for t.Testing() {
//	    b := t.Begin()
//	    n, err := f.ReadAt(buf, 0)
//	    b.End()
//	    if err != nil {
//	        t.Fail(err)
//	        continue
//	    }
//	    t.CountBytes(uint64(n))
//	}
//
// Each iteration must report exactly the target byte count; anything else
// moves the tester to ModeError, since timings of unequal work are not
// comparable. ModeError is sticky: an errored Tester must be discarded.
//
// A Tester is not safe for concurrent use. Independent Testers may run on
// different goroutines.
package reptest
