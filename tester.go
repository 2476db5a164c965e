package algoprof

import (
	"io"

	"github.com/cwbudde/algo-prof/internal/reptest"
)

// NewTester creates a repetition tester expecting targetBytes per iteration
// at freq Hz. Start it with NewWave.
func NewTester(targetBytes, freq uint64, opts ...TesterOption) *Tester {
	return reptest.New(targetBytes, freq, opts...)
}

// WithClock replaces the tester's tick source.
func WithClock(clock func() uint64) TesterOption {
	return reptest.WithClock(clock)
}

// WithPageFaultCounter replaces the page-fault source; nil disables it.
func WithPageFaultCounter(read func() uint64) TesterOption {
	return reptest.WithPageFaultCounter(read)
}

// WithReporter sets where progress and results go.
func WithReporter(r Reporter) TesterOption {
	return reptest.WithReporter(r)
}

// WithNewMinimums toggles live reporting of new minimums.
func WithNewMinimums(enabled bool) TesterOption {
	return reptest.WithNewMinimums(enabled)
}

// NewTextReporter writes results to out and errors to errOut in the
// "Min: ticks (ms) GB/s PF: n (KB/fault)" format.
func NewTextReporter(out, errOut io.Writer) Reporter {
	return reptest.NewTextReporter(out, errOut)
}
