package reptest

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-prof/internal/cpu"
	"github.com/cwbudde/algo-prof/internal/osmetrics"
)

// Mode is the state of a tester.
type Mode int

const (
	// ModeTesting means the current wave is still running.
	ModeTesting Mode = iota
	// ModeCompleted means the time budget elapsed without a new minimum.
	ModeCompleted
	// ModeError means an inconsistency was detected. It is terminal.
	ModeError
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeTesting:
		return "testing"
	case ModeCompleted:
		return "completed"
	case ModeError:
		return "error"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Tester is a repetition test session.
type Tester struct {
	targetBytes uint64
	freq        uint64
	tryFor      uint64
	waveStart   uint64
	waves       int

	mode Mode
	err  error

	opened      uint64
	closed      uint64
	accumulated Value
	results     Results

	clock       func() uint64
	faults      func() uint64
	reporter    Reporter
	newMinimums bool
}

// Option configures a Tester.
type Option func(*Tester)

// WithClock replaces the tick source. Defaults to cpu.ReadTicks.
func WithClock(clock func() uint64) Option {
	return func(t *Tester) {
		t.clock = clock
	}
}

// WithPageFaultCounter replaces the page-fault source. nil disables page-fault
// accounting. Defaults to osmetrics.ReadPageFaults where it is available.
func WithPageFaultCounter(read func() uint64) Option {
	return func(t *Tester) {
		t.faults = read
	}
}

// WithReporter sets the sink for progress, results and errors.
func WithReporter(r Reporter) Option {
	return func(t *Tester) {
		t.reporter = r
	}
}

// WithNewMinimums toggles reporting of every new minimum while testing.
func WithNewMinimums(enabled bool) Option {
	return func(t *Tester) {
		t.newMinimums = enabled
	}
}

// New creates a tester expecting targetBytes per iteration at the given
// tick frequency.
func New(targetBytes, freq uint64, opts ...Option) *Tester {
	t := &Tester{
		targetBytes: targetBytes,
		freq:        freq,
		mode:        ModeTesting,
		results:     newResults(),
		clock:       cpu.ReadTicks,
		reporter:    nopReporter{},
		newMinimums: true,
	}

	if osmetrics.Available() {
		t.faults = osmetrics.ReadPageFaults
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.reporter == nil {
		t.reporter = nopReporter{}
	}

	return t
}

// NewWave starts a wave with a fresh time budget of tryFor.
//
// Every wave after the first must keep the same target byte count and
// frequency: timings across different workloads or calibrations are not
// comparable, so a change moves the tester to ModeError. Reopening a
// completed tester puts it back into ModeTesting; an errored tester stays
// errored.
func (t *Tester) NewWave(targetBytes, freq uint64, tryFor time.Duration) {
	if t.mode == ModeError {
		return
	}

	t.mode = ModeTesting

	if t.waves > 0 {
		if targetBytes != t.targetBytes {
			t.Fail(fmt.Errorf("%w: %d to %d", ErrTargetBytesChanged, t.targetBytes, targetBytes))
			return
		}

		if freq != t.freq {
			t.Fail(fmt.Errorf("%w: %d to %d", ErrFrequencyChanged, t.freq, freq))
			return
		}
	}

	if freq == 0 {
		t.Fail(ErrZeroFrequency)
		return
	}

	t.targetBytes = targetBytes
	t.freq = freq
	t.tryFor = cpu.SecondsToTicks(tryFor, freq)
	t.waves++

	t.opened, t.closed = 0, 0
	t.accumulated = Value{}
	t.waveStart = t.clock()
}

// CountBytes adds n to the bytes processed by the current iteration.
func (t *Tester) CountBytes(n uint64) {
	t.accumulated.Bytes += n
}

// Begin opens a measurement block around the candidate operation.
// An iteration may consist of several blocks; their durations add up.
func (t *Tester) Begin() Block {
	t.opened++
	t.accumulated.PageFaults -= t.readFaults()
	t.accumulated.Ticks -= t.clock()

	return Block{t: t}
}

// Time runs fn inside a measurement block.
func (t *Tester) Time(fn func()) {
	defer t.Begin().End()
	fn()
}

// Block is an open measurement block.
type Block struct {
	t *Tester
}

// End closes the measurement block.
func (b Block) End() {
	t := b.t
	t.accumulated.Ticks += t.clock()
	t.accumulated.PageFaults += t.readFaults()
	t.closed++
}

// Testing folds the finished iteration into the results and reports whether
// the wave is still running. Callers loop on it.
func (t *Tester) Testing() bool {
	if t.mode != ModeTesting {
		return false
	}

	now := t.clock()

	if t.opened > 0 {
		switch {
		case t.opened != t.closed:
			t.Fail(fmt.Errorf("%w: %d opened, %d closed", ErrUnbalancedBlocks, t.opened, t.closed))
		case t.accumulated.Bytes != t.targetBytes:
			t.Fail(fmt.Errorf("%w: got %d, want %d", ErrByteCountMismatch, t.accumulated.Bytes, t.targetBytes))
		default:
			t.fold(now)
		}

		t.opened, t.closed = 0, 0
		t.accumulated = Value{}

		if t.mode != ModeTesting {
			return false
		}
	}

	if now-t.waveStart > t.tryFor {
		t.mode = ModeCompleted
		t.reporter.Completed(t.results, t.freq)
	}

	return t.mode == ModeTesting
}

func (t *Tester) fold(now uint64) {
	sample := t.accumulated
	sample.Count = 1

	r := &t.results
	r.Total = r.Total.Add(sample)

	if r.Max.Ticks < sample.Ticks {
		r.Max = sample
	}

	if r.Min.Ticks > sample.Ticks {
		r.Min = sample

		// A new minimum restarts the budget.
		t.waveStart = now

		if t.newMinimums {
			t.reporter.NewMinimum(r.Min, t.freq)
		}
	}
}

// Fail moves the tester to ModeError. Only the first error is kept.
func (t *Tester) Fail(err error) {
	if t.mode == ModeError {
		return
	}

	t.mode = ModeError
	t.err = err
	t.reporter.Failed(err)
}

// Failf is Fail with a formatted message.
func (t *Tester) Failf(format string, args ...any) {
	t.Fail(fmt.Errorf(format, args...))
}

// Mode returns the tester's state.
func (t *Tester) Mode() Mode { return t.mode }

// Err returns the error that moved the tester to ModeError, if any.
func (t *Tester) Err() error { return t.err }

// HasError reports whether the tester is in ModeError.
func (t *Tester) HasError() bool { return t.mode == ModeError }

// Results returns the aggregate samples so far.
func (t *Tester) Results() Results { return t.results }

// Frequency returns the tick frequency of the current wave.
func (t *Tester) Frequency() uint64 { return t.freq }

// TargetBytes returns the expected byte count per iteration.
func (t *Tester) TargetBytes() uint64 { return t.targetBytes }

// Waves returns the number of waves started.
func (t *Tester) Waves() int { return t.waves }

func (t *Tester) readFaults() uint64 {
	if t.faults == nil {
		return 0
	}

	return t.faults()
}
