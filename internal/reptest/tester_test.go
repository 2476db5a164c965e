package reptest

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-prof/internal/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now uint64
}

func (c *fakeClock) read() uint64 { return c.now }

func (c *fakeClock) advance(ticks uint64) { c.now += ticks }

type recordingReporter struct {
	minimums  []Value
	completed []Results
	failures  []error
}

func (r *recordingReporter) NewMinimum(min Value, _ uint64) { r.minimums = append(r.minimums, min) }

func (r *recordingReporter) Completed(results Results, _ uint64) {
	r.completed = append(r.completed, results)
}

func (r *recordingReporter) Failed(err error) { r.failures = append(r.failures, err) }

const testFreq = 1_000

func newTestTester(targetBytes uint64) (*Tester, *fakeClock, *recordingReporter) {
	clock := &fakeClock{now: 10_000}
	rep := &recordingReporter{}
	t := New(targetBytes, testFreq,
		WithClock(clock.read),
		WithPageFaultCounter(nil),
		WithReporter(rep),
	)

	return t, clock, rep
}

// runFixed runs a wave where every iteration takes ticks and processes
// bytes, and returns the number of iterations run.
func runFixed(t *Tester, clock *fakeClock, ticks, bytes uint64) int {
	n := 0
	for t.Testing() {
		b := t.Begin()
		clock.advance(ticks)
		b.End()
		t.CountBytes(bytes)
		n++
	}

	return n
}

func TestWaveCompletesAfterBudgetWithoutNewMinimum(t *testing.T) {
	tester, clock, rep := newTestTester(64)
	tester.NewWave(64, testFreq, 100*time.Millisecond) // 100 ticks

	n := runFixed(tester, clock, 30, 64)

	assert.Equal(t, ModeCompleted, tester.Mode())
	require.NoError(t, tester.Err())
	assert.Equal(t, uint64(n), tester.Results().Samples())
	// First sample sets the minimum, then the budget needs >100 ticks.
	assert.Equal(t, 5, n)
	require.Len(t, rep.minimums, 1)
	require.Len(t, rep.completed, 1)
	assert.Equal(t, uint64(30), rep.completed[0].Min.Ticks)
}

func TestNewMinimumResetsBudget(t *testing.T) {
	tester, clock, rep := newTestTester(8)
	tester.NewWave(8, testFreq, 100*time.Millisecond)

	i := uint64(0)
	for tester.Testing() {
		b := tester.Begin()
		clock.advance(60 - min(i, 10))
		b.End()
		tester.CountBytes(8)
		i++
	}

	// Eleven strictly faster samples keep the wave alive for 600 ticks, far
	// past the 100 tick budget. The plateau then needs three more.
	assert.Equal(t, ModeCompleted, tester.Mode())
	assert.Equal(t, uint64(14), i)
	assert.Len(t, rep.minimums, 11)

	r := tester.Results()
	assert.Equal(t, uint64(50), r.Min.Ticks)
	assert.Equal(t, uint64(60), r.Max.Ticks)
	assert.Equal(t, uint64(14), r.Samples())
}

func TestConvergesToPlateauFloor(t *testing.T) {
	tester, clock, rep := newTestTester(1)
	tester.NewWave(1, testFreq, 200*time.Millisecond)

	// Slowly improving samples, then jitter just above a floor of 40 ticks.
	durations := []uint64{90, 70, 75, 60, 55, 50, 45, 41, 40}
	i := 0
	plateau := 0
	for tester.Testing() {
		var d uint64
		if i < len(durations) {
			d = durations[i]
		} else {
			d = 40 + uint64(i%7)
			plateau++
		}

		b := tester.Begin()
		clock.advance(d)
		b.End()
		tester.CountBytes(1)
		i++
	}

	// The plateau adds 42+43+44+45+46 = 220 ticks, the first sum past the
	// 200 tick budget since the last minimum.
	assert.Equal(t, ModeCompleted, tester.Mode())
	assert.Equal(t, 14, i)
	assert.Equal(t, 5, plateau)

	require.Len(t, rep.minimums, 8)
	for k := 1; k < len(rep.minimums); k++ {
		assert.Less(t, rep.minimums[k].Ticks, rep.minimums[k-1].Ticks)
	}
	assert.Equal(t, uint64(40), rep.minimums[len(rep.minimums)-1].Ticks)

	r := tester.Results()
	assert.Equal(t, uint64(40), r.Min.Ticks)
	assert.Equal(t, uint64(90), r.Max.Ticks)
	assert.Equal(t, uint64(14), r.Samples())
	assert.Equal(t, uint64(746), r.Total.Ticks)
}

func TestReopenCompletedWave(t *testing.T) {
	tester, clock, rep := newTestTester(64)
	tester.NewWave(64, testFreq, 50*time.Millisecond)
	runFixed(tester, clock, 20, 64)
	require.Equal(t, ModeCompleted, tester.Mode())

	tester.NewWave(64, testFreq, 50*time.Millisecond)
	assert.Equal(t, ModeTesting, tester.Mode())

	runFixed(tester, clock, 10, 64)
	assert.Equal(t, ModeCompleted, tester.Mode())
	assert.Equal(t, 2, tester.Waves())
	assert.Equal(t, uint64(10), tester.Results().Min.Ticks)
	assert.Equal(t, uint64(20), tester.Results().Max.Ticks)
	assert.Len(t, rep.completed, 2)
	assert.Empty(t, rep.failures)
}

func TestReopenWithDifferentParameters(t *testing.T) {
	tests := []struct {
		name        string
		targetBytes uint64
		freq        uint64
		want        error
	}{
		{name: "target bytes", targetBytes: 32, freq: testFreq, want: ErrTargetBytesChanged},
		{name: "frequency", targetBytes: 64, freq: 2 * testFreq, want: ErrFrequencyChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester, clock, rep := newTestTester(64)
			tester.NewWave(64, testFreq, 10*time.Millisecond)
			runFixed(tester, clock, 5, 64)
			require.Equal(t, ModeCompleted, tester.Mode())

			tester.NewWave(tt.targetBytes, tt.freq, 10*time.Millisecond)

			assert.Equal(t, ModeError, tester.Mode())
			assert.ErrorIs(t, tester.Err(), tt.want)
			assert.False(t, tester.Testing())
			require.Len(t, rep.failures, 1)
		})
	}
}

func TestZeroFrequency(t *testing.T) {
	tester, _, _ := newTestTester(64)
	tester.NewWave(64, 0, time.Second)

	assert.ErrorIs(t, tester.Err(), ErrZeroFrequency)
	assert.False(t, tester.Testing())
}

func TestShortByteCountFailsOnNextTesting(t *testing.T) {
	tester, clock, rep := newTestTester(128)
	tester.NewWave(128, testFreq, time.Second)

	require.True(t, tester.Testing())

	b := tester.Begin()
	clock.advance(10)
	b.End()
	tester.CountBytes(100)

	assert.Equal(t, ModeTesting, tester.Mode())
	assert.False(t, tester.Testing())
	assert.Equal(t, ModeError, tester.Mode())
	assert.ErrorIs(t, tester.Err(), ErrByteCountMismatch)
	assert.Contains(t, tester.Err().Error(), "got 100, want 128")
	assert.Zero(t, tester.Results().Samples())
	assert.Len(t, rep.failures, 1)
}

func TestMismatchOnThirdIteration(t *testing.T) {
	tester, clock, _ := newTestTester(1024)
	tester.NewWave(1024, testFreq, time.Second)

	calls := 0
	for tester.Testing() {
		calls++

		b := tester.Begin()
		clock.advance(1)
		b.End()

		if calls == 3 {
			tester.CountBytes(512)
		} else {
			tester.CountBytes(1024)
		}
	}

	assert.Equal(t, 3, calls)
	assert.Equal(t, ModeError, tester.Mode())
	assert.ErrorIs(t, tester.Err(), ErrByteCountMismatch)
	assert.Equal(t, uint64(2), tester.Results().Samples())
}

func TestUnbalancedBlocks(t *testing.T) {
	tester, clock, _ := newTestTester(16)
	tester.NewWave(16, testFreq, time.Second)

	require.True(t, tester.Testing())
	tester.Begin()
	clock.advance(3)
	tester.CountBytes(16)

	assert.False(t, tester.Testing())
	assert.ErrorIs(t, tester.Err(), ErrUnbalancedBlocks)
}

func TestMultipleBlocksPerIteration(t *testing.T) {
	tester, clock, _ := newTestTester(16)
	tester.NewWave(16, testFreq, time.Second)

	require.True(t, tester.Testing())

	b := tester.Begin()
	clock.advance(10)
	b.End()
	clock.advance(1_000) // untimed setup
	tester.Time(func() { clock.advance(20) })
	tester.CountBytes(8)
	tester.CountBytes(8)

	require.True(t, tester.Testing())

	r := tester.Results()
	assert.Equal(t, uint64(30), r.Min.Ticks)
	assert.Equal(t, uint64(16), r.Min.Bytes)
	assert.Equal(t, uint64(1), r.Min.Count)
}

func TestPageFaultAccounting(t *testing.T) {
	clock := &fakeClock{}
	faults := uint64(500)
	tester := New(4096, testFreq,
		WithClock(clock.read),
		WithPageFaultCounter(func() uint64 { return faults }),
	)
	tester.NewWave(4096, testFreq, time.Second)

	require.True(t, tester.Testing())

	b := tester.Begin()
	clock.advance(10)
	faults += 3
	b.End()
	faults += 100 // outside the block
	tester.CountBytes(4096)

	require.True(t, tester.Testing())
	assert.Equal(t, uint64(3), tester.Results().Min.PageFaults)
}

func TestClockWraparound(t *testing.T) {
	clock := &fakeClock{now: math.MaxUint64 - 4}
	tester := New(1, testFreq, WithClock(clock.read), WithPageFaultCounter(nil))
	tester.NewWave(1, testFreq, time.Second)

	require.True(t, tester.Testing())

	b := tester.Begin()
	clock.advance(10)
	b.End()
	tester.CountBytes(1)

	require.True(t, tester.Testing())
	assert.Equal(t, uint64(10), tester.Results().Min.Ticks)
}

func TestErrorIsSticky(t *testing.T) {
	tester, clock, rep := newTestTester(8)
	tester.NewWave(8, testFreq, time.Second)

	first := errors.New("read failed")
	tester.Fail(first)
	tester.Failf("second: %d", 2)

	assert.Equal(t, ModeError, tester.Mode())
	assert.True(t, tester.HasError())
	assert.Equal(t, first, tester.Err())
	assert.Len(t, rep.failures, 1)

	tester.NewWave(8, testFreq, time.Second)
	assert.Equal(t, ModeError, tester.Mode())
	assert.Zero(t, runFixed(tester, clock, 1, 8))
}

func TestOneMillisecondCandidate(t *testing.T) {
	const freq = 1_000_000

	clock := &fakeClock{}
	tester := New(1024, freq, WithClock(clock.read), WithPageFaultCounter(nil))
	tester.NewWave(1024, freq, time.Second)

	runFixed(tester, clock, freq/1000, 1024)

	require.Equal(t, ModeCompleted, tester.Mode())

	r := tester.Results()
	ticks, bytes, _ := r.Total.Mean()
	assert.Equal(t, uint64(1000), r.Min.Ticks)
	assert.Equal(t, uint64(1000), r.Max.Ticks)
	assert.InDelta(t, 1000, ticks, 1e-9)
	assert.InDelta(t, 1024, bytes, 1e-9)
}

func TestSleepingCandidate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping real-time repetition test in short mode")
	}

	freq := cpu.EstimateFrequency(100 * time.Millisecond)
	if freq == 0 {
		t.Skip("tick frequency unavailable")
	}

	tester := New(1024, freq)
	tester.NewWave(1024, freq, time.Second)

	for tester.Testing() {
		b := tester.Begin()
		time.Sleep(time.Millisecond)
		b.End()
		tester.CountBytes(1024)
	}

	require.Equal(t, ModeCompleted, tester.Mode())
	require.NoError(t, tester.Err())

	r := tester.Results()
	avg, _, _ := r.Total.Mean()
	msTicks := float64(freq) / 1000

	assert.GreaterOrEqual(t, float64(r.Min.Ticks), 0.9*msTicks)
	assert.LessOrEqual(t, float64(r.Min.Ticks), avg)
	assert.LessOrEqual(t, avg, float64(r.Max.Ticks))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "testing", ModeTesting.String())
	assert.Equal(t, "completed", ModeCompleted.String())
	assert.Equal(t, "error", ModeError.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func BenchmarkBlock(b *testing.B) {
	tester := New(1, 1, WithPageFaultCounter(nil))

	for b.Loop() {
		tester.Begin().End()
	}
}
