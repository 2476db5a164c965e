// Package results persists repetition test results and compares runs.
package results

import (
	"time"

	"github.com/cwbudde/algo-prof/internal/reptest"
	"github.com/cwbudde/algo-prof/internal/units"
)

// Result is the outcome of one tester session.
type Result struct {
	Name        string  `json:"name"`
	TargetBytes uint64  `json:"target_bytes"`
	Frequency   uint64  `json:"frequency_hz"`
	Samples     uint64  `json:"samples"`
	MinTicks    uint64  `json:"min_ticks"`
	MaxTicks    uint64  `json:"max_ticks"`
	AvgTicks    float64 `json:"avg_ticks"`
	MinSeconds  float64 `json:"min_seconds,omitempty"`
	// GBPerSec is the bandwidth of the minimum sample.
	GBPerSec   float64 `json:"gb_per_sec,omitempty"`
	PageFaults uint64  `json:"page_faults,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Run is a collection of results from a single execution.
type Run struct {
	Timestamp time.Time `json:"timestamp"`
	Host      string    `json:"host,omitempty"`
	Features  string    `json:"features,omitempty"`
	Results   []Result  `json:"results"`
}

// FromTester summarizes a tester session under name.
func FromTester(name string, t *reptest.Tester) Result {
	r := t.Results()

	res := Result{
		Name:        name,
		TargetBytes: t.TargetBytes(),
		Frequency:   t.Frequency(),
		Samples:     r.Samples(),
	}

	if err := t.Err(); err != nil {
		res.Error = err.Error()
	}

	if res.Samples == 0 {
		return res
	}

	res.MinTicks = r.Min.Ticks
	res.MaxTicks = r.Max.Ticks
	res.AvgTicks, _, _ = r.Total.Mean()
	res.PageFaults = r.Min.PageFaults

	if t.Frequency() != 0 {
		res.MinSeconds = float64(r.Min.Ticks) / float64(t.Frequency())
		res.GBPerSec = units.GigabytesPerSecond(r.Min.Bytes, res.MinSeconds)
	}

	return res
}

// Failed reports whether the session ended in error.
func (r Result) Failed() bool {
	return r.Error != ""
}
