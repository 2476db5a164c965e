package results

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Comparison is the change of one candidate between two runs.
type Comparison struct {
	Name string
	// MinTicksDiff is the percentage change of the minimum sample; positive
	// is slower.
	MinTicksDiff float64
	// BandwidthDiff is the percentage change of the minimum's bandwidth.
	BandwidthDiff float64
	Prev          Result
	Curr          Result
}

// Compare pairs the successful results present in both runs by name.
// Ticks are only compared when both runs used the same timer frequency;
// otherwise the seconds are.
func Compare(prev, curr Run) []Comparison {
	prevByName := make(map[string]Result, len(prev.Results))
	for _, r := range prev.Results {
		prevByName[r.Name] = r
	}

	var comparisons []Comparison

	for _, c := range curr.Results {
		p, ok := prevByName[c.Name]
		if !ok || p.Failed() || c.Failed() {
			continue
		}

		comp := Comparison{Name: c.Name, Prev: p, Curr: c}

		switch {
		case p.Frequency == c.Frequency && p.MinTicks > 0:
			comp.MinTicksDiff = percent(float64(p.MinTicks), float64(c.MinTicks))
		case p.MinSeconds > 0:
			comp.MinTicksDiff = percent(p.MinSeconds, c.MinSeconds)
		}

		if p.GBPerSec > 0 {
			comp.BandwidthDiff = percent(p.GBPerSec, c.GBPerSec)
		}

		comparisons = append(comparisons, comp)
	}

	return comparisons
}

func percent(prev, curr float64) float64 {
	return (curr - prev) / prev * 100
}

// Regressed reports whether the candidate got slower by more than
// threshold percent.
func (c Comparison) Regressed(threshold float64) bool {
	return c.MinTicksDiff > threshold
}

// String renders c as one line of a comparison report.
func (c Comparison) String() string {
	return fmt.Sprintf("%s (%s): %+.2f%% min, %.2f -> %.2f GB/s",
		c.Name, humanize.IBytes(c.Curr.TargetBytes), c.MinTicksDiff, c.Prev.GBPerSec, c.Curr.GBPerSec)
}

// Regressions returns the comparisons that regressed beyond threshold.
func Regressions(comparisons []Comparison, threshold float64) []Comparison {
	var out []Comparison

	for _, c := range comparisons {
		if c.Regressed(threshold) {
			out = append(out, c)
		}
	}

	return out
}
