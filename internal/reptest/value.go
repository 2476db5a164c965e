package reptest

import "math"

// Value is a sample, or a sum of Count samples.
type Value struct {
	Count      uint64
	Ticks      uint64
	Bytes      uint64
	PageFaults uint64
}

// Add returns the field-wise sum of v and o.
func (v Value) Add(o Value) Value {
	return Value{
		Count:      v.Count + o.Count,
		Ticks:      v.Ticks + o.Ticks,
		Bytes:      v.Bytes + o.Bytes,
		PageFaults: v.PageFaults + o.PageFaults,
	}
}

// Mean returns the per-sample ticks, bytes and page faults.
func (v Value) Mean() (ticks, bytes, pageFaults float64) {
	n := float64(max(v.Count, 1))

	return float64(v.Ticks) / n, float64(v.Bytes) / n, float64(v.PageFaults) / n
}

// Results are the aggregate samples of a tester.
type Results struct {
	Total Value
	Min   Value
	Max   Value
}

func newResults() Results {
	return Results{Min: Value{Ticks: math.MaxUint64}}
}

// Samples returns the number of folded samples.
func (r Results) Samples() uint64 {
	return r.Total.Count
}
