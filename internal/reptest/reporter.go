package reptest

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/algo-prof/internal/units"
)

// Reporter receives a tester's progress, results and errors.
type Reporter interface {
	// NewMinimum is called for every new fastest sample while testing.
	NewMinimum(min Value, freq uint64)
	// Completed is called when a wave's budget runs out.
	Completed(results Results, freq uint64)
	// Failed is called when the tester moves to ModeError.
	Failed(err error)
}

type nopReporter struct{}

func (nopReporter) NewMinimum(Value, uint64)  {}
func (nopReporter) Completed(Results, uint64) {}
func (nopReporter) Failed(error)              {}

// MultiReporter fans every call out to several reporters.
type MultiReporter []Reporter

// NewMinimum forwards min to every reporter.
func (m MultiReporter) NewMinimum(min Value, freq uint64) {
	for _, r := range m {
		r.NewMinimum(min, freq)
	}
}

// Completed forwards results to every reporter.
func (m MultiReporter) Completed(results Results, freq uint64) {
	for _, r := range m {
		r.Completed(results, freq)
	}
}

// Failed forwards err to every reporter.
func (m MultiReporter) Failed(err error) {
	for _, r := range m {
		r.Failed(err)
	}
}

// TextReporter writes human-readable results. New minimums overwrite each
// other on one line with a carriage return.
type TextReporter struct {
	out    io.Writer
	errOut io.Writer
}

// NewTextReporter writes results to out and errors to errOut.
func NewTextReporter(out, errOut io.Writer) *TextReporter {
	return &TextReporter{out: out, errOut: errOut}
}

const clearLine = 64

// NewMinimum overwrites the live minimum line.
func (r *TextReporter) NewMinimum(min Value, freq uint64) {
	line := FormatValue("Min", min, freq)
	fmt.Fprintf(r.out, "%s%s\r", line, strings.Repeat(" ", max(clearLine-len(line), 1)))
}

// Completed clears the live line and prints the Min, Max and Avg lines.
func (r *TextReporter) Completed(results Results, freq uint64) {
	fmt.Fprintf(r.out, "%s\r", strings.Repeat(" ", clearLine))
	fmt.Fprintln(r.out, FormatValue("Min", results.Min, freq))
	fmt.Fprintln(r.out, FormatValue("Max", results.Max, freq))
	fmt.Fprintln(r.out, FormatValue("Avg", results.Total, freq))
}

// Failed prints err to the error writer.
func (r *TextReporter) Failed(err error) {
	fmt.Fprintf(r.errOut, "ERROR: %v\n", err)
}

// FormatValue renders a sample (or the mean of a summed Value) as
//
//	Min: 123456 (0.041152ms) 24.123456 GB/s PF: 12.0000 (4.0000KB/fault)
//
// The real-time and bandwidth figures need a non-zero frequency; the
// page-fault figures are omitted when no faults were recorded.
func FormatValue(label string, v Value, freq uint64) string {
	ticks, bytes, faults := v.Mean()

	var b strings.Builder

	fmt.Fprintf(&b, "%s: %.0f", label, ticks)

	if freq != 0 {
		seconds := ticks / float64(freq)
		fmt.Fprintf(&b, " (%.6fms)", seconds*1000)

		if bytes > 0 && seconds > 0 {
			fmt.Fprintf(&b, " %.6f GB/s", bytes/(seconds*units.Gigabyte))
		}
	}

	if faults > 0 {
		fmt.Fprintf(&b, " PF: %.4f (%.4fKB/fault)", faults, units.KilobytesPerFault(v.Bytes, v.PageFaults))
	}

	return b.String()
}
