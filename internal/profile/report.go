package profile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cwbudde/algo-prof/internal/cpu"
	"github.com/cwbudde/algo-prof/internal/units"
)

// Summary is one zone's line in a profile report.
type Summary struct {
	Label            string
	Index            int
	Hits             uint64
	Exclusive        uint64
	ExclusivePercent float64
	Inclusive        uint64
	InclusivePercent float64

	// HasChildren is set when nested zones ran inside this one, i.e. the
	// inclusive figure differs from the exclusive one.
	HasChildren bool

	Bytes     uint64
	Megabytes float64

	// GigabytesPerSecond is Bytes over the inclusive time. Only valid when
	// HasBandwidth is set (bytes attributed and a known frequency).
	GigabytesPerSecond float64
	HasBandwidth       bool
}

// Report summarizes every registered zone against total ticks.
func (p *Profiler) Report(total uint64) []Summary {
	zones := p.Zones()
	out := make([]Summary, 0, len(zones))

	var pct float64
	if total > 0 {
		pct = 100.0 / float64(total)
	}

	for _, z := range zones {
		s := Summary{
			Label:            z.Label,
			Index:            z.Index,
			Hits:             z.Hits,
			Exclusive:        z.Exclusive,
			ExclusivePercent: float64(z.Exclusive) * pct,
			Inclusive:        z.Inclusive,
			InclusivePercent: float64(z.Inclusive) * pct,
			HasChildren:      z.Inclusive != z.Exclusive,
			Bytes:            z.Bytes,
			Megabytes:        units.Megabytes(z.Bytes),
		}

		if z.Bytes != 0 {
			if seconds, ok := cpu.TicksToSeconds(z.Inclusive, p.Frequency()); ok && seconds > 0 {
				s.GigabytesPerSecond = units.GigabytesPerSecond(z.Bytes, seconds)
				s.HasBandwidth = true
			}
		}

		out = append(out, s)
	}

	return out
}

// WriteReport writes the zone breakdown as plain text:
//
//	Total time: 12.3456ms (timer freq 3000000000)
//	  parse[1]: 1200 (40.00%, 2400 80.00% w/children) 1.000MB at 0.41GB/s
func (p *Profiler) WriteReport(w io.Writer, total uint64) error {
	bw := bufio.NewWriter(w)

	if seconds, ok := cpu.TicksToSeconds(total, p.Frequency()); ok {
		fmt.Fprintf(bw, "Total time: %.4fms (timer freq %d)\n", seconds*1000, p.Frequency())
	} else {
		fmt.Fprintf(bw, "Total time: %d ticks\n", total)
	}

	for _, s := range p.Report(total) {
		fmt.Fprintf(bw, "  %s[%d]: %d (%.2f%%", s.Label, s.Hits, s.Exclusive, s.ExclusivePercent)

		if s.HasChildren {
			fmt.Fprintf(bw, ", %d %.2f%% w/children", s.Inclusive, s.InclusivePercent)
		}

		fmt.Fprint(bw, ")")

		if s.Bytes != 0 {
			fmt.Fprintf(bw, " %.3fMB", s.Megabytes)

			if s.HasBandwidth {
				fmt.Fprintf(bw, " at %.2fGB/s", s.GigabytesPerSecond)
			}
		}

		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
