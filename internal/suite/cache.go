package suite

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-prof/internal/candidates"
	"github.com/cwbudde/algo-prof/internal/units"
	"github.com/dustin/go-humanize"
)

// AddCacheSweep adds one cache-region session per region. All of them share
// a single buffer of size bytes, so the sweep must run sequentially.
func (r *Runner) AddCacheSweep(size int, regions []int) []*Session {
	p := candidates.NewParams(candidates.AllocNone, size, "")

	out := make([]*Session, 0, len(regions))
	for _, region := range regions {
		c := candidates.Candidate{
			Name: "cache-region " + humanize.IBytes(uint64(region)),
			Run:  candidates.CacheRegion(region),
		}

		s := r.Add(c, p)
		s.Region = region
		out = append(out, s)
	}

	return out
}

// WriteCacheCSV writes the bandwidth of each session's fastest sample as
//
//	Region Size,GB/s
//	1024,42.5
//
// Sessions without samples or without a frequency are skipped.
func WriteCacheCSV(w io.Writer, sessions []*Session) error {
	if _, err := fmt.Fprintln(w, "Region Size,GB/s"); err != nil {
		return err
	}

	for _, s := range sessions {
		r := s.Tester.Results()
		freq := s.Tester.Frequency()

		if r.Samples() == 0 || freq == 0 || r.Min.Ticks == 0 {
			continue
		}

		seconds := float64(r.Min.Ticks) / float64(freq)

		if _, err := fmt.Fprintf(w, "%d,%g\n", s.Region, units.GigabytesPerSecond(r.Min.Bytes, seconds)); err != nil {
			return err
		}
	}

	return nil
}
