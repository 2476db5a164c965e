package suite

import (
	"github.com/cwbudde/algo-prof/internal/logger"
	"github.com/cwbudde/algo-prof/internal/reptest"
)

// logReporter records wave boundaries in the structured log.
type logReporter struct {
	name string
}

func (l logReporter) NewMinimum(min reptest.Value, _ uint64) {
	logger.Debug("New minimum", "candidate", l.name, "ticks", min.Ticks, "page_faults", min.PageFaults)
}

func (l logReporter) Completed(r reptest.Results, freq uint64) {
	logger.Debug("Wave completed",
		"candidate", l.name,
		"samples", r.Samples(),
		"min_ticks", r.Min.Ticks,
		"max_ticks", r.Max.Ticks,
		"freq", freq,
	)
}

func (l logReporter) Failed(err error) {
	logger.Error("Repetition test failed", err, "candidate", l.name)
}
