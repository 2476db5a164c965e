package results

import (
	"fmt"

	"github.com/cwbudde/algo-prof/internal/profile"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "algoprof"

// Exporter publishes results as Prometheus gauges on its own registry.
type Exporter struct {
	registry *prometheus.Registry

	MinSeconds    *prometheus.GaugeVec
	Bandwidth     *prometheus.GaugeVec
	PageFaults    *prometheus.GaugeVec
	Samples       *prometheus.GaugeVec
	Failed        *prometheus.GaugeVec
	ZoneExclusive *prometheus.GaugeVec
	ZoneHits      *prometheus.GaugeVec
	Frequency     prometheus.Gauge
}

// NewExporter creates and registers all gauges.
func NewExporter() *Exporter {
	e := &Exporter{registry: prometheus.NewRegistry()}

	candidate := []string{"candidate"}

	e.MinSeconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "min_seconds",
			Help:      "Duration of the fastest sample in seconds",
		},
		candidate,
	)

	e.Bandwidth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bandwidth_gigabytes_per_second",
			Help:      "Bandwidth of the fastest sample in GB/s",
		},
		candidate,
	)

	e.PageFaults = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "page_faults",
			Help:      "Page faults during the fastest sample",
		},
		candidate,
	)

	e.Samples = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "samples",
			Help:      "Number of samples taken",
		},
		candidate,
	)

	e.Failed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "failed",
			Help:      "1 if the session ended in error",
		},
		candidate,
	)

	e.ZoneExclusive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zone_exclusive_ticks",
			Help:      "Exclusive ticks spent in a profiler zone",
		},
		[]string{"zone"},
	)

	e.ZoneHits = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zone_hits",
			Help:      "Number of times a profiler zone was entered",
		},
		[]string{"zone"},
	)

	e.Frequency = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timer_frequency_hertz",
			Help:      "Estimated tick counter frequency",
		},
	)

	e.registry.MustRegister(
		e.MinSeconds,
		e.Bandwidth,
		e.PageFaults,
		e.Samples,
		e.Failed,
		e.ZoneExclusive,
		e.ZoneHits,
		e.Frequency,
	)

	return e
}

// Registry returns the registry holding the gauges.
func (e *Exporter) Registry() *prometheus.Registry { return e.registry }

// Observe sets the gauges of one result.
func (e *Exporter) Observe(r Result) {
	if r.Failed() {
		e.Failed.WithLabelValues(r.Name).Set(1)
		return
	}

	e.Failed.WithLabelValues(r.Name).Set(0)
	e.Samples.WithLabelValues(r.Name).Set(float64(r.Samples))
	e.PageFaults.WithLabelValues(r.Name).Set(float64(r.PageFaults))

	if r.MinSeconds > 0 {
		e.MinSeconds.WithLabelValues(r.Name).Set(r.MinSeconds)
	}

	if r.GBPerSec > 0 {
		e.Bandwidth.WithLabelValues(r.Name).Set(r.GBPerSec)
	}

	if r.Frequency != 0 {
		e.Frequency.Set(float64(r.Frequency))
	}
}

// ObserveRun sets the gauges of every result in run.
func (e *Exporter) ObserveRun(run Run) {
	for _, r := range run.Results {
		e.Observe(r)
	}
}

// ObserveZones sets the zone gauges from a profiler report.
func (e *Exporter) ObserveZones(zones []profile.Summary) {
	for _, z := range zones {
		e.ZoneExclusive.WithLabelValues(z.Label).Set(float64(z.Exclusive))
		e.ZoneHits.WithLabelValues(z.Label).Set(float64(z.Hits))
	}
}

// WriteTextfile writes the gauges in the text exposition format, for the
// node_exporter textfile collector.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}
