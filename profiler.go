package algoprof

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-prof/internal/profile"
)

// DefaultProfiler backs the package-level profiling functions.
// It is nil, and therefore disabled, until EnableProfiling is called.
var DefaultProfiler *Profiler

// NewProfiler creates a profiler. Zero config fields take their defaults.
func NewProfiler(cfg ProfilerConfig) *Profiler {
	return profile.New(cfg)
}

// EnableProfiling installs a fresh DefaultProfiler and starts its session.
func EnableProfiling(cfg ProfilerConfig) *Profiler {
	DefaultProfiler = profile.New(cfg)
	DefaultProfiler.Start()

	return DefaultProfiler
}

// DisableProfiling removes the DefaultProfiler. Package-level zones become
// no-ops.
func DisableProfiling() {
	DefaultProfiler = nil
}

// Begin opens a zone on the DefaultProfiler.
func Begin(label string, index int, bytes uint64) Zone {
	return DefaultProfiler.Begin(label, index, bytes)
}

// BeginFunc opens a zone on the DefaultProfiler labeled with the caller's
// function name.
func BeginFunc(index int, bytes uint64) Zone {
	// Skip this wrapper so the label is our caller, not BeginFunc.
	return DefaultProfiler.BeginFuncSkip(index, bytes, 1)
}

// WriteProfile stops the DefaultProfiler's session and writes its report.
func WriteProfile(w io.Writer) error {
	if DefaultProfiler == nil {
		return nil
	}

	total := DefaultProfiler.Stop()

	if err := DefaultProfiler.WriteReport(w, total); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}
