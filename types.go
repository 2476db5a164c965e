package algoprof

import (
	"github.com/cwbudde/algo-prof/internal/cpu"
	"github.com/cwbudde/algo-prof/internal/profile"
	"github.com/cwbudde/algo-prof/internal/reptest"
)

// Profiler attributes ticks to nested zones. The canonical definition is in
// internal/profile.
type Profiler = profile.Profiler

// ProfilerConfig configures NewProfiler.
type ProfilerConfig = profile.Config

// Zone is an open profiler zone. Close it with End.
type Zone = profile.Zone

// ZoneRecord is the raw accumulator of one zone.
type ZoneRecord = profile.Record

// ZoneSummary is one line of a profiler report.
type ZoneSummary = profile.Summary

// Tester is a repetition test session. The canonical definition is in
// internal/reptest.
type Tester = reptest.Tester

// TesterOption configures NewTester.
type TesterOption = reptest.Option

// Mode is the state of a Tester.
type Mode = reptest.Mode

// Tester modes.
const (
	ModeTesting   = reptest.ModeTesting
	ModeCompleted = reptest.ModeCompleted
	ModeError     = reptest.ModeError
)

// Value is a repetition test sample, or the sum of Count samples.
type Value = reptest.Value

// Results are the min, max and total samples of a Tester.
type Results = reptest.Results

// Block is an open measurement block.
type Block = reptest.Block

// Reporter receives a Tester's progress.
type Reporter = reptest.Reporter

// Features describes the CPU the process runs on.
type Features = cpu.Features

// DefaultZoneCapacity is the zone table size used when none is configured.
const DefaultZoneCapacity = profile.DefaultCapacity
