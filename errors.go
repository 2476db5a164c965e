package algoprof

import (
	"github.com/cwbudde/algo-prof/internal/profile"
	"github.com/cwbudde/algo-prof/internal/reptest"
)

// Sentinel errors returned by the profiler.
var (
	// ErrCapacityExceeded is returned (or panicked with, from Begin) when a
	// zone index is outside the profiler's table.
	ErrCapacityExceeded = profile.ErrCapacityExceeded

	// ErrUnbalancedZone is panicked with when a zone is closed out of order
	// or twice.
	ErrUnbalancedZone = profile.ErrUnbalancedZone

	// ErrLabelConflict is returned when an index is registered under two
	// different labels.
	ErrLabelConflict = profile.ErrLabelConflict

	// ErrZonesActive is returned by Reset while zones are still open.
	ErrZonesActive = profile.ErrZonesActive
)

// Sentinel errors recorded by the repetition tester.
var (
	// ErrByteCountMismatch means an iteration processed a different byte
	// count than the wave's target.
	ErrByteCountMismatch = reptest.ErrByteCountMismatch

	// ErrTargetBytesChanged means a new wave changed the target byte count.
	ErrTargetBytesChanged = reptest.ErrTargetBytesChanged

	// ErrFrequencyChanged means a new wave changed the tick frequency.
	ErrFrequencyChanged = reptest.ErrFrequencyChanged

	// ErrZeroFrequency means a wave was started without a tick frequency.
	ErrZeroFrequency = reptest.ErrZeroFrequency

	// ErrUnbalancedBlocks means measurement blocks were not closed before
	// the next iteration.
	ErrUnbalancedBlocks = reptest.ErrUnbalancedBlocks
)
