package reptest

import "errors"

var (
	// ErrByteCountMismatch reports an iteration that processed a different
	// number of bytes than the wave's target.
	ErrByteCountMismatch = errors.New("reptest: processed byte count mismatch")

	// ErrTargetBytesChanged reports a new wave whose target differs from the
	// previous wave's.
	ErrTargetBytesChanged = errors.New("reptest: test byte count changed")

	// ErrFrequencyChanged reports a new wave whose tick frequency differs from
	// the previous wave's.
	ErrFrequencyChanged = errors.New("reptest: timer frequency changed")

	// ErrZeroFrequency reports a wave started without a tick frequency.
	ErrZeroFrequency = errors.New("reptest: unknown timer frequency")

	// ErrUnbalancedBlocks reports an iteration whose measurement blocks were
	// opened and closed a different number of times.
	ErrUnbalancedBlocks = errors.New("reptest: unbalanced measurement blocks")
)
