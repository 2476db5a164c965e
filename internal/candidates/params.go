// Package candidates holds the operations measured by the repetition tester.
//
// A candidate drives its own tester loop: it calls Testing, wraps the work
// it wants measured in blocks and reports the bytes it processed. Params
// carries the inputs and owns the destination buffer, which AllocPerIteration
// reallocates every iteration to expose page-fault cost.
package candidates

import (
	"fmt"

	"github.com/cwbudde/algo-prof/internal/reptest"
)

// AllocMode selects how the destination buffer is obtained.
type AllocMode int

const (
	// AllocNone reuses one buffer across iterations.
	AllocNone AllocMode = iota
	// AllocPerIteration allocates a fresh buffer every iteration.
	AllocPerIteration
)

// AllocModes lists every mode in report order.
var AllocModes = []AllocMode{AllocNone, AllocPerIteration}

// Prefix is prepended to candidate names in reports.
func (m AllocMode) Prefix() string {
	if m == AllocPerIteration {
		return "malloc + "
	}

	return ""
}

// String returns the --alloc flag value of m.
func (m AllocMode) String() string {
	switch m {
	case AllocNone:
		return "none"
	case AllocPerIteration:
		return "per-iteration"
	default:
		return fmt.Sprintf("AllocMode(%d)", int(m))
	}
}

// Params are the inputs of a candidate.
type Params struct {
	Alloc AllocMode
	// Size is the number of bytes every iteration must process.
	Size int
	// Filename is the input of the read candidates.
	Filename string
	// ChunkSize splits read-chunked into one block per chunk.
	ChunkSize int

	buf    []byte
	filled bool
}

// NewParams returns parameters for size bytes.
func NewParams(alloc AllocMode, size int, filename string) *Params {
	return &Params{Alloc: alloc, Size: size, Filename: filename}
}

// Buffer returns the destination buffer, allocating it on first use and on
// every call under AllocPerIteration.
func (p *Params) Buffer() []byte {
	if p.Alloc == AllocPerIteration || len(p.buf) != p.Size {
		p.buf = make([]byte, p.Size)
		p.filled = false
	}

	return p.buf
}

// Func is a candidate operation. It returns when t stops testing.
type Func func(t *reptest.Tester, p *Params)

// Candidate is a named operation.
type Candidate struct {
	Name string
	Run  Func
}
