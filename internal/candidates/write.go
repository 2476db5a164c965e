package candidates

import "github.com/cwbudde/algo-prof/internal/reptest"

// WriteAllBytes stores to every byte of the buffer in a plain loop.
func WriteAllBytes(t *reptest.Tester, p *Params) {
	for t.Testing() {
		dest := p.Buffer()

		b := t.Begin()
		for i := range dest {
			dest[i] = byte(i)
		}
		b.End()

		t.CountBytes(uint64(len(dest)))
	}
}

// ClearAllBytes zeroes the buffer with the clear builtin, which the compiler
// lowers to the runtime's memclr.
func ClearAllBytes(t *reptest.Tester, p *Params) {
	for t.Testing() {
		dest := p.Buffer()

		b := t.Begin()
		clear(dest)
		b.End()

		t.CountBytes(uint64(len(dest)))
	}
}
