package candidates

import (
	"io"
	"os"

	"github.com/cwbudde/algo-prof/internal/reptest"
)

// ReadFile reads the whole file with os.ReadFile, which allocates its own
// buffer every iteration.
func ReadFile(t *reptest.Tester, p *Params) {
	for t.Testing() {
		var (
			data []byte
			err  error
		)

		t.Time(func() {
			data, err = os.ReadFile(p.Filename)
		})

		if err != nil {
			t.Failf("read-file: %w", err)
			continue
		}

		t.CountBytes(uint64(len(data)))
	}
}

// ReadWhole reads the file into the destination buffer with one call.
func ReadWhole(t *reptest.Tester, p *Params) {
	for t.Testing() {
		f, err := os.Open(p.Filename)
		if err != nil {
			t.Failf("read-whole: %w", err)
			continue
		}

		dest := p.Buffer()

		b := t.Begin()
		n, err := io.ReadFull(f, dest)
		b.End()

		f.Close()

		if err != nil {
			t.Failf("read-whole: %w", err)
			continue
		}

		t.CountBytes(uint64(n))
	}
}

// ReadChunked reads the file ChunkSize bytes at a time with one measurement
// block per chunk.
func ReadChunked(t *reptest.Tester, p *Params) {
	chunk := p.ChunkSize
	if chunk <= 0 {
		chunk = p.Size
	}

	for t.Testing() {
		f, err := os.Open(p.Filename)
		if err != nil {
			t.Failf("read-chunked: %w", err)
			continue
		}

		dest := p.Buffer()

		for off := 0; off < len(dest); off += chunk {
			end := min(off+chunk, len(dest))

			b := t.Begin()
			n, err := io.ReadFull(f, dest[off:end])
			b.End()

			if err != nil {
				t.Failf("read-chunked at %d: %w", off, err)
				break
			}

			t.CountBytes(uint64(n))
		}

		f.Close()
	}
}
