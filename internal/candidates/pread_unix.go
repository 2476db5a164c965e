//go:build unix

package candidates

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-prof/internal/reptest"
	"golang.org/x/sys/unix"
)

// ReadPread reads the file with positioned pread(2) calls on the raw
// descriptor, bypassing the os.File poller.
func ReadPread(t *reptest.Tester, p *Params) {
	for t.Testing() {
		f, err := os.Open(p.Filename)
		if err != nil {
			t.Failf("read-pread: %w", err)
			continue
		}

		dest := p.Buffer()
		fd := int(f.Fd())

		var total int

		b := t.Begin()
		for total < len(dest) {
			var n int

			n, err = unix.Pread(fd, dest[total:], int64(total))
			if err != nil {
				break
			}

			if n == 0 {
				err = io.ErrUnexpectedEOF
				break
			}

			total += n
		}
		b.End()

		f.Close()

		if err != nil {
			t.Fail(fmt.Errorf("read-pread at %d: %w", total, err))
			continue
		}

		t.CountBytes(uint64(total))
	}
}

func platformReads() []Candidate {
	return []Candidate{{Name: "read-pread", Run: ReadPread}}
}
