package candidates

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/cwbudde/algo-prof/internal/reptest"
)

// sink keeps the cache sweep's loads from being eliminated.
var sink uint64

// CacheRegion returns a candidate that reads Size bytes as 64-bit words, with
// every offset masked into the first region bytes of the buffer. Once the
// region fits a cache level, bandwidth jumps to that level's.
//
// Sessions for different regions may share one Params, so the buffer is
// filled once and not per session.
func CacheRegion(region int) Func {
	return func(t *reptest.Tester, p *Params) {
		if err := validateRegion(region, p.Size); err != nil {
			t.Failf("cache-region: %w", err)
			return
		}

		mask := region - 1

		for t.Testing() {
			dest := p.Buffer()
			if !p.filled {
				for i := range dest {
					dest[i] = byte(i)
				}
				p.filled = true
			}

			var sum uint64

			b := t.Begin()
			for off := 0; off < len(dest); off += 8 {
				sum += binary.NativeEndian.Uint64(dest[off&mask:])
			}
			b.End()

			sink += sum

			t.CountBytes(uint64(len(dest)))
		}
	}
}

func validateRegion(region, size int) error {
	if region < 8 || bits.OnesCount(uint(region)) != 1 {
		return fmt.Errorf("region size %d is not a power of two of at least 8 bytes", region)
	}

	if size%8 != 0 {
		return fmt.Errorf("buffer size %d is not a multiple of 8", size)
	}

	if region > size {
		return fmt.Errorf("region size %d exceeds buffer size %d", region, size)
	}

	return nil
}
