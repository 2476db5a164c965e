package cpu

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFeatures(t *testing.T) {
	f := DetectFeatures()
	assert.Equal(t, runtime.GOARCH, f.Architecture)

	if runtime.GOARCH == "amd64" {
		// Every amd64 CPU has SSE2.
		assert.True(t, f.HasSSE2)
	}
}

func TestFeaturesString(t *testing.T) {
	f := Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"}
	assert.Equal(t, "amd64 sse2 avx2", f.String())

	assert.Equal(t, "riscv64", Features{Architecture: "riscv64"}.String())
	assert.True(t, strings.HasPrefix(DetectFeatures().String(), runtime.GOARCH))
}
