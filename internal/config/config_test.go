package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "algoprof.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Decode(New())
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, 10*time.Second, cfg.TryFor)
	assert.Equal(t, 100*time.Millisecond, cfg.CalibrationWait)
	assert.Equal(t, 256, cfg.ZoneCapacity)
	assert.True(t, cfg.PrintNewMinimums)
	assert.True(t, cfg.PageFaults)
	assert.Equal(t, 1, cfg.Rounds)
	assert.Equal(t, ByteSize(64<<10), cfg.ChunkSize)
	assert.Equal(t, ByteSize(64<<20), cfg.Cache.Size)
	assert.Equal(t, ByteSize(64<<20), cfg.Cache.MaxRegion)
	assert.Equal(t, ".algoprof/results.json", cfg.Results.File)
	assert.InDelta(t, 5.0, cfg.Results.Threshold, 0)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
environment: production
try_for: 2s
chunk_size: 4KiB
rounds: 0
cache:
  size: 1MiB
  min_region: 4KiB
  max_region: 16KiB
results:
  save: true
  threshold: 2.5
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, 2*time.Second, cfg.TryFor)
	assert.Equal(t, ByteSize(4096), cfg.ChunkSize)
	assert.Zero(t, cfg.Rounds)
	assert.Equal(t, ByteSize(1<<20), cfg.Cache.Size)
	assert.True(t, cfg.Results.Save)
	assert.InDelta(t, 2.5, cfg.Results.Threshold, 0)
	assert.Equal(t, []int{4096, 8192, 16384}, cfg.Cache.Regions())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.TryFor)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ALGOPROF_TRY_FOR", "250ms")
	t.Setenv("ALGOPROF_CACHE_SIZE", "2MiB")
	t.Setenv("ALGOPROF_PARALLEL", "true")

	cfg, err := Decode(New())
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.TryFor)
	assert.Equal(t, ByteSize(2<<20), cfg.Cache.Size)
	assert.True(t, cfg.Parallel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want string
	}{
		{name: "environment", key: "environment", val: "staging", want: "invalid environment"},
		{name: "try_for", key: "try_for", val: "0s", want: "try_for"},
		{name: "zone_capacity", key: "zone_capacity", val: 0, want: "zone_capacity"},
		{name: "rounds", key: "rounds", val: -1, want: "rounds"},
		{name: "threshold", key: "results.threshold", val: -1, want: "threshold"},
		{name: "min region", key: "cache.min_region", val: 1000, want: "cache.min_region"},
		{name: "region order", key: "cache.min_region", val: "128MiB", want: "min_region <= max_region"},
		{name: "byte size", key: "chunk_size", val: "lots", want: "parse byte size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.val)

			_, err := Decode(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	v := New()
	v.Set("calibration_wait", "-1s")

	_, err := Decode(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestByteSizeString(t *testing.T) {
	assert.Equal(t, "64 KiB", ByteSize(64<<10).String())
}
