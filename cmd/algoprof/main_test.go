package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-prof/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastFlags = []string{"--try-for", "2ms", "--calibration-wait", "10ms", "--new-minimums=false"}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCalibrate(t *testing.T) {
	out, err := execute(t, "calibrate", "--calibration-wait", "10ms")
	require.NoError(t, err)

	assert.Contains(t, out, "CPU:")
	assert.Contains(t, out, "Timer frequency:")
	assert.Contains(t, out, "estimated over 10ms")
}

func TestWriteSaveProfileMetrics(t *testing.T) {
	dir := t.TempDir()
	history := filepath.Join(dir, "results.json")
	metrics := filepath.Join(dir, "algoprof.prom")

	args := append([]string{"write", "--size", "4KiB", "--results-file", history, "--save",
		"--metrics-file", metrics, "--profile"}, fastFlags...)

	out, err := execute(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "--- write-bytes ---")
	assert.Contains(t, out, "--- write-clear ---")
	assert.Contains(t, out, "4.0 KiB per iteration")
	assert.Contains(t, out, "Total time:")
	assert.Contains(t, out, "Results saved to "+history)

	store, err := results.NewFileStore(history)
	require.NoError(t, err)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Len(t, latest.Results, 2)
	assert.Equal(t, uint64(4096), latest.Results[0].TargetBytes)
	assert.NotEmpty(t, latest.Features)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `algoprof_samples{candidate="write-bytes"}`)
	assert.Contains(t, string(data), `algoprof_zone_hits{zone="write-clear"} 1`)
}

func TestCompare(t *testing.T) {
	history := filepath.Join(t.TempDir(), "results.json")

	_, err := execute(t, "compare", "--results-file", history)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need at least 2")

	for range 2 {
		args := append([]string{"write", "--size", "1KiB", "--results-file", history, "--save"}, fastFlags...)
		_, err := execute(t, args...)
		require.NoError(t, err)
	}

	out, err := execute(t, "compare", "--results-file", history, "--threshold", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "CANDIDATE")
	assert.Contains(t, out, "write-bytes")
	assert.NotContains(t, out, "REGRESSION")
}

func TestRead(t *testing.T) {
	name := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(name, bytes.Repeat([]byte{7}, 8192), 0o600))

	args := append([]string{"read", name, "--candidates", "read-whole,read-chunked", "--alloc", "both"}, fastFlags...)

	out, err := execute(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "--- read-whole ---")
	assert.Contains(t, out, "--- malloc + read-chunked ---")
	assert.NotContains(t, out, "read-file")
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	_, err := execute(t, append([]string{"read", empty}, fastFlags...)...)
	assert.ErrorContains(t, err, "must be non-zero")

	_, err = execute(t, append([]string{"read", filepath.Join(dir, "missing.bin")}, fastFlags...)...)
	assert.Error(t, err)

	_, err = execute(t, append([]string{"read", empty, "--candidates", "nope"}, fastFlags...)...)
	assert.Error(t, err)

	data := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(data, make([]byte, 64), 0o600))

	_, err = execute(t, append([]string{"read", data, "--candidates", "write-bytes"}, fastFlags...)...)
	assert.ErrorContains(t, err, `unknown candidate "write-bytes"`)
}

func TestCache(t *testing.T) {
	args := append([]string{"cache", "--cache-size", "64KiB", "--min-region", "1KiB", "--max-region", "4KiB"}, fastFlags...)

	out, err := execute(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "--- cache-region 1.0 KiB ---")
	assert.Contains(t, out, "Region Size,GB/s\n")

	var rows int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "1024,") || strings.HasPrefix(line, "2048,") || strings.HasPrefix(line, "4096,") {
			rows++
		}
	}

	assert.Equal(t, 3, rows)
}

func TestProfileRejectsParallel(t *testing.T) {
	_, err := execute(t, append([]string{"write", "--size", "1KiB", "--profile", "--parallel"}, fastFlags...)...)
	assert.ErrorContains(t, err, "--profile needs a sequential run")
}

func TestInvalidFlags(t *testing.T) {
	_, err := execute(t, append([]string{"write", "--alloc", "sometimes"}, fastFlags...)...)
	assert.ErrorContains(t, err, "invalid --alloc")

	_, err = execute(t, append([]string{"write", "--size", "lots"}, fastFlags...)...)
	assert.ErrorContains(t, err, "invalid --size")

	_, err = execute(t, "calibrate", "--try-for", "0s")
	assert.ErrorContains(t, err, "try_for")
}
