package main

import (
	"fmt"

	"github.com/cwbudde/algo-prof/internal/candidates"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newWriteCmd(a *app) *cobra.Command {
	var (
		size  string
		alloc string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Measure write bandwidth to a buffer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := humanize.ParseBytes(size)
			if err != nil || n == 0 {
				return fmt.Errorf("invalid --size %q", size)
			}

			modes, err := parseAlloc(alloc)
			if err != nil {
				return err
			}

			return a.runCandidates(cmd, candidates.Writes(), modes, int(n), "")
		},
	}

	cmd.Flags().StringVar(&size, "size", "64MiB", "bytes written per iteration")
	cmd.Flags().StringVar(&alloc, "alloc", "none", "buffer allocation: none, per-iteration or both")

	return cmd
}

func parseAlloc(s string) ([]candidates.AllocMode, error) {
	switch s {
	case "none":
		return []candidates.AllocMode{candidates.AllocNone}, nil
	case "per-iteration":
		return []candidates.AllocMode{candidates.AllocPerIteration}, nil
	case "both":
		return candidates.AllocModes, nil
	default:
		return nil, fmt.Errorf("invalid --alloc %q: must be none, per-iteration or both", s)
	}
}
