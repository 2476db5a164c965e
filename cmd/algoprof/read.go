package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-prof/internal/candidates"
	"github.com/spf13/cobra"
)

func newReadCmd(a *app) *cobra.Command {
	var (
		names []string
		alloc string
	)

	cmd := &cobra.Command{
		Use:   "read FILE",
		Short: "Measure file read bandwidth",
		Long: `Reads FILE with every read candidate. Each iteration must read the whole
file; use --alloc both to see the page-fault cost of a fresh buffer.

Candidates: ` + candidates.Names(candidates.Reads()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}

			if info.Size() == 0 {
				return fmt.Errorf("%s: test data size must be non-zero", args[0])
			}

			cs, err := selectCandidates(candidates.Reads(), names)
			if err != nil {
				return err
			}

			modes, err := parseAlloc(alloc)
			if err != nil {
				return err
			}

			return a.runCandidates(cmd, cs, modes, int(info.Size()), args[0])
		},
	}

	cmd.Flags().StringSliceVar(&names, "candidates", nil, "read candidates to run (default all)")
	cmd.Flags().StringVar(&alloc, "alloc", "both", "buffer allocation: none, per-iteration or both")

	return cmd
}

func selectCandidates(all []candidates.Candidate, names []string) ([]candidates.Candidate, error) {
	if len(names) == 0 {
		return all, nil
	}

	var out []candidates.Candidate

	for _, name := range names {
		c, ok := candidates.Lookup(all, strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown candidate %q, have: %s", name, candidates.Names(all))
		}

		out = append(out, c)
	}

	return out, nil
}
