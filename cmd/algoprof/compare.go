package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-prof/internal/results"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare the two latest saved runs",
		Long: `Compares the two latest runs in the history file and fails when a
candidate's fastest sample got slower by more than the threshold.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := results.NewFileStore(a.cfg.Results.File)
			if err != nil {
				return err
			}

			runs, err := store.LoadAll()
			if err != nil {
				return err
			}

			if len(runs) < 2 {
				return fmt.Errorf("%s holds %d runs, need at least 2", store.Path(), len(runs))
			}

			prev, curr := runs[len(runs)-2], runs[len(runs)-1]
			comps := results.Compare(prev, curr)

			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", prev.Timestamp.Format("2006-01-02 15:04:05"),
				curr.Timestamp.Format("2006-01-02 15:04:05"))
			printComparison(cmd.OutOrStdout(), comps, a.cfg.Results.Threshold)

			if n := len(results.Regressions(comps, a.cfg.Results.Threshold)); n > 0 {
				return fmt.Errorf("%d candidates regressed by more than %.1f%%", n, a.cfg.Results.Threshold)
			}

			return nil
		},
	}
}

func printComparison(out io.Writer, comps []results.Comparison, threshold float64) {
	if len(comps) == 0 {
		fmt.Fprintln(out, "No comparable results.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CANDIDATE\tSIZE\tPREV GB/s\tCURR GB/s\tMIN DIFF\t")

	for _, c := range comps {
		status := ""
		if c.Regressed(threshold) {
			status = "REGRESSION"
		}

		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%+.2f%%\t%s\n",
			c.Name, humanize.IBytes(c.Curr.TargetBytes), c.Prev.GBPerSec, c.Curr.GBPerSec, c.MinTicksDiff, status)
	}

	w.Flush()
}
