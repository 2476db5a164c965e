package main

import (
	"fmt"

	"github.com/cwbudde/algo-prof/internal/suite"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Sweep read bandwidth over power-of-two cache regions",
		Long: `Reads cache.size bytes per iteration with every offset masked into a
region of the buffer, for each power-of-two region from cache.min_region to
cache.max_region, and prints a "Region Size,GB/s" CSV of the fastest samples.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			freq, err := a.frequency()
			if err != nil {
				return err
			}

			c := a.cfg.Cache
			r, prof := a.newRunner(cmd, freq)

			fmt.Fprintf(cmd.OutOrStdout(), "Cache sweep over %s, regions %s to %s\n",
				humanize.IBytes(uint64(c.Size)), c.MinRegion, c.MaxRegion)

			sessions := r.AddCacheSweep(int(c.Size), c.Regions())

			// The sweep sessions share one buffer and always run sequentially.
			runErr := r.Run(cmd.Context())

			fmt.Fprintln(cmd.OutOrStdout())
			if err := suite.WriteCacheCSV(cmd.OutOrStdout(), sessions); err != nil {
				return err
			}

			return a.finish(cmd, r, prof, runErr)
		},
	}

	flags := cmd.Flags()
	flags.String("cache-size", "", "bytes read per iteration (default 64MiB)")
	flags.String("min-region", "", "smallest region (default 1KiB)")
	flags.String("max-region", "", "largest region (default cache size)")

	a.v.BindPFlag("cache.size", flags.Lookup("cache-size"))
	a.v.BindPFlag("cache.min_region", flags.Lookup("min-region"))
	a.v.BindPFlag("cache.max_region", flags.Lookup("max-region"))

	return cmd
}
