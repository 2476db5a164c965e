package main

import (
	"fmt"

	"github.com/cwbudde/algo-prof/internal/config"
	"github.com/cwbudde/algo-prof/internal/cpu"
	"github.com/cwbudde/algo-prof/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "algoprof",
		Short: "Measure memory and file operations with the CPU tick counter",
		Long: `algoprof reruns candidate operations until their fastest sample stops
improving, then reports min, max and average time, bandwidth and page faults.

Settings come from flags, ALGOPROF_* environment variables and an optional
algoprof.yaml in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}

			a.cfg = cfg
			logger.Init(cfg.Environment, cfg.Debug)

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./algoprof.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Duration("try-for", 0, "stop a wave after this long without a new minimum (default 10s)")
	flags.Duration("calibration-wait", 0, "busy-wait used to estimate the timer frequency (default 100ms)")
	flags.Int("rounds", 1, "waves per candidate, 0 runs until interrupted")
	flags.Bool("parallel", false, "run candidates on separate goroutines")
	flags.Bool("new-minimums", true, "print every new minimum while testing")
	flags.Bool("page-faults", true, "count page faults")
	flags.Bool("profile", false, "print a zone profile of the run")
	flags.String("results-file", "", "run history file (default .algoprof/results.json)")
	flags.Bool("save", false, "append this run to the history")
	flags.Bool("compare", false, "compare with the latest saved run")
	flags.Float64("threshold", 0, "regression threshold in percent (default 5)")
	flags.String("metrics-file", "", "write results as a Prometheus textfile")

	bind := map[string]string{
		"debug":              "debug",
		"try_for":            "try-for",
		"calibration_wait":   "calibration-wait",
		"rounds":             "rounds",
		"parallel":           "parallel",
		"print_new_minimums": "new-minimums",
		"page_faults":        "page-faults",
		"profile":            "profile",
		"results.file":       "results-file",
		"results.save":       "save",
		"results.compare":    "compare",
		"results.threshold":  "threshold",
		"metrics_file":       "metrics-file",
	}
	for key, name := range bind {
		a.v.BindPFlag(key, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newCalibrateCmd(a),
		newWriteCmd(a),
		newReadCmd(a),
		newCacheCmd(a),
		newCompareCmd(a),
	)

	return rootCmd
}

// frequency estimates the tick frequency once per command.
func (a *app) frequency() (uint64, error) {
	freq := cpu.EstimateFrequency(a.cfg.CalibrationWait)
	if freq == 0 {
		return 0, fmt.Errorf("could not estimate timer frequency over %s", a.cfg.CalibrationWait)
	}

	logger.Debug("Estimated timer frequency", "hz", freq, "wait", a.cfg.CalibrationWait.String())

	return freq, nil
}
