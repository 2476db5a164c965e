package main

import (
	"fmt"

	"github.com/cwbudde/algo-prof/internal/cpu"
	"github.com/cwbudde/algo-prof/internal/osmetrics"
	"github.com/spf13/cobra"
)

func newCalibrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "Estimate the tick counter frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			freq, err := a.frequency()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "CPU:               %s\n", cpu.DetectFeatures())
			fmt.Fprintf(out, "OS timer:          %d Hz\n", cpu.OSTimerFrequency())
			fmt.Fprintf(out, "Nominal frequency: %s\n", hz(cpu.NominalFrequency()))
			fmt.Fprintf(out, "Timer frequency:   %s (estimated over %s)\n", hz(freq), a.cfg.CalibrationWait)
			fmt.Fprintf(out, "Page faults:       %t\n", osmetrics.Available())

			return nil
		},
	}
}

func hz(f uint64) string {
	if f == 0 {
		return "unknown"
	}

	return fmt.Sprintf("%d Hz (%.3f GHz)", f, float64(f)/1e9)
}
