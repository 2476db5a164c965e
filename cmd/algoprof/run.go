package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-prof/internal/candidates"
	"github.com/cwbudde/algo-prof/internal/cpu"
	"github.com/cwbudde/algo-prof/internal/logger"
	"github.com/cwbudde/algo-prof/internal/profile"
	"github.com/cwbudde/algo-prof/internal/results"
	"github.com/cwbudde/algo-prof/internal/suite"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (a *app) newRunner(cmd *cobra.Command, freq uint64) (*suite.Runner, *profile.Profiler) {
	var prof *profile.Profiler
	if a.cfg.Profile {
		prof = profile.New(profile.Config{Capacity: a.cfg.ZoneCapacity, Frequency: freq})
	}

	r := suite.New(suite.Config{
		Frequency:   freq,
		TryFor:      a.cfg.TryFor,
		Rounds:      a.cfg.Rounds,
		NewMinimums: a.cfg.PrintNewMinimums,
		PageFaults:  a.cfg.PageFaults,
		Out:         cmd.OutOrStdout(),
		ErrOut:      cmd.ErrOrStderr(),
	}, prof)

	return r, prof
}

// runCandidates runs every candidate under every allocation mode on its own
// Params and publishes the results.
func (a *app) runCandidates(cmd *cobra.Command, cs []candidates.Candidate, modes []candidates.AllocMode, size int, filename string) error {
	if a.cfg.Parallel && a.cfg.Profile {
		return errors.New("--profile needs a sequential run, drop --parallel")
	}

	freq, err := a.frequency()
	if err != nil {
		return err
	}

	r, prof := a.newRunner(cmd, freq)

	for _, c := range cs {
		for _, mode := range modes {
			p := candidates.NewParams(mode, size, filename)
			p.ChunkSize = int(a.cfg.ChunkSize)
			r.Add(c, p)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s, %s per iteration, timer %d Hz\n",
		cpu.DetectFeatures(), humanize.IBytes(uint64(size)), freq)

	var runErr error
	if a.cfg.Parallel {
		runErr = r.RunParallel(cmd.Context())
	} else {
		runErr = r.Run(cmd.Context())
	}

	return a.finish(cmd, r, prof, runErr)
}

// finish reports the profile, compares and saves the run, and exports
// metrics. An interrupted run still publishes its partial results and
// reports the sessions that failed before the interrupt.
func (a *app) finish(cmd *cobra.Command, r *suite.Runner, prof *profile.Profiler, runErr error) error {
	if errors.Is(runErr, context.Canceled) {
		logger.Warn("Interrupted, publishing partial results")
		runErr = r.Err()
	}

	if prof != nil {
		fmt.Fprintln(cmd.OutOrStdout())
		if err := prof.WriteReport(cmd.OutOrStdout(), prof.Elapsed()); err != nil {
			return err
		}
	}

	run := results.Run{
		Timestamp: time.Now(),
		Features:  cpu.DetectFeatures().String(),
		Results:   r.Results(),
	}

	if host, err := os.Hostname(); err == nil {
		run.Host = host
	}

	if err := a.publish(cmd, run, prof); err != nil {
		return err
	}

	return runErr
}

func (a *app) publish(cmd *cobra.Command, run results.Run, prof *profile.Profiler) error {
	rc := a.cfg.Results

	if rc.Save || rc.Compare {
		store, err := results.NewFileStore(rc.File)
		if err != nil {
			return err
		}

		if rc.Compare {
			prev, err := store.LoadLatest()
			if err != nil {
				return err
			}

			if prev != nil {
				fmt.Fprintln(cmd.OutOrStdout())
				printComparison(cmd.OutOrStdout(), results.Compare(*prev, run), rc.Threshold)
			}
		}

		if rc.Save {
			if err := store.Save(run); err != nil {
				return fmt.Errorf("failed to save history: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to %s\n", rc.File)
		}
	}

	if a.cfg.MetricsFile != "" {
		e := results.NewExporter()
		e.ObserveRun(run)

		if prof != nil {
			e.ObserveZones(prof.Report(prof.Elapsed()))
		}

		if err := e.WriteTextfile(a.cfg.MetricsFile); err != nil {
			return err
		}

		logger.Info("Metrics written", "file", a.cfg.MetricsFile)
	}

	return nil
}
