package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakout-sim/internal/batch"
	"github.com/vovakirdan/breakout-sim/internal/registry"
	"github.com/vovakirdan/breakout-sim/internal/storage"
	"github.com/vovakirdan/breakout-sim/internal/telemetry"
)

var (
	flagSimPilot    string
	flagTicks       int
	flagRuns        int
	flagWorkers     int
	flagTrace       string
	flagStopOnClear bool
	flagNoSave      bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless simulations",
	Long: `Run one or more headless simulations driven by a scripted pilot.

Every run gets its own simulation and seed (--seed + run index). Runs execute
in parallel on a worker pool; each simulation stays on one worker.
Summaries are printed and recorded in the run ledger unless --no-save is set.

With --trace, the per-tick trace is written as CSV. When more than one run is
requested, the run index is appended to the file name.

Examples:
  breakout sim
  breakout sim --pilot sweep --ticks 7200 --trace sweep.csv
  breakout sim --pilot random --runs 100 --workers 8 --seed 42`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimPilot, "pilot", "track", "Scripted pilot driving the paddle")
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum ticks per run")
	simCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs")
	simCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Parallel workers")
	simCmd.Flags().StringVar(&flagTrace, "trace", "", "Write per-tick CSV trace to this path")
	simCmd.Flags().BoolVar(&flagStopOnClear, "stop-on-clear", true, "Stop a run once every brick is gone")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record runs in the ledger")
}

func runSim(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagSimPilot) {
		fmt.Fprintf(os.Stderr, "Error: unknown pilot %q\n", flagSimPilot)
		fmt.Fprintln(os.Stderr, "Run 'breakout pilots' to see available pilots.")
		os.Exit(1)
	}
	if flagTicks <= 0 || flagRuns <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --ticks and --runs must be positive")
		os.Exit(1)
	}

	cfg, err := resolveConfig(flagConfig, flagPreset, flagFPS)
	exitOnErr("loading config", err)

	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, os.Stderr)
	exitOnErr("setting up logging", err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := seedOrNow(flagSeed)
	jobs := make([]batch.Job, flagRuns)
	for i := range jobs {
		jobs[i] = batch.Job{
			Pilot:       flagSimPilot,
			Seed:        seed + int64(i),
			Ticks:       flagTicks,
			StopOnClear: flagStopOnClear,
			KeepTrace:   flagTrace != "",
		}
	}

	runner := batch.NewRunner(cfg,
		batch.WithWorkers(flagWorkers),
		batch.WithLogger(logger.WithPrefix("batch")),
	)
	results, err := runner.Run(ctx, jobs)
	exitOnErr("running simulations", err)

	var store *storage.Store
	if !flagNoSave {
		store = openLedger(flagDBPath, logger)
	}

	failed := 0
	printSummaryHeader()
	for i, res := range results {
		if res.Err != nil {
			failed++
			if !errors.Is(res.Err, context.Canceled) {
				logger.Error("run failed", "index", i, "seed", res.Job.Seed, "error", res.Err)
			}
			continue
		}
		printSummary(i, res)

		if flagTrace != "" {
			path := traceName(flagTrace, i, len(results))
			if err := telemetry.WriteFile(path, res.Trace); err != nil {
				logger.Error("cannot write trace", "path", path, "error", err)
			} else {
				logger.Info("trace written", "path", path, "rows", len(res.Trace))
			}
		}
		if store != nil {
			rec := storage.RecordOf(res.RunID, res.Job.Pilot, res.Job.Seed, res.Summary)
			if _, err := store.SaveRun(rec); err != nil {
				logger.Warn("could not save run", "run", res.RunID, "error", err)
			}
		}
	}
	if len(results) > 1 {
		printAggregate(results)
	}

	if store != nil {
		store.Close()
	}
	closeLog()
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d runs did not finish\n", failed, len(results))
		os.Exit(1)
	}
}

// traceName returns the trace path for run i of n. A single run uses base
// unchanged; otherwise the zero-padded index goes before the extension.
func traceName(base string, i, n int) string {
	if n <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(base, ext), i, ext)
}

func printSummaryHeader() {
	fmt.Printf("  %-4s  %-8s  %-20s  %6s  %6s  %5s  %-8s  %7s  %7s\n",
		"#", "Run", "Seed", "Ticks", "Bricks", "Hits", "End", "Mean v", "Max v")
	fmt.Printf("  %-4s  %-8s  %-20s  %6s  %6s  %5s  %-8s  %7s  %7s\n",
		"-", "---", "----", "-----", "------", "----", "---", "------", "-----")
}

func printSummary(i int, res batch.Result) {
	s := res.Summary
	end := "stopped"
	switch {
	case s.Cleared:
		end = fmt.Sprintf("clr@%d", s.ClearedAt)
	case s.Escaped:
		end = fmt.Sprintf("out@%d", s.EscapedAt)
	}
	fmt.Printf("  %-4d  %-8s  %-20d  %6d  %6d  %5d  %-8s  %7.1f  %7.1f\n",
		i, shortID(res.RunID), res.Job.Seed, s.Ticks, s.BricksDestroyed, s.Hits, end, s.MeanSpeed, s.MaxSpeed)
}

func printAggregate(results []batch.Result) {
	agg := telemetry.Aggregate(summariesOf(results))
	fmt.Println()
	fmt.Printf("Runs: %d  cleared: %d  escaped: %d\n", agg.Runs, agg.Cleared, agg.Escaped)
	fmt.Printf("Bricks destroyed: mean %.2f  stddev %.2f  max %.0f\n",
		agg.MeanDestroyed, agg.StdDevDestroyed, agg.MaxDestroyed)
	if agg.Cleared > 0 {
		fmt.Printf("Ticks to clear: mean %.1f\n", agg.MeanClearTick)
	}
}

func summariesOf(results []batch.Result) []telemetry.Summary {
	out := make([]telemetry.Summary, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Summary)
		}
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
