package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breakout-sim/internal/platform/tui"
	"github.com/vovakirdan/breakout-sim/internal/storage"
)

var (
	flagRunsPilot string
	flagRunsLimit int
	flagRunsStats bool
	flagRunsTUI   bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the run ledger",
	Long: `Display finished runs from the ledger, newest first.

Examples:
  breakout runs
  breakout runs --pilot track --limit 50
  breakout runs --stats
  breakout runs --browse
  breakout runs --pilot random --clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsPilot, "pilot", "", "Only show runs of this pilot")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum runs to show")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-pilot statistics instead of runs")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "browse", false, "Browse the ledger interactively")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of --pilot")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	exitOnErr("opening run ledger", err)

	switch {
	case flagRunsTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		err = tui.RunLedger(store, width, height)
	case flagRunsClear:
		err = clearRuns(store, flagRunsPilot)
	case flagRunsStats:
		err = printPilotStats(store)
	default:
		err = printRuns(store, flagRunsPilot, flagRunsLimit)
	}

	store.Close()
	exitOnErr("reading run ledger", err)
}

func clearRuns(store *storage.Store, pilot string) error {
	if pilot == "" {
		return errors.New("--clear needs --pilot")
	}
	if err := store.ClearRuns(pilot); err != nil {
		return err
	}
	fmt.Printf("Cleared runs of %s.\n", pilot)
	return nil
}

func printRuns(store *storage.Store, pilot string, limit int) error {
	var (
		runs []storage.RunRecord
		err  error
	)
	if pilot == "" {
		runs, err = store.RecentRuns(limit)
	} else {
		runs, err = store.RunsByPilot(pilot, limit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'breakout sim' or 'breakout play' to record one.")
		return nil
	}

	fmt.Printf("  %-8s  %-16s  %-8s  %6s  %6s  %-8s  %7s\n", "Run", "Date", "Pilot", "Ticks", "Bricks", "End", "Max v")
	fmt.Printf("  %-8s  %-16s  %-8s  %6s  %6s  %-8s  %7s\n", "---", "----", "-----", "-----", "------", "---", "-----")
	for _, r := range runs {
		end := "stopped"
		switch {
		case r.Cleared:
			end = "cleared"
		case r.Escaped:
			end = "lost"
		}
		fmt.Printf("  %-8s  %-16s  %-8s  %6d  %6d  %-8s  %7.1f\n",
			shortID(r.ID), r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Pilot, r.Ticks, r.BricksDestroyed, end, r.MaxSpeed)
	}
	return nil
}

func printPilotStats(store *storage.Store) error {
	stats, err := store.AllPilotStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  %-8s  %5s  %7s  %8s  %7s\n", "Pilot", "Runs", "Cleared", "Bricks", "Best v")
	fmt.Printf("  %-8s  %5s  %7s  %8s  %7s\n", "-----", "----", "-------", "------", "------")
	for _, name := range names {
		p := stats[name]
		fmt.Printf("  %-8s  %5d  %7d  %8.1f  %7.1f\n", p.Pilot, p.Runs, p.Cleared, p.AvgDestroyed, p.BestSpeed)
	}
	return nil
}
