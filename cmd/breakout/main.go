// breakout runs the breakout physics simulation in the terminal or headless.
//
// Usage:
//
//	breakout play              - Play in the terminal
//	breakout sim               - Run headless simulations with a scripted pilot
//	breakout runs              - Show the run ledger
//	breakout pilots            - List scripted pilots
//	breakout config            - Print the effective configuration
//	breakout serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.breakout/config.yaml, ./configs/breakout.yaml)
//	--preset <name>     - easy, normal or hard
//	--fps <rate>        - Override the tick rate
//	--seed <value>      - Seed for scripted pilots
//	--db <path>         - Run ledger path (default: ~/.breakout/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Append logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout physics simulation for the terminal",
	Long: `breakout runs a fixed-timestep breakout simulation: a paddle, one ball,
three walls and a 5×4 wall of bricks that break after two hits.

Available commands:
  play     - Play interactively (or watch a pilot)
  sim      - Run headless simulations and record traces
  runs     - Browse finished runs
  pilots   - List scripted pilots
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  breakout play
  breakout play --pilot track
  breakout sim --pilot sweep --ticks 7200 --trace sweep.csv
  breakout sim --runs 64 --workers 8 --preset hard
  breakout runs --pilot track
  breakout serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Preset: easy, normal, hard")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed for scripted pilots (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/runs.db", "Path to run ledger database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
