package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/platform/tui"
	"github.com/vovakirdan/breakout-sim/internal/registry"
)

var (
	flagPlayPilot string
	flagHold      int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive simulation in the terminal.

Controls:
  Left/A     - Move paddle left
  Right/D    - Move paddle right
  P/Space    - Pause
  R          - Restart
  ?          - Toggle help
  Q/Esc      - Quit

The round ends when every brick is gone or the ball leaves the arena.
Finished rounds are recorded in the run ledger.

With --pilot the paddle is driven by a scripted pilot instead of the keyboard.
Logs are written only when --log-file is set.

Examples:
  breakout play
  breakout play --preset easy
  breakout play --pilot track --fps 120`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayPilot, "pilot", "", "Watch a scripted pilot instead of playing")
	playCmd.Flags().IntVar(&flagHold, "hold", int(tui.DefaultHold.Milliseconds()), "Milliseconds a key press keeps the paddle moving")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagPlayPilot != "" && !registry.Exists(flagPlayPilot) {
		fmt.Fprintf(os.Stderr, "Error: unknown pilot %q\n", flagPlayPilot)
		fmt.Fprintln(os.Stderr, "Run 'breakout pilots' to see available pilots.")
		os.Exit(1)
	}

	cfg, err := resolveConfig(flagConfig, flagPreset, flagFPS)
	exitOnErr("loading config", err)

	// The terminal belongs to the UI, so logs only go to a file.
	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, io.Discard)
	exitOnErr("setting up logging", err)

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = cfg.Loop.TickRate
	rt.Seed = flagSeed

	store := openLedger(flagDBPath, logger)

	runErr := tui.Run(tui.Options{
		Config:  cfg,
		Runtime: rt,
		Store:   store,
		Pilot:   flagPlayPilot,
		Hold:    msToDuration(flagHold),
		Logger:  logger,
	})

	// Close before a potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	exitOnErr("running game", runErr)
}
