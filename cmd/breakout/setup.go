package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout-sim/internal/config"
	"github.com/vovakirdan/breakout-sim/internal/storage"
)

// resolveConfig loads the configuration and applies the preset and tick
// rate override on top of it.
func resolveConfig(path, preset string, fps int) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, p)
	if fps != 0 {
		cfg.Loop.TickRate = fps
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to the --log-file when set;
// otherwise to fallback. The returned closer releases the file.
func newLogger(level, file string, fallback io.Writer) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	w, closer := fallback, func() {}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "breakout",
		Level:           lvl,
	})
	return logger, closer, nil
}

// openLedger opens the run ledger, or returns nil with a warning when the
// database cannot be opened.
func openLedger(path string, logger *log.Logger) *storage.Store {
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open run ledger", "path", path, "error", err)
		return nil
	}
	return store
}

// seedOrNow returns seed, or a time-based seed when it is zero.
func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// exitOnErr prints err and exits non-zero.
func exitOnErr(what string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
