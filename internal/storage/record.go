package storage

import "github.com/vovakirdan/breakout-sim/internal/telemetry"

// RecordOf builds the ledger row for a finished run.
func RecordOf(runID, pilot string, seed int64, s telemetry.Summary) RunRecord {
	return RunRecord{
		ID:              runID,
		Pilot:           pilot,
		Seed:            seed,
		Ticks:           s.Ticks,
		BricksDestroyed: s.BricksDestroyed,
		BricksLeft:      s.BricksLeft,
		Cleared:         s.Cleared,
		Escaped:         s.Escaped,
		MeanSpeed:       s.MeanSpeed,
		MaxSpeed:        s.MaxSpeed,
	}
}
