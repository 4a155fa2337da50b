package telemetry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a whole run.
type Summary struct {
	Ticks           int
	Contacts        int // contact begin events
	Hits            int // hit points removed from bricks
	BricksDestroyed int
	BricksLeft      int
	Cleared         bool
	ClearedAt       uint64 // first tick with no bricks left, 0 if never
	Escaped         bool
	EscapedAt       uint64 // first tick the ball was below the arena, 0 if never
	MeanSpeed       float64
	StdDevSpeed     float64
	MaxSpeed        float64
}

// Summarize computes run statistics from trace rows.
func Summarize(rows []TraceRow) Summary {
	var s Summary
	if len(rows) == 0 {
		return s
	}

	speeds := make([]float64, len(rows))
	for i, r := range rows {
		speeds[i] = r.BallSpeed
		s.Contacts += r.Begins
		s.Hits += r.Damaged
		s.BricksDestroyed += r.Destroyed
		if r.Cleared && !s.Cleared {
			s.Cleared = true
			s.ClearedAt = r.Tick
		}
		if r.Escaped && !s.Escaped {
			s.Escaped = true
			s.EscapedAt = r.Tick
		}
	}

	s.Ticks = len(rows)
	s.BricksLeft = rows[len(rows)-1].BricksLeft
	s.MeanSpeed = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		s.StdDevSpeed = stat.StdDev(speeds, nil)
	}
	s.MaxSpeed = floats.Max(speeds)
	return s
}

// Accumulator folds trace rows into a Summary one at a time, so long
// interactive sessions keep constant memory. Speed moments use Welford's
// update and match Summarize up to rounding.
type Accumulator struct {
	s        Summary
	mean, m2 float64
}

// Add folds one row into the running summary.
func (a *Accumulator) Add(r TraceRow) {
	a.s.Ticks++
	a.s.Contacts += r.Begins
	a.s.Hits += r.Damaged
	a.s.BricksDestroyed += r.Destroyed
	a.s.BricksLeft = r.BricksLeft
	if r.Cleared && !a.s.Cleared {
		a.s.Cleared = true
		a.s.ClearedAt = r.Tick
	}
	if r.Escaped && !a.s.Escaped {
		a.s.Escaped = true
		a.s.EscapedAt = r.Tick
	}

	if a.s.Ticks == 1 || r.BallSpeed > a.s.MaxSpeed {
		a.s.MaxSpeed = r.BallSpeed
	}
	d := r.BallSpeed - a.mean
	a.mean += d / float64(a.s.Ticks)
	a.m2 += d * (r.BallSpeed - a.mean)
}

// Len returns the number of rows folded so far.
func (a *Accumulator) Len() int {
	return a.s.Ticks
}

// Summary returns the statistics of every row added so far.
func (a *Accumulator) Summary() Summary {
	s := a.s
	s.MeanSpeed = a.mean
	if s.Ticks > 1 {
		s.StdDevSpeed = math.Sqrt(a.m2 / float64(s.Ticks-1))
	}
	return s
}

// BatchSummary aggregates the summaries of many runs.
type BatchSummary struct {
	Runs            int
	Cleared         int
	Escaped         int
	MeanDestroyed   float64
	StdDevDestroyed float64
	MaxDestroyed    float64
	MeanClearTick   float64 // over cleared runs only
}

// Aggregate combines run summaries.
func Aggregate(runs []Summary) BatchSummary {
	b := BatchSummary{Runs: len(runs)}
	if len(runs) == 0 {
		return b
	}

	destroyed := make([]float64, len(runs))
	var clearTicks []float64
	for i, s := range runs {
		destroyed[i] = float64(s.BricksDestroyed)
		if s.Cleared {
			b.Cleared++
			clearTicks = append(clearTicks, float64(s.ClearedAt))
		}
		if s.Escaped {
			b.Escaped++
		}
	}

	b.MeanDestroyed = stat.Mean(destroyed, nil)
	if len(destroyed) > 1 {
		b.StdDevDestroyed = stat.StdDev(destroyed, nil)
	}
	b.MaxDestroyed = floats.Max(destroyed)
	if len(clearTicks) > 0 {
		b.MeanClearTick = stat.Mean(clearTicks, nil)
	}
	return b
}
