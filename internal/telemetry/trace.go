// Package telemetry records per-tick traces of a simulation run and
// summarizes them.
package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/breakout-sim/internal/physics"
	"github.com/vovakirdan/breakout-sim/internal/sim"
)

// TraceRow is one tick of a run as written to CSV.
type TraceRow struct {
	Tick       uint64  `csv:"tick"`
	Input      string  `csv:"input"`
	PaddleX    float64 `csv:"paddle_x"`
	BallX      float64 `csv:"ball_x"`
	BallY      float64 `csv:"ball_y"`
	BallVX     float64 `csv:"ball_vx"`
	BallVY     float64 `csv:"ball_vy"`
	BallSpeed  float64 `csv:"ball_speed"`
	Begins     int     `csv:"begins"`
	Ends       int     `csv:"ends"`
	Damaged    int     `csv:"damaged"`
	Destroyed  int     `csv:"destroyed"`
	BricksLeft int     `csv:"bricks_left"`
	Escaped    bool    `csv:"escaped"`
	Cleared    bool    `csv:"cleared"`
}

// RowOf converts a tick result into a trace row.
func RowOf(res sim.TickResult) TraceRow {
	row := TraceRow{
		Tick:       res.Tick,
		Input:      res.Input.String(),
		PaddleX:    res.PaddlePos.X,
		BallX:      res.BallPos.X,
		BallY:      res.BallPos.Y,
		BallVX:     res.BallVel.X,
		BallVY:     res.BallVel.Y,
		BallSpeed:  res.BallVel.Len(),
		Damaged:    len(res.Damaged),
		Destroyed:  len(res.Destroyed),
		BricksLeft: res.BricksLeft,
		Escaped:    res.BallEscaped,
		Cleared:    res.Cleared,
	}
	for _, ev := range res.Events {
		if ev.Phase == physics.Begin {
			row.Begins++
		} else {
			row.Ends++
		}
	}
	return row
}

// Recorder buffers trace rows for one run.
type Recorder struct {
	rows []TraceRow
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends the row for res.
func (r *Recorder) Record(res sim.TickResult) {
	r.rows = append(r.rows, RowOf(res))
}

// Rows returns the recorded rows.
func (r *Recorder) Rows() []TraceRow {
	return r.rows
}

// Len returns the number of recorded rows.
func (r *Recorder) Len() int {
	return len(r.rows)
}

// WriteCSV writes all rows with a header line.
func (r *Recorder) WriteCSV(w io.Writer) error {
	return WriteCSV(w, r.rows)
}

// WriteFile writes the trace to path, replacing any existing file.
func (r *Recorder) WriteFile(path string) error {
	return WriteFile(path, r.rows)
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []TraceRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// WriteFile writes rows to path, replacing any existing file.
func WriteFile(path string, rows []TraceRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
