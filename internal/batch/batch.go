// Package batch runs independent headless simulations, optionally in parallel
// on an ants worker pool. Each simulation is owned by exactly one worker.
package batch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/vovakirdan/breakout-sim/internal/config"
	"github.com/vovakirdan/breakout-sim/internal/registry"
	"github.com/vovakirdan/breakout-sim/internal/sim"
	"github.com/vovakirdan/breakout-sim/internal/telemetry"
)

// ctxCheckEvery is how many ticks a run goes between context checks.
const ctxCheckEvery = 256

// Job describes one headless run.
type Job struct {
	Pilot       string
	Seed        int64
	Ticks       int  // maximum ticks to run
	StopOnClear bool // stop as soon as every brick is gone
	KeepTrace   bool // keep per-tick rows in the result
}

// Result is the outcome of one job.
type Result struct {
	RunID   string
	Job     Job
	Summary telemetry.Summary
	Trace   []telemetry.TraceRow
	Err     error
}

// Runner executes jobs against a fixed configuration.
type Runner struct {
	cfg     config.Config
	workers int
	logger  *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the pool size. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = max(n, 1)
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner.
func NewRunner(cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		workers: 1,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOne executes a single job on the calling goroutine.
func (r *Runner) RunOne(ctx context.Context, job Job) Result {
	res := Result{RunID: uuid.NewString(), Job: job}

	pilot, err := registry.Create(job.Pilot, job.Seed)
	if err != nil {
		res.Err = err
		return res
	}
	s, err := sim.New(r.cfg, sim.WithLogger(r.logger.With("run", res.RunID[:8])))
	if err != nil {
		res.Err = err
		return res
	}

	rec := telemetry.NewRecorder()
	for i := 0; i < job.Ticks; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				res.Err = fmt.Errorf("run %s: %w", res.RunID, err)
				break
			}
		}
		tick := s.Tick(pilot.Next(s.View()))
		rec.Record(tick)
		if job.StopOnClear && tick.Cleared {
			break
		}
	}

	res.Summary = telemetry.Summarize(rec.Rows())
	if job.KeepTrace {
		res.Trace = rec.Rows()
	}
	r.logger.Debug("run finished",
		"run", res.RunID,
		"pilot", job.Pilot,
		"ticks", res.Summary.Ticks,
		"destroyed", res.Summary.BricksDestroyed,
	)
	return res
}

// Run executes all jobs on the worker pool and returns results in job order.
// Jobs not started before ctx is cancelled report the context error.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(jobs); j++ {
				results[j] = Result{Job: jobs[j], Err: err}
			}
			break
		}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					r.logger.Error("run panicked", "pilot", job.Pilot, "seed", job.Seed, "panic", p)
					results[i] = Result{Job: job, Err: fmt.Errorf("run panicked: %v", p)}
				}
			}()
			if err := ctx.Err(); err != nil {
				results[i] = Result{Job: job, Err: err}
				return
			}
			results[i] = r.RunOne(ctx, job)
		})
		if err != nil {
			wg.Done()
			results[i] = Result{Job: job, Err: fmt.Errorf("submit run: %w", err)}
		}
	}
	wg.Wait()

	r.logger.Info("batch finished", "runs", len(jobs), "workers", r.workers)
	return results, nil
}
