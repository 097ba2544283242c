// Package bench repeats engine runs over a suite of instances and aggregates
// the outcomes.
//
// For every instance the Runner performs Runs independent solves, measures
// each one, computes the relative error against a known optimum
//
//	error% = (found - optimal) / optimal * 100
//
// and keeps the best tour seen across the runs. Per-run results and the
// per-instance summary are streamed to an optional Sink as they are produced,
// so a long benchmark leaves a usable partial report if it is interrupted.
package bench

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/katalvlaran/tspsearch/bnb"
	"github.com/katalvlaran/tspsearch/problem"
	"github.com/katalvlaran/tspsearch/solver"
)

// ErrNoInstances is returned by Run for an empty suite.
var ErrNoInstances = errors.New("bench: no instances")

// Instance is one problem of the suite together with its engine configuration.
type Instance struct {
	Name    string
	Problem *problem.Problem
	// Optimal is the known optimum; 0 disables relative error and early exit.
	Optimal int
	Config  solver.Config
}

// Run is the outcome of a single solve.
type Run struct {
	// Index is 1-based.
	Index   int
	Cost    int
	Tour    []int
	Elapsed time.Duration
	// RelativeError is NaN when the optimum is unknown.
	RelativeError float64
	// Note carries the stop reason or a soft-limit warning.
	Note string
}

// Summary aggregates the runs of one instance.
type Summary struct {
	Session   uuid.UUID
	Instance  string
	Algorithm solver.Algorithm
	Cities    int
	Optimal   int
	Runs      []Run
	Best      Run

	MeanError   float64
	StdDevError float64
	MinError    float64
	MaxError    float64

	MeanElapsed   time.Duration
	StdDevElapsed time.Duration
	MinElapsed    time.Duration
	MaxElapsed    time.Duration
}

// Sink receives results while a benchmark progresses.
type Sink interface {
	WriteRun(session uuid.UUID, in Instance, run Run) error
	WriteSummary(s Summary) error
}

// Runner executes benchmark suites.
type Runner struct {
	Runs   int
	Logger *log.Logger
	Sink   Sink
	// Progress, if set, is called after every run with the number of
	// completed runs and the total for the whole suite.
	Progress func(done, total int)

	session uuid.UUID
	solve   func(*problem.Problem, solver.Config) (solver.Result, error)
	now     func() time.Time
}

// NewRunner returns a Runner with a fresh session identifier. A nil logger
// falls back to log.Default(); runs < 1 becomes 1.
func NewRunner(runs int, logger *log.Logger, sink Sink) *Runner {
	if runs < 1 {
		runs = 1
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		Runs:    runs,
		Logger:  logger,
		Sink:    sink,
		session: uuid.New(),
		solve:   solver.Solve,
		now:     time.Now,
	}
}

// Session identifies every record produced by this Runner.
func (r *Runner) Session() uuid.UUID { return r.session }

// RelativeError returns (found-optimal)/optimal*100, or NaN if optimal <= 0.
func RelativeError(found, optimal int) float64 {
	if optimal <= 0 {
		return math.NaN()
	}

	return float64(found-optimal) / float64(optimal) * 100
}

// Run benchmarks every instance in order. The context is checked between
// runs; a cancelled benchmark returns the summaries completed so far together
// with ctx.Err().
func (r *Runner) Run(ctx context.Context, instances []Instance) ([]Summary, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}

	var (
		total     = r.Runs * len(instances)
		done      int
		summaries = make([]Summary, 0, len(instances))
	)
	for _, in := range instances {
		if in.Problem == nil {
			return summaries, errors.Wrapf(problem.ErrNilProblem, "bench: instance %q", in.Name)
		}
		r.Logger.Info("benchmarking instance",
			"instance", in.Name,
			"cities", in.Problem.Cities(),
			"algorithm", in.Config.Algorithm,
			"optimal", in.Optimal,
			"runs", r.Runs)

		runs := make([]Run, 0, r.Runs)
		for i := 1; i <= r.Runs; i++ {
			if err := ctx.Err(); err != nil {
				return summaries, err
			}
			run, err := r.runOnce(in, i)
			if err != nil {
				return summaries, errors.Wrapf(err, "bench: %s run %d", in.Name, i)
			}
			runs = append(runs, run)

			r.Logger.Debug("run finished",
				"instance", in.Name,
				"run", i,
				"cost", run.Cost,
				"error%", run.RelativeError,
				"elapsed", run.Elapsed)
			if r.Sink != nil {
				if err := r.Sink.WriteRun(r.session, in, run); err != nil {
					return summaries, errors.Wrap(err, "bench: write run")
				}
			}
			done++
			if r.Progress != nil {
				r.Progress(done, total)
			}
		}

		s := r.summarize(in, runs)
		summaries = append(summaries, s)
		r.Logger.Info("instance done",
			"instance", in.Name,
			"best", s.Best.Cost,
			"mean_error%", s.MeanError,
			"mean_elapsed", s.MeanElapsed)
		if r.Sink != nil {
			if err := r.Sink.WriteSummary(s); err != nil {
				return summaries, errors.Wrap(err, "bench: write summary")
			}
		}
	}

	return summaries, nil
}

func (r *Runner) runOnce(in Instance, index int) (Run, error) {
	cfg := in.Config
	if cfg.Annealing.Seed != 0 {
		// Distinct but reproducible seeds per run.
		cfg.Annealing.Seed += int64(index - 1)
	}
	if in.Optimal > 0 && !cfg.Annealing.HasTarget {
		cfg.Annealing.Target, cfg.Annealing.HasTarget = in.Optimal, true
	}

	start := r.now()
	res, err := r.solve(in.Problem, cfg)
	elapsed := r.now().Sub(start)

	run := Run{Index: index, Elapsed: elapsed}
	switch {
	case err == nil:
	case errors.Is(err, bnb.ErrTimeLimit) && res.Tour != nil:
		run.Note = "time limit"
		r.Logger.Warn("time limit reached, keeping incumbent", "instance", in.Name, "run", index, "cost", res.Cost)
	default:
		return Run{}, err
	}

	run.Cost = res.Cost
	run.Tour = res.Tour
	run.RelativeError = RelativeError(res.Cost, in.Optimal)
	if res.Heuristic != nil && run.Note == "" {
		run.Note = res.Heuristic.Reason.String()
	}

	return run, nil
}

func (r *Runner) summarize(in Instance, runs []Run) Summary {
	s := Summary{
		Session:   r.session,
		Instance:  in.Name,
		Algorithm: in.Config.Algorithm,
		Cities:    in.Problem.Cities(),
		Optimal:   in.Optimal,
		Runs:      runs,
	}

	errs := make(stats.Float64Data, 0, len(runs))
	times := make(stats.Float64Data, 0, len(runs))
	for i, run := range runs {
		if i == 0 || run.Cost < s.Best.Cost {
			s.Best = run
		}
		if !math.IsNaN(run.RelativeError) {
			errs = append(errs, run.RelativeError)
		}
		times = append(times, float64(run.Elapsed))
	}

	if len(errs) == 0 {
		nan := math.NaN()
		s.MeanError, s.StdDevError, s.MinError, s.MaxError = nan, nan, nan, nan
	} else {
		s.MeanError = aggregate(errs.Mean)
		s.StdDevError = aggregate(errs.StandardDeviation)
		s.MinError = aggregate(errs.Min)
		s.MaxError = aggregate(errs.Max)
	}
	s.MeanElapsed = time.Duration(aggregate(times.Mean))
	s.StdDevElapsed = time.Duration(aggregate(times.StandardDeviation))
	s.MinElapsed = time.Duration(aggregate(times.Min))
	s.MaxElapsed = time.Duration(aggregate(times.Max))

	return s
}

// aggregate discards the error stats returns for empty input; callers only
// aggregate non-empty data.
func aggregate(fn func() (float64, error)) float64 {
	v, err := fn()
	if err != nil {
		return math.NaN()
	}

	return v
}
