// Package anneal implements simulated annealing for the asymmetric TSP.
//
// A run moves through: construct a starting tour → iterate → stop on the
// first of {time budget spent, temperature ≤ MinTemperature, MaxIterations
// reached, target distance hit}.
//
// One iteration:
//  1. Neighbor: copy the current tour and swap two positions drawn uniformly
//     at random (equal positions give an unchanged tour).
//  2. Evaluate the candidate with tour.Cost (closed-cycle length).
//  3. Accept an improving candidate unconditionally; accept a worse one when a
//     uniform draw in [0,1) is below exp((current-candidate)/T).
//  4. If the current tour is now strictly better than the best, record it.
//     Best tracking is independent of acceptance, so accepting a worse move
//     never regresses the reported best.
//  5. Cool: T ← schedule.Next(T, k) where k counts completed iterations.
//  6. If a target was supplied and the current distance equals it, stop.
//
// Complexity: O(N) per iteration (tour copy + full evaluation).
package anneal

import (
	"math/rand"
	"time"

	"github.com/katalvlaran/tspsearch/problem"
	"github.com/katalvlaran/tspsearch/tour"
)

// Option tunes a single run.
type Option func(*runOptions)

type runOptions struct {
	rng       *rand.Rand
	seed      int64
	seeded    bool
	target    int
	hasTarget bool
	observer  func(Snapshot)
	now       func() time.Time
}

// WithRand supplies the generator for every random decision. It takes
// precedence over WithSeed; Result.Seed is then reported as 0.
func WithRand(r *rand.Rand) Option {
	return func(o *runOptions) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithSeed makes the run reproducible.
func WithSeed(seed int64) Option {
	return func(o *runOptions) {
		o.seed = seed
		o.seeded = true
	}
}

// WithTarget enables early exit once the current distance equals target
// (typically a known optimum, for benchmarking).
func WithTarget(target int) Option {
	return func(o *runOptions) {
		o.target = target
		o.hasTarget = true
	}
}

// WithObserver registers a callback invoked after every iteration.
func WithObserver(fn func(Snapshot)) Option {
	return func(o *runOptions) {
		o.observer = fn
	}
}

// WithClock replaces time.Now for budget accounting.
func WithClock(now func() time.Time) Option {
	return func(o *runOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// state is the mutable SA state of one run.
type state struct {
	current     []int
	candidate   []int
	best        []int
	currentDist int
	bestDist    int
	temperature float64
}

// Solve runs simulated annealing on p.
//
// Errors:
//   - problem.ErrNilProblem if p is nil.
//   - ErrInvalidConfiguration (wrapped) if cfg fails Validate.
//
// The returned tour is open; Result.Distance == tour.Cost(p, Result.Tour).
func Solve(p *problem.Problem, cfg Config, opts ...Option) (Result, error) {
	if p == nil {
		return Result{}, problem.ErrNilProblem
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	schedule, err := NewSchedule(cfg)
	if err != nil {
		return Result{}, err
	}

	o := runOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	var res Result
	if o.rng == nil {
		if !o.seeded {
			o.seed = clockSeed()
		}
		o.rng = newRand(o.seed)
		res.Seed = o.seed
	}

	start := o.now()
	initial, err := Construct(p, cfg.InitialSolution, o.rng)
	if err != nil {
		return Result{}, err
	}

	var (
		n  = p.Cities()
		st = state{
			current:     initial,
			candidate:   make([]int, n),
			best:        tour.Copy(initial),
			temperature: cfg.InitialTemperature,
		}
		i, j     int
		newDist  int
		accepted bool
	)
	st.currentDist = tour.Cost(p, st.current)
	st.bestDist = st.currentDist
	res.InitialDistance = st.currentDist

	if o.hasTarget && st.currentDist == o.target {
		res.Reason = StopTarget
		return finish(res, st, o, start), nil
	}

	for {
		if reason, stop := shouldStop(cfg, res.Iterations, st.temperature, o.now().Sub(start)); stop {
			res.Reason = reason
			break
		}

		copy(st.candidate, st.current)
		i, j = o.rng.Intn(n), o.rng.Intn(n)
		st.candidate[i], st.candidate[j] = st.candidate[j], st.candidate[i]
		newDist = tour.Cost(p, st.candidate)

		accepted = newDist < st.currentDist ||
			o.rng.Float64() < AcceptanceProbability(st.currentDist, newDist, st.temperature)
		if accepted {
			st.current, st.candidate = st.candidate, st.current
			st.currentDist = newDist
			res.Accepted++
		}
		if st.currentDist < st.bestDist {
			copy(st.best, st.current)
			st.bestDist = st.currentDist
			res.Improvements++
		}

		res.Iterations++
		st.temperature = schedule.Next(st.temperature, res.Iterations)

		if o.observer != nil {
			o.observer(Snapshot{
				Iteration:   res.Iterations,
				Temperature: st.temperature,
				Candidate:   newDist,
				Current:     st.currentDist,
				Best:        st.bestDist,
				Accepted:    accepted,
			})
		}
		if o.hasTarget && st.currentDist == o.target {
			res.Reason = StopTarget
			break
		}
	}

	return finish(res, st, o, start), nil
}

// shouldStop evaluates the budget conditions in a fixed order.
func shouldStop(cfg Config, iterations int, temperature float64, elapsed time.Duration) (StopReason, bool) {
	switch {
	case cfg.StopTime > 0 && elapsed >= cfg.StopTime:
		return StopTime, true
	case cfg.MaxIterations > 0 && iterations >= cfg.MaxIterations:
		return StopIterations, true
	case cfg.MinTemperature > 0 && temperature <= cfg.MinTemperature:
		return StopTemperature, true
	}

	return 0, false
}

// finish copies the best state into res.
func finish(res Result, st state, o runOptions, start time.Time) Result {
	res.Tour = st.best
	res.Distance = st.bestDist
	res.FinalTemperature = st.temperature
	res.Elapsed = o.now().Sub(start)

	return res
}
