// Package solver is the unified entry point over both engine families.
//
// Every engine is reached through one signature,
//
//	Solve(p *problem.Problem, cfg Config) (Result, error)
//
// where Config is a tagged variant: Algorithm selects the engine, and only
// the parameter block belonging to that engine is read. Results are
// normalized so callers never care which family produced them:
//
//   - Tour is closed at city 0 (len N+1, Tour[0] == Tour[N] == 0).
//   - Cost is the cycle length of Tour.
//   - Elapsed is the wall-clock time spent inside the engine.
//
// The package performs no I/O and no logging.
package solver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/tspsearch/anneal"
	"github.com/katalvlaran/tspsearch/bnb"
	"github.com/katalvlaran/tspsearch/problem"
	"github.com/katalvlaran/tspsearch/tour"
)

// ErrUnsupportedAlgorithm is returned for an unknown Algorithm tag or name.
var ErrUnsupportedAlgorithm = errors.New("solver: unsupported algorithm")

// Algorithm tags the Config variant.
type Algorithm int

const (
	// BreadthFirst is exhaustive branch-and-bound with a FIFO frontier.
	BreadthFirst Algorithm = iota
	// DepthFirst is exhaustive branch-and-bound with a LIFO frontier.
	DepthFirst
	// LowestCost is exhaustive branch-and-bound with a min-cost frontier.
	LowestCost
	// SimulatedAnnealing is the stochastic metaheuristic.
	SimulatedAnnealing
)

// String returns the canonical name accepted by ParseAlgorithm.
func (a Algorithm) String() string {
	switch a {
	case BreadthFirst:
		return "bfs"
	case DepthFirst:
		return "dfs"
	case LowestCost:
		return "lowest-cost"
	case SimulatedAnnealing:
		return "sa"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Exact reports whether the algorithm is one of the branch-and-bound variants.
func (a Algorithm) Exact() bool { return a == BreadthFirst || a == DepthFirst || a == LowestCost }

// ParseAlgorithm maps a case-insensitive name to an Algorithm. Branch-and-bound
// names follow bnb.ParseStrategy; annealing accepts "sa",
// "simulated-annealing" and "annealing".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sa", "simulated-annealing", "simulatedannealing", "annealing":
		return SimulatedAnnealing, nil
	}
	s, err := bnb.ParseStrategy(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}

	return fromStrategy(s), nil
}

func fromStrategy(s bnb.Strategy) Algorithm {
	switch s {
	case bnb.DepthFirst:
		return DepthFirst
	case bnb.LowestCost:
		return LowestCost
	default:
		return BreadthFirst
	}
}

func (a Algorithm) strategy() bnb.Strategy {
	switch a {
	case DepthFirst:
		return bnb.DepthFirst
	case LowestCost:
		return bnb.LowestCost
	default:
		return bnb.BreadthFirst
	}
}

// BranchAndBound holds the parameters read by the exact variants.
type BranchAndBound struct {
	// DisablePruning enumerates every partial tour.
	DisablePruning bool
	// TimeLimit is a soft budget; 0 means unlimited.
	TimeLimit time.Duration
	// OnIncumbent observes incumbent improvements.
	OnIncumbent func(cost int)
}

// Annealing holds the parameters read by SimulatedAnnealing.
type Annealing struct {
	anneal.Config

	// Seed, if non-zero, makes the run reproducible.
	Seed int64
	// Target, if HasTarget, enables early exit at that distance.
	Target    int
	HasTarget bool
	// Observer is forwarded to anneal.WithObserver.
	Observer func(anneal.Snapshot)
}

// Config is the tagged variant consumed by Solve.
type Config struct {
	Algorithm      Algorithm
	BranchAndBound BranchAndBound
	Annealing      Annealing
}

// Result is the engine-independent outcome.
type Result struct {
	Algorithm Algorithm
	// Tour is closed at city 0.
	Tour []int
	// Cost is the cycle length of Tour.
	Cost int
	// Elapsed is the engine's wall-clock time.
	Elapsed time.Duration

	// Exact is filled for branch-and-bound runs.
	Exact *bnb.Result
	// Heuristic is filled for annealing runs.
	Heuristic *anneal.Result
}

// Solve validates p and dispatches on cfg.Algorithm.
//
// Errors: problem.ErrNilProblem, ErrUnsupportedAlgorithm, and whatever the
// selected engine returns (bnb.ErrTimeLimit, bnb.ErrNoTour,
// anneal.ErrInvalidConfiguration). On bnb.ErrTimeLimit with an incumbent the
// Result is populated alongside the error.
func Solve(p *problem.Problem, cfg Config) (Result, error) {
	if p == nil {
		return Result{}, problem.ErrNilProblem
	}

	switch cfg.Algorithm {
	case BreadthFirst, DepthFirst, LowestCost:
		return solveExact(p, cfg)
	case SimulatedAnnealing:
		return solveAnnealing(p, cfg.Annealing)
	default:
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}
}

func solveExact(p *problem.Problem, cfg Config) (Result, error) {
	res, err := bnb.Solve(p, bnb.Options{
		Strategy:       cfg.Algorithm.strategy(),
		DisablePruning: cfg.BranchAndBound.DisablePruning,
		TimeLimit:      cfg.BranchAndBound.TimeLimit,
		OnIncumbent:    cfg.BranchAndBound.OnIncumbent,
	})
	if res.Tour == nil {
		return Result{}, err
	}

	return Result{
		Algorithm: cfg.Algorithm,
		Tour:      res.Tour,
		Cost:      res.Cost,
		Elapsed:   res.Elapsed,
		Exact:     &res,
	}, err
}

func solveAnnealing(p *problem.Problem, a Annealing) (Result, error) {
	var opts []anneal.Option
	if a.Seed != 0 {
		opts = append(opts, anneal.WithSeed(a.Seed))
	}
	if a.HasTarget {
		opts = append(opts, anneal.WithTarget(a.Target))
	}
	if a.Observer != nil {
		opts = append(opts, anneal.WithObserver(a.Observer))
	}

	res, err := anneal.Solve(p, a.Config, opts...)
	if err != nil {
		return Result{}, err
	}
	closed, err := tour.Close(res.Tour, 0)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Algorithm: SimulatedAnnealing,
		Tour:      closed,
		Cost:      res.Distance,
		Elapsed:   res.Elapsed,
		Heuristic: &res,
	}, nil
}
