// Package bnb - options, results and sentinels for the branch-and-bound engine.
package bnb

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors.
var (
	// ErrUnknownStrategy is returned by ParseStrategy and Solve for names or
	// values outside the three supported disciplines.
	ErrUnknownStrategy = errors.New("bnb: unknown traversal strategy")

	// ErrNoTour is returned when the frontier empties without any complete tour.
	// With non-negative weights and an initially unbounded incumbent this is
	// unreachable for N ≥ 1; the sentinel exists so callers never receive an
	// empty tour silently.
	ErrNoTour = errors.New("bnb: search finished without a complete tour")

	// ErrTimeLimit is returned when Options.TimeLimit expires before the
	// frontier empties. The accompanying Result carries the incumbent, if any.
	ErrTimeLimit = errors.New("bnb: time limit reached")
)

// Strategy selects the frontier discipline, and with it the traversal order.
type Strategy int

const (
	// BreadthFirst expands nodes in FIFO order.
	BreadthFirst Strategy = iota
	// DepthFirst expands nodes in LIFO order.
	DepthFirst
	// LowestCost expands the node with the smallest accumulated cost first.
	LowestCost
)

// String returns the canonical name used by ParseStrategy.
func (s Strategy) String() string {
	switch s {
	case BreadthFirst:
		return "bfs"
	case DepthFirst:
		return "dfs"
	case LowestCost:
		return "lowest-cost"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a case-insensitive name to a Strategy. Accepted names:
// "bfs", "breadth-first", "dfs", "depth-first", "lowest-cost", "lowestcost",
// "best-first". Anything else yields ErrUnknownStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first", "breadthfirst":
		return BreadthFirst, nil
	case "dfs", "depth-first", "depthfirst":
		return DepthFirst, nil
	case "lowest-cost", "lowestcost", "best-first", "bestfirst", "lc":
		return LowestCost, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Options configures a single Solve call.
type Options struct {
	// Strategy picks the frontier discipline.
	Strategy Strategy

	// DisablePruning keeps the incumbent bound at +∞ for pruning purposes, so
	// every partial tour is enumerated. Used to cross-check pruning soundness.
	DisablePruning bool

	// TimeLimit, if > 0, is a soft wall-clock budget checked every
	// deadlineStride node expansions. Zero means unlimited.
	TimeLimit time.Duration

	// OnIncumbent, if non-nil, is called each time a strictly better complete
	// tour is recorded, with its cost.
	OnIncumbent func(cost int)
}

// DefaultOptions returns lowest-cost traversal with pruning and no time limit.
func DefaultOptions() Options {
	return Options{Strategy: LowestCost}
}

// Stats summarizes the work done by a search.
type Stats struct {
	// Expanded counts nodes popped from the frontier.
	Expanded int
	// Generated counts child nodes pushed onto the frontier (root excluded).
	Generated int
	// Pruned counts children rejected by the bound plus popped nodes whose
	// cost had already reached the incumbent.
	Pruned int
	// Completed counts popped nodes that visited every city.
	Completed int
	// Improvements counts incumbent updates.
	Improvements int
	// PeakFrontier is the largest frontier size observed.
	PeakFrontier int
}

// Result is the outcome of a branch-and-bound search.
type Result struct {
	// Tour is closed at city 0: len == N+1, Tour[0] == Tour[N] == 0.
	Tour []int
	// Cost is the total cycle length of Tour.
	Cost int
	// Strategy echoes the discipline used.
	Strategy Strategy
	// Stats reports search effort.
	Stats Stats
	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration
}
