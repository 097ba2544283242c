// Package bnb implements exhaustive branch-and-bound search for the
// asymmetric TSP with three interchangeable traversal disciplines.
//
// The algorithm is written once and parameterized by a frontier.Frontier:
//
//	BreadthFirst → frontier.Queue      (FIFO)
//	DepthFirst   → frontier.Stack      (LIFO)
//	LowestCost   → frontier.PriorityQueue keyed by accumulated cost
//
// Search:
//  1. Seed the frontier with the root: city 0, path [0], cost 0.
//  2. Pop a node. If its path covers all N cities, close it with d(city, 0);
//     a strictly cheaper total becomes the new incumbent.
//  3. Otherwise, for each unvisited city v in ascending index order, compute
//     next = cost + d(city, v) and push a child only if next < incumbent.
//  4. Stop when the frontier is empty.
//
// The bound is the incumbent itself: since weights are non-negative a partial
// cost never decreases along a path, so any prefix already at or above the
// incumbent cannot complete into a better tour. The same test is re-applied
// when a node is popped, since the incumbent may have improved while it waited.
//
// Nodes are immutable and linked to their parent, so a child costs O(1) to
// create regardless of depth; the visited set of a popped node is rebuilt by
// walking its parent chain (O(depth)) into a reusable mask.
//
// Complexity: worst case O(N!) nodes for every discipline. DepthFirst keeps
// the frontier at O(N²); BreadthFirst may hold an exponential layer; LowestCost
// pays O(log F) per frontier operation and usually tightens the incumbent first.
package bnb

import (
	"math"
	"time"

	"github.com/katalvlaran/tspsearch/frontier"
	"github.com/katalvlaran/tspsearch/problem"
)

// deadlineStride is the number of expansions between wall-clock checks.
const deadlineStride = 1024

// node is one partial tour. It is never modified after creation.
type node struct {
	parent *node
	city   int
	depth  int // number of cities on the path, root == 1
	cost   int // sum of edges along the path
}

// engine holds the per-call search state.
type engine struct {
	p *problem.Problem
	n int

	prune       bool
	useDeadline bool
	deadline    time.Time
	timedOut    bool

	visited []bool // scratch mask for the node being expanded

	best     int
	bestNode *node

	stats       Stats
	onIncumbent func(cost int)
}

// newFrontier builds the container for s.
func newFrontier(s Strategy) (frontier.Frontier[*node], error) {
	switch s {
	case BreadthFirst:
		return frontier.NewQueue[*node](), nil
	case DepthFirst:
		return frontier.NewStack[*node](), nil
	case LowestCost:
		return frontier.NewPriorityQueue(func(a, b *node) bool { return a.cost < b.cost }), nil
	default:
		return nil, ErrUnknownStrategy
	}
}

// deadlineReached performs the sparse time test.
func (e *engine) deadlineReached() bool {
	if !e.useDeadline || e.stats.Expanded%deadlineStride != 0 {
		return false
	}

	return time.Now().After(e.deadline)
}

// bound returns the value partial costs must stay strictly below.
func (e *engine) bound() int {
	if !e.prune {
		return math.MaxInt
	}

	return e.best
}

// mark sets visited[c] = on for every city on nd's path.
func (e *engine) mark(nd *node, on bool) {
	for ; nd != nil; nd = nd.parent {
		e.visited[nd.city] = on
	}
}

// complete closes a full-length node and records it if it improves the incumbent.
func (e *engine) complete(nd *node) {
	e.stats.Completed++
	total := nd.cost + e.p.Distance(nd.city, 0)
	if total >= e.best {
		return
	}
	e.best = total
	e.bestNode = nd
	e.stats.Improvements++
	if e.onIncumbent != nil {
		e.onIncumbent(total)
	}
}

// expand pushes every admissible child of nd.
func (e *engine) expand(f frontier.Frontier[*node], nd *node) {
	e.mark(nd, true)

	var (
		v     int
		next  int
		limit = e.bound()
	)
	for v = 0; v < e.n; v++ {
		if e.visited[v] {
			continue
		}
		next = nd.cost + e.p.Distance(nd.city, v)
		if next >= limit {
			e.stats.Pruned++
			continue
		}
		f.Push(&node{parent: nd, city: v, depth: nd.depth + 1, cost: next})
		e.stats.Generated++
	}

	e.mark(nd, false)
}

// run drives the frontier until it empties or the deadline passes.
func (e *engine) run(f frontier.Frontier[*node]) error {
	f.Push(&node{city: 0, depth: 1})
	e.stats.PeakFrontier = 1

	var (
		nd  *node
		err error
	)
	for !f.IsEmpty() {
		if e.deadlineReached() {
			e.timedOut = true
			return nil
		}
		if nd, err = f.Pop(); err != nil {
			return err
		}
		e.stats.Expanded++

		if nd.cost >= e.bound() {
			e.stats.Pruned++
			continue
		}
		if nd.depth == e.n {
			e.complete(nd)
			continue
		}
		e.expand(f, nd)
		if l := f.Len(); l > e.stats.PeakFrontier {
			e.stats.PeakFrontier = l
		}
	}

	return nil
}

// path materializes the incumbent as a closed tour starting at city 0.
func (e *engine) path() []int {
	out := make([]int, e.n+1)
	for nd := e.bestNode; nd != nil; nd = nd.parent {
		out[nd.depth-1] = nd.city
	}
	out[e.n] = 0

	return out
}

// Solve runs branch-and-bound on p with the discipline selected in opts and
// returns the cheapest closed tour through city 0.
//
// Errors:
//   - problem.ErrNilProblem if p is nil.
//   - ErrUnknownStrategy for an out-of-range opts.Strategy.
//   - ErrTimeLimit if opts.TimeLimit expired; Result holds the incumbent when
//     one was found (Tour == nil otherwise).
//   - ErrNoTour if no tour was completed.
//
// All three strategies return the same optimal Cost; the tour itself may
// differ when several optima exist.
func Solve(p *problem.Problem, opts Options) (Result, error) {
	if p == nil {
		return Result{}, problem.ErrNilProblem
	}
	f, err := newFrontier(opts.Strategy)
	if err != nil {
		return Result{}, err
	}

	var (
		start = time.Now()
		e     = engine{
			p:           p,
			n:           p.Cities(),
			prune:       !opts.DisablePruning,
			visited:     make([]bool, p.Cities()),
			best:        math.MaxInt,
			onIncumbent: opts.OnIncumbent,
		}
	)
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = start.Add(opts.TimeLimit)
	}

	if err = e.run(f); err != nil {
		return Result{}, err
	}

	res := Result{Strategy: opts.Strategy, Stats: e.stats, Elapsed: time.Since(start)}
	if e.bestNode != nil {
		res.Tour = e.path()
		res.Cost = e.best
	}
	switch {
	case e.timedOut:
		return res, ErrTimeLimit
	case e.bestNode == nil:
		return res, ErrNoTour
	}

	return res, nil
}
