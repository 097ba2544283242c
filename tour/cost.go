// Package tour - cost evaluation shared by every solver.
//
// Two representations circulate in this module:
//
//   - open tours: a permutation of {0..n-1} of length n; the closing edge
//     tour[n-1]→tour[0] is implicit. Simulated annealing works on these.
//   - closed tours: length n+1 with tour[0]==tour[n]. Branch-and-bound
//     produces these, and the solver dispatcher normalizes everything to them.
//
// Cost evaluates an open tour, PathCost a closed one; for the same cycle
// both return the same value.
//
// Complexity: O(n) time, O(1) extra space.
package tour

import "github.com/katalvlaran/tspsearch/problem"

// Cost returns the total length of the cycle described by the open tour perm:
// the sum of d(perm[i], perm[i+1]) plus the closing d(perm[n-1], perm[0]).
//
// The caller guarantees that every index is a valid city; Cost is on the
// annealing hot path and performs no validation. An empty tour costs 0.
func Cost(p *problem.Problem, perm []int) int {
	var n = len(perm)
	if n == 0 {
		return 0
	}

	var (
		sum int
		i   int
	)
	for i = 0; i < n-1; i++ {
		sum += p.Distance(perm[i], perm[i+1])
	}
	sum += p.Distance(perm[n-1], perm[0])

	return sum
}

// PathCost returns the sum of d(path[i], path[i+1]) over consecutive pairs.
// For a closed tour (path[0]==path[n]) this is the cycle length.
func PathCost(p *problem.Problem, path []int) int {
	var (
		sum int
		i   int
	)
	for i = 0; i+1 < len(path); i++ {
		sum += p.Distance(path[i], path[i+1])
	}

	return sum
}
