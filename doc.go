// Package tspsearch solves asymmetric travelling salesman instances, exactly
// with branch-and-bound or approximately with simulated annealing.
//
// 🚀 What is inside?
//
//	• problem/ : integer distance matrices, TSPLIB (EXPLICIT/FULL_MATRIX) and plain loaders
//	• tour/    : cycle cost evaluation, tour validation and formatting
//	• frontier/: generic FIFO queue, LIFO stack and binary min-heap
//	• bnb/     : branch-and-bound in breadth-first, depth-first and lowest-cost order
//	• anneal/  : simulated annealing with geometric or logarithmic cooling
//	• solver/  : one Solve entry point over every engine
//	• config/, bench/, report/: run configuration, repeated benchmarks, CSV reports
//
// The command-line front end lives in cmd/tspsearch.
//
// Quick example:
//
//	p, _ := problem.New([][]int{
//		{0, 1, 2, 3},
//		{1, 0, 4, 5},
//		{2, 4, 0, 6},
//		{3, 5, 6, 0},
//	})
//	res, _ := solver.Solve(p, solver.Config{Algorithm: solver.LowestCost})
//	fmt.Println(res.Cost, tour.String(res.Tour)) // 14 and a closed tour such as [0 1 2 3 | 0]
//
// Conventions shared by every package:
//
//   - Cities are 0..N-1; distances are non-negative ints, the diagonal is ignored.
//   - Exact engines and solver.Result return a closed tour starting and ending at 0.
//   - anneal.Result returns an open permutation; tour.Cost closes the cycle.
//   - Core packages never log and never panic on user input; they return
//     sentinel errors checkable with errors.Is.
package tspsearch
