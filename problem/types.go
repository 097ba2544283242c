// Package problem holds the immutable distance model consumed by every solver.
//
// A Problem is an N×N matrix of non-negative integer distances between cities.
// The matrix is asymmetric in general (d(i,j) need not equal d(j,i)); the
// diagonal is carried as-is and never read by the solvers.
//
// Storage is a single row-major []int buffer so that Distance is a single
// multiply-add and an index, which matters in the solvers' hot loops.
//
// A Problem is never mutated after construction and may be shared read-only
// by any number of solver invocations.
package problem

import (
	"errors"
	"fmt"
)

// Sentinel errors for model construction and loading.
var (
	// ErrNilProblem is returned by consumers handed a nil *Problem.
	ErrNilProblem = errors.New("problem: nil problem")

	// ErrEmpty is returned when the matrix has no cities.
	ErrEmpty = errors.New("problem: empty distance matrix")

	// ErrNonSquare is returned when some row length differs from the row count.
	ErrNonSquare = errors.New("problem: distance matrix is not square")

	// ErrNegativeWeight is returned for any negative off-diagonal distance.
	ErrNegativeWeight = errors.New("problem: negative distance")

	// ErrFileFormat is returned (wrapped with detail) on malformed input files.
	ErrFileFormat = errors.New("problem: malformed matrix input")
)

// Problem is an immutable asymmetric TSP instance.
type Problem struct {
	name string
	n    int
	w    []int // w[i*n+j] = distance i→j
}

// New builds a Problem from a square matrix. The rows are copied, so the
// caller may reuse them afterwards.
//
// Contract:
//   - len(rows) ≥ 1 and every row has len(rows) entries.
//   - Off-diagonal entries are ≥ 0. Diagonal entries are kept but never used.
//
// Complexity: O(n²) time and space.
func New(rows [][]int) (*Problem, error) {
	return NewNamed("", rows)
}

// NewNamed is New with an instance name attached (e.g. "ftv47").
func NewNamed(name string, rows [][]int) (*Problem, error) {
	var n = len(rows)
	if n == 0 {
		return nil, ErrEmpty
	}

	var (
		w    = make([]int, n*n)
		i, j int
	)
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrNonSquare, i, len(rows[i]), n)
		}
		for j = 0; j < n; j++ {
			if i != j && rows[i][j] < 0 {
				return nil, fmt.Errorf("%w: d(%d,%d)=%d", ErrNegativeWeight, i, j, rows[i][j])
			}
			w[i*n+j] = rows[i][j]
		}
	}

	return &Problem{name: name, n: n, w: w}, nil
}

// Cities returns the number of cities N.
func (p *Problem) Cities() int { return p.n }

// Name returns the instance name, or "" when none was given.
func (p *Problem) Name() string { return p.name }

// Distance returns the distance from city i to city j.
// Precondition: 0 ≤ i, j < Cities(). Violations are programming errors and
// are not checked beyond Go's own slice bounds.
func (p *Problem) Distance(i, j int) int { return p.w[i*p.n+j] }

// Symmetric reports whether d(i,j) == d(j,i) for every pair i≠j.
//
// Complexity: O(n²).
func (p *Problem) Symmetric() bool {
	var i, j int
	for i = 0; i < p.n; i++ {
		for j = i + 1; j < p.n; j++ {
			if p.w[i*p.n+j] != p.w[j*p.n+i] {
				return false
			}
		}
	}

	return true
}
