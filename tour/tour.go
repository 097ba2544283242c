// Package tour - structural helpers over index sequences.
//
// Provided helpers:
//   - ValidatePermutation: verify an open tour over {0..n-1}.
//   - ValidateTour: verify a closed tour anchored at start.
//   - Close: rotate an open tour to start and append the closing vertex.
//   - Copy: independent copy.
//   - EqualModuloRotation: equality of closed tours up to rotation.
//   - String: compact "[0 3 1 2 | 0]" rendering.
//
// None of these touch distances; see cost.go for evaluation.
package tour

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for malformed tours.
var (
	// ErrNotPermutation reports a length mismatch, out-of-range city or repeat.
	ErrNotPermutation = errors.New("tour: not a permutation of all cities")

	// ErrStartOutOfRange reports a start vertex outside [0..n-1] or absent from the tour.
	ErrStartOutOfRange = errors.New("tour: start vertex out of range")

	// ErrNotClosed reports a closed tour whose ends differ from start.
	ErrNotClosed = errors.New("tour: tour is not closed at start")
)

// ValidatePermutation checks that perm is a permutation of {0..n-1}.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 || len(perm) != n {
		return ErrNotPermutation
	}
	seen := make([]bool, n)

	var v int
	for _, v = range perm {
		if v < 0 || v >= n || seen[v] {
			return ErrNotPermutation
		}
		seen[v] = true
	}

	return nil
}

// ValidateTour enforces closed-cycle invariants:
//
//	len(tour) == n+1, tour[0] == tour[n] == start,
//	tour[:n] is a permutation of {0..n-1}.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int, start int) error {
	if start < 0 || start >= n {
		return ErrStartOutOfRange
	}
	if len(tour) != n+1 {
		return ErrNotPermutation
	}
	if tour[0] != start || tour[n] != start {
		return ErrNotClosed
	}

	return ValidatePermutation(tour[:n], n)
}

// Close returns a fresh closed tour built from the open tour perm, rotated so
// it begins and ends at start.
//
// Complexity: O(n) time, O(n) space.
func Close(perm []int, start int) ([]int, error) {
	var n = len(perm)
	if err := ValidatePermutation(perm, n); err != nil {
		return nil, err
	}

	var (
		i     int
		pivot = -1
	)
	for i = 0; i < n; i++ {
		if perm[i] == start {
			pivot = i
			break
		}
	}
	if pivot < 0 {
		return nil, ErrStartOutOfRange
	}

	out := make([]int, n+1)
	for i = 0; i < n; i++ {
		out[i] = perm[(pivot+i)%n]
	}
	out[n] = start

	return out, nil
}

// Copy returns an independent copy of t (nil stays nil).
func Copy(t []int) []int {
	if t == nil {
		return nil
	}
	out := make([]int, len(t))
	copy(out, t)

	return out
}

// EqualModuloRotation reports whether two closed tours travel the same
// directed cycle. b may start from any city of a; direction matters.
func EqualModuloRotation(a, b []int) bool {
	if len(a) != len(b) || len(a) < 2 || a[0] != a[len(a)-1] || b[0] != b[len(b)-1] {
		return false
	}
	cycle := b[:len(b)-1]
	for shift, city := range cycle {
		if city != a[0] {
			continue
		}
		for k, want := range a[:len(a)-1] {
			if cycle[(shift+k)%len(cycle)] != want {
				return false
			}
		}
		return true
	}

	return false
}

// String renders a closed tour as "[0 3 1 2 | 0]"; the bar marks the closure.
// Open tours render without the bar, e.g. "[3 1 2 0]".
func String(t []int) string {
	if len(t) == 0 {
		return "[]"
	}
	var (
		sb     strings.Builder
		closed = len(t) >= 2 && t[0] == t[len(t)-1]
		body   = t
		i      int
	)
	if closed {
		body = t[:len(t)-1]
	}

	sb.WriteByte('[')
	for i = range body {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(body[i]))
	}
	if closed {
		sb.WriteString(" | ")
		sb.WriteString(strconv.Itoa(t[len(t)-1]))
	}
	sb.WriteByte(']')

	return sb.String()
}
