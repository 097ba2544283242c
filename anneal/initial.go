package anneal

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/tspsearch/problem"
)

// Construct builds a starting open tour for p with the given method.
//
//   - Random: uniformly shuffled permutation.
//   - NearestNeighbor: uniformly random start city, then repeatedly the nearest
//     unvisited city by outgoing distance; ties go to the lowest index.
//
// Complexity: O(n) for Random, O(n²) for NearestNeighbor.
func Construct(p *problem.Problem, method InitialMethod, rng *rand.Rand) ([]int, error) {
	if p == nil {
		return nil, problem.ErrNilProblem
	}
	m, err := ParseInitialMethod(string(method))
	if err != nil {
		return nil, err
	}

	switch m {
	case NearestNeighbor:
		return nearestNeighbor(p, rng.Intn(p.Cities())), nil
	default:
		perm := identity(p.Cities())
		shuffleInPlace(perm, rng)
		return perm, nil
	}
}

// nearestNeighbor walks greedily from start.
func nearestNeighbor(p *problem.Problem, start int) []int {
	var (
		n       = p.Cities()
		visited = make([]bool, n)
		path    = make([]int, 0, n)
		cur     = start
		step    int
		j       int
		next    int
		best    int
		d       int
	)
	path = append(path, cur)
	visited[cur] = true

	for step = 1; step < n; step++ {
		next, best = -1, math.MaxInt
		for j = 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if d = p.Distance(cur, j); next < 0 || d < best {
				next, best = j, d
			}
		}
		cur = next
		path = append(path, cur)
		visited[cur] = true
	}

	return path
}
