package bench

import (
	"time"

	"github.com/katalvlaran/tspsearch/problem"
	"github.com/katalvlaran/tspsearch/solver"
)

// SetSolve replaces the engine entry point.
func (r *Runner) SetSolve(fn func(*problem.Problem, solver.Config) (solver.Result, error)) {
	r.solve = fn
}

// SetClock replaces time.Now.
func (r *Runner) SetClock(now func() time.Time) { r.now = now }
