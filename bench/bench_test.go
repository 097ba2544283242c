package bench_test

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/anneal"
	"github.com/katalvlaran/tspsearch/bench"
	"github.com/katalvlaran/tspsearch/bnb"
	"github.com/katalvlaran/tspsearch/problem"
	"github.com/katalvlaran/tspsearch/solver"
)

func square4(t *testing.T) *problem.Problem {
	t.Helper()
	p, err := problem.NewNamed("square4", [][]int{
		{0, 1, 2, 3},
		{1, 0, 4, 5},
		{2, 4, 0, 6},
		{3, 5, 6, 0},
	})
	require.NoError(t, err)

	return p
}

type memorySink struct {
	runs      []bench.Run
	summaries []bench.Summary
	session   uuid.UUID
}

func (m *memorySink) WriteRun(session uuid.UUID, _ bench.Instance, run bench.Run) error {
	m.session = session
	m.runs = append(m.runs, run)
	return nil
}

func (m *memorySink) WriteSummary(s bench.Summary) error {
	m.summaries = append(m.summaries, s)
	return nil
}

func quietLogger() *log.Logger { return log.New(&bytes.Buffer{}) }

func TestRelativeError(t *testing.T) {
	assert.InDelta(t, 0.0, bench.RelativeError(1776, 1776), 1e-12)
	assert.InDelta(t, 10.0, bench.RelativeError(110, 100), 1e-12)
	assert.InDelta(t, -50.0, bench.RelativeError(50, 100), 1e-12)
	assert.True(t, math.IsNaN(bench.RelativeError(10, 0)))
}

func TestRunner_ExactSuite(t *testing.T) {
	sink := &memorySink{}
	r := bench.NewRunner(3, quietLogger(), sink)

	var progress []int
	r.Progress = func(done, total int) {
		require.Equal(t, 6, total)
		progress = append(progress, done)
	}

	p := square4(t)
	summaries, err := r.Run(context.Background(), []bench.Instance{
		{Name: "a", Problem: p, Optimal: 14, Config: solver.Config{Algorithm: solver.BreadthFirst}},
		{Name: "b", Problem: p, Optimal: 7, Config: solver.Config{Algorithm: solver.LowestCost}},
	})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, progress)
	assert.Len(t, sink.runs, 6)
	assert.Len(t, sink.summaries, 2)
	assert.Equal(t, r.Session(), sink.session)

	a := summaries[0]
	assert.Equal(t, r.Session(), a.Session)
	assert.Equal(t, 4, a.Cities)
	assert.Equal(t, 14, a.Best.Cost)
	assert.Equal(t, 1, a.Best.Index)
	assert.InDelta(t, 0.0, a.MeanError, 1e-12)
	assert.InDelta(t, 0.0, a.StdDevError, 1e-12)
	for i, run := range a.Runs {
		assert.Equal(t, i+1, run.Index)
		assert.Len(t, run.Tour, 5)
	}

	// A deliberately wrong optimum shows up as a 100% error.
	assert.InDelta(t, 100.0, summaries[1].MeanError, 1e-12)
}

func TestRunner_UnknownOptimum(t *testing.T) {
	r := bench.NewRunner(2, quietLogger(), nil)
	summaries, err := r.Run(context.Background(), []bench.Instance{
		{Name: "a", Problem: square4(t), Config: solver.Config{Algorithm: solver.DepthFirst}},
	})
	require.NoError(t, err)
	s := summaries[0]
	assert.True(t, math.IsNaN(s.MeanError))
	assert.True(t, math.IsNaN(s.Best.RelativeError))
}

func TestRunner_AnnealingSeedsAndTarget(t *testing.T) {
	r := bench.NewRunner(4, quietLogger(), nil)

	var seeds []int64
	r.SetSolve(func(p *problem.Problem, cfg solver.Config) (solver.Result, error) {
		seeds = append(seeds, cfg.Annealing.Seed)
		require.True(t, cfg.Annealing.HasTarget)
		require.Equal(t, 14, cfg.Annealing.Target)
		return solver.Solve(p, cfg)
	})

	sa := anneal.DefaultConfig()
	sa.StopTime = 0
	sa.MaxIterations = 2000
	summaries, err := r.Run(context.Background(), []bench.Instance{{
		Name:    "sa",
		Problem: square4(t),
		Optimal: 14,
		Config: solver.Config{
			Algorithm: solver.SimulatedAnnealing,
			Annealing: solver.Annealing{Config: sa, Seed: 100},
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101, 102, 103}, seeds)
	// Every tour of square4 costs 14, so the initial tour already hits the target.
	for _, run := range summaries[0].Runs {
		assert.Equal(t, 14, run.Cost)
		assert.Equal(t, anneal.StopTarget.String(), run.Note)
	}
}

func TestRunner_TimingFromClock(t *testing.T) {
	r := bench.NewRunner(2, quietLogger(), nil)
	var tick time.Time
	r.SetClock(func() time.Time {
		tick = tick.Add(10 * time.Millisecond)
		return tick
	})
	summaries, err := r.Run(context.Background(), []bench.Instance{
		{Name: "a", Problem: square4(t), Config: solver.Config{Algorithm: solver.LowestCost}},
	})
	require.NoError(t, err)
	s := summaries[0]
	assert.Equal(t, 10*time.Millisecond, s.MeanElapsed)
	assert.Equal(t, 10*time.Millisecond, s.MinElapsed)
	assert.Equal(t, 10*time.Millisecond, s.MaxElapsed)
	assert.Equal(t, time.Duration(0), s.StdDevElapsed)
}

func TestRunner_TimeLimitKeepsIncumbent(t *testing.T) {
	r := bench.NewRunner(1, quietLogger(), nil)
	r.SetSolve(func(p *problem.Problem, cfg solver.Config) (solver.Result, error) {
		return solver.Result{Algorithm: cfg.Algorithm, Tour: []int{0, 1, 2, 3, 0}, Cost: 14}, bnb.ErrTimeLimit
	})
	summaries, err := r.Run(context.Background(), []bench.Instance{
		{Name: "a", Problem: square4(t), Config: solver.Config{Algorithm: solver.DepthFirst}},
	})
	require.NoError(t, err)
	assert.Equal(t, "time limit", summaries[0].Best.Note)
	assert.Equal(t, 14, summaries[0].Best.Cost)
}

func TestRunner_Errors(t *testing.T) {
	r := bench.NewRunner(0, nil, nil)
	assert.Equal(t, 1, r.Runs)

	_, err := r.Run(context.Background(), nil)
	require.ErrorIs(t, err, bench.ErrNoInstances)

	_, err = r.Run(context.Background(), []bench.Instance{{Name: "nil"}})
	require.ErrorIs(t, err, problem.ErrNilProblem)

	_, err = r.Run(context.Background(), []bench.Instance{
		{Name: "bad", Problem: square4(t), Config: solver.Config{Algorithm: solver.Algorithm(9)}},
	})
	require.ErrorIs(t, err, solver.ErrUnsupportedAlgorithm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, []bench.Instance{
		{Name: "a", Problem: square4(t), Config: solver.Config{Algorithm: solver.BreadthFirst}},
	})
	require.ErrorIs(t, err, context.Canceled)
}
