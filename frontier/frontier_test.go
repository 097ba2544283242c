package frontier_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/frontier"
)

func intLess(a, b int) bool { return a < b }

func drain[T any](t *testing.T, f frontier.Frontier[T]) []T {
	t.Helper()
	var out []T
	for !f.IsEmpty() {
		v, err := f.Pop()
		require.NoError(t, err)
		out = append(out, v)
	}

	return out
}

func TestDisciplines_Order(t *testing.T) {
	in := []int{5, 1, 4, 2, 3}

	cases := []struct {
		name string
		f    frontier.Frontier[int]
		want []int
	}{
		{"fifo", frontier.NewQueue[int](), []int{5, 1, 4, 2, 3}},
		{"lifo", frontier.NewStack[int](), []int{3, 2, 4, 1, 5}},
		{"min-heap", frontier.NewPriorityQueue(intLess), []int{1, 2, 3, 4, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range in {
				tc.f.Push(v)
			}
			require.Equal(t, len(in), tc.f.Len())
			assert.Equal(t, tc.want, drain(t, tc.f))
			assert.Zero(t, tc.f.Len())
		})
	}
}

func TestDisciplines_EmptyPop(t *testing.T) {
	for name, f := range map[string]frontier.Frontier[string]{
		"fifo":     frontier.NewQueue[string](),
		"lifo":     frontier.NewStack[string](),
		"min-heap": frontier.NewPriorityQueue(func(a, b string) bool { return a < b }),
	} {
		t.Run(name, func(t *testing.T) {
			require.True(t, f.IsEmpty())
			_, err := f.Pop()
			require.ErrorIs(t, err, frontier.ErrEmpty)

			f.Push("x")
			v, err := f.Pop()
			require.NoError(t, err)
			require.Equal(t, "x", v)
			_, err = f.Pop()
			require.ErrorIs(t, err, frontier.ErrEmpty)
		})
	}
}

// TestQueue_Interleaved crosses the compaction threshold several times.
func TestQueue_Interleaved(t *testing.T) {
	q := frontier.NewQueue[int]()
	next, expect := 0, 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 7; i++ {
			q.Push(next)
			next++
		}
		for i := 0; i < 5; i++ {
			v, err := q.Pop()
			require.NoError(t, err)
			require.Equal(t, expect, v)
			expect++
		}
	}
	require.Equal(t, next-expect, q.Len())
	for _, v := range drain[int](t, q) {
		require.Equal(t, expect, v)
		expect++
	}
}

// TestPriorityQueue_RandomAgainstSort checks heap order under mixed traffic.
func TestPriorityQueue_RandomAgainstSort(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pq := frontier.NewPriorityQueue(intLess)
	var shadow []int

	for step := 0; step < 2000; step++ {
		if rng.Intn(3) > 0 || len(shadow) == 0 {
			v := rng.Intn(100)
			pq.Push(v)
			shadow = append(shadow, v)
			continue
		}
		sort.Ints(shadow)
		v, err := pq.Pop()
		require.NoError(t, err)
		require.Equal(t, shadow[0], v)
		shadow = shadow[1:]
	}
	require.Equal(t, len(shadow), pq.Len())

	sort.Ints(shadow)
	assert.Equal(t, shadow, drain[int](t, pq))
	_, err := pq.Pop()
	require.ErrorIs(t, err, frontier.ErrEmpty)
}

func benchFrontier(b *testing.B, f frontier.Frontier[int]) {
	rng := rand.New(rand.NewSource(1))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Push(rng.Intn(1 << 20))
		if i%3 == 2 {
			_, _ = f.Pop()
		}
	}
}

func BenchmarkQueue(b *testing.B) { benchFrontier(b, frontier.NewQueue[int]()) }
func BenchmarkStack(b *testing.B) { benchFrontier(b, frontier.NewStack[int]()) }
func BenchmarkHeap(b *testing.B)  { benchFrontier(b, frontier.NewPriorityQueue(intLess)) }
