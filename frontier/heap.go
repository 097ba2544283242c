package frontier

// PriorityQueue is a binary min-heap ordered by a caller-supplied comparator.
//
// less(a, b) must be a strict weak order; the item for which no other item is
// "less" is popped first. Ties are broken arbitrarily: insertion order is not
// preserved among equal keys.
//
// Layout: heap[0] is the root; the children of i live at 2i+1 and 2i+2.
//
// Complexity: Push and Pop are O(log n).
type PriorityQueue[T any] struct {
	heap []T
	less func(a, b T) bool
}

// NewPriorityQueue returns an empty heap ordered by less.
func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{less: less}
}

// Push appends item at the tail and sifts it up to restore heap order.
func (pq *PriorityQueue[T]) Push(item T) {
	pq.heap = append(pq.heap, item)
	pq.siftUp(len(pq.heap) - 1)
}

// Pop removes the root, moves the last element into its place and sifts it
// down.
func (pq *PriorityQueue[T]) Pop() (T, error) {
	var zero T
	last := len(pq.heap) - 1
	if last < 0 {
		return zero, ErrEmpty
	}

	root := pq.heap[0]
	pq.heap[0] = pq.heap[last]
	pq.heap[last] = zero
	pq.heap = pq.heap[:last]
	if last > 0 {
		pq.siftDown(0)
	}

	return root, nil
}

// IsEmpty reports whether the heap holds nothing.
func (pq *PriorityQueue[T]) IsEmpty() bool { return len(pq.heap) == 0 }

// Len returns the number of held items.
func (pq *PriorityQueue[T]) Len() int { return len(pq.heap) }

// siftUp moves heap[i] towards the root while it is less than its parent.
func (pq *PriorityQueue[T]) siftUp(i int) {
	var parent int
	for i > 0 {
		parent = (i - 1) / 2
		if !pq.less(pq.heap[i], pq.heap[parent]) {
			return
		}
		pq.heap[i], pq.heap[parent] = pq.heap[parent], pq.heap[i]
		i = parent
	}
}

// siftDown compares heap[i] with both children and swaps with the smaller
// one until neither child is less.
func (pq *PriorityQueue[T]) siftDown(i int) {
	var (
		n        = len(pq.heap)
		left     int
		right    int
		smallest int
	)
	for {
		left, right, smallest = 2*i+1, 2*i+2, i
		if left < n && pq.less(pq.heap[left], pq.heap[smallest]) {
			smallest = left
		}
		if right < n && pq.less(pq.heap[right], pq.heap[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		pq.heap[i], pq.heap[smallest] = pq.heap[smallest], pq.heap[i]
		i = smallest
	}
}
