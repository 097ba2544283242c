package frontier

// minCompact is the smallest consumed prefix worth reclaiming.
const minCompact = 64

// Queue is a FIFO container backed by a slice with a moving head.
// The consumed prefix is reclaimed once it exceeds half of the backing array.
type Queue[T any] struct {
	items []T
	head  int
}

// NewQueue returns an empty FIFO queue.
func NewQueue[T any]() *Queue[T] { return &Queue[T]{} }

// Push appends item at the tail. Amortized O(1).
func (q *Queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

// Pop removes the head item. Amortized O(1).
func (q *Queue[T]) Pop() (T, error) {
	var zero T
	if q.head >= len(q.items) {
		return zero, ErrEmpty
	}
	item := q.items[q.head]
	q.items[q.head] = zero // release reference for GC
	q.head++

	if q.head >= minCompact && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return item, nil
}

// IsEmpty reports whether the queue holds nothing.
func (q *Queue[T]) IsEmpty() bool { return q.head >= len(q.items) }

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.items) - q.head }
