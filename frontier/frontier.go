// Package frontier provides the three container disciplines that drive the
// branch-and-bound traversals:
//
//   - Queue[T]        : FIFO, breadth-first order.
//   - Stack[T]        : LIFO, depth-first order.
//   - PriorityQueue[T]: binary min-heap under a caller-supplied comparator,
//     lowest-cost-first order.
//
// All three satisfy Frontier[T], so the search loop is written once and the
// discipline is chosen at construction time.
//
// Containers are not safe for concurrent use; each search owns its frontier.
package frontier

import "errors"

// ErrEmpty is returned by Pop on an empty container.
var ErrEmpty = errors.New("frontier: container is empty")

// Frontier is the minimal container contract shared by every discipline.
type Frontier[T any] interface {
	// Push inserts item.
	Push(item T)

	// Pop removes and returns the next item according to the discipline.
	// It returns ErrEmpty when the container holds nothing.
	Pop() (T, error)

	// IsEmpty reports whether Pop would fail.
	IsEmpty() bool

	// Len returns the number of held items.
	Len() int
}

var (
	_ Frontier[int] = (*Queue[int])(nil)
	_ Frontier[int] = (*Stack[int])(nil)
	_ Frontier[int] = (*PriorityQueue[int])(nil)
)
