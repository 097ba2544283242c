package frontier

// Stack is a LIFO container backed by a slice.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty LIFO stack.
func NewStack[T any]() *Stack[T] { return &Stack[T]{} }

// Push places item on top. Amortized O(1).
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes the top item. O(1).
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	last := len(s.items) - 1
	if last < 0 {
		return zero, ErrEmpty
	}
	item := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]

	return item, nil
}

// IsEmpty reports whether the stack holds nothing.
func (s *Stack[T]) IsEmpty() bool { return len(s.items) == 0 }

// Len returns the number of stacked items.
func (s *Stack[T]) Len() int { return len(s.items) }
