// Package queue implements a growable ring-buffer FIFO queue.
package queue

const minCapacity = 4

// Queue is a FIFO queue, zero value is not usable, use New.
type Queue[T any] struct {
	items      []T
	head, size int
}

// New creates a queue containing items in order.
func New[T any](items ...T) *Queue[T] {
	capacity := minCapacity
	for capacity < len(items) {
		capacity <<= 1
	}
	q := &Queue[T]{items: make([]T, capacity), size: len(items)}
	copy(q.items, items)
	return q
}

func (q *Queue[T]) mask() int {
	return len(q.items) - 1
}

// IsEmpty reports whether the queue has no items.
func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

// Len returns number of queued items.
func (q *Queue[T]) Len() int {
	return q.size
}

// Append adds item to the tail.
func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)&q.mask()] = item
	q.size++
	return q
}

// First removes and returns the head item, false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & q.mask()
	q.size--
	return item, true
}

// Items returns a copy of queued items in order.
func (q *Queue[T]) Items() []T {
	result := make([]T, q.size)
	for i := range result {
		result[i] = q.items[(q.head+i)&q.mask()]
	}
	return result
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	copy(items, q.Items())
	q.items = items
	q.head = 0
}
