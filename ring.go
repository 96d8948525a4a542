// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import "fmt"

// Ring is a fixed-capacity circular queue of opaque values.
//
// Unlike the head==tail convention, Ring keeps an explicit length so all
// capacity slots are usable and "empty" never aliases "full".
//
// Ring is not safe for concurrent use. One goroutine may enqueue and
// one may dequeue only if the caller serializes them.
type Ring[T any] struct {
	buffer []T
	head   int // index of the oldest element
	n      int // number of stored elements
}

// NewRing creates a ring that holds exactly capacity elements.
// Returns ErrInvalidArgument if capacity < 1.
func NewRing[T any](capacity int) (*Ring[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: ring capacity %d", ErrInvalidArgument, capacity)
	}
	return &Ring[T]{buffer: make([]T, capacity)}, nil
}

// Enqueue stores a copy of *elem at the tail.
// Returns ErrQueueFull if no slot is free.
func (q *Ring[T]) Enqueue(elem *T) error {
	if elem == nil {
		return fmt.Errorf("%w: nil element", ErrInvalidArgument)
	}
	if q.n == len(q.buffer) {
		return ErrQueueFull
	}
	q.buffer[q.tail()] = *elem
	q.n++
	return nil
}

// Dequeue removes and returns the oldest element.
// Returns (zero-value, ErrQueueEmpty) if the ring is empty.
func (q *Ring[T]) Dequeue() (T, error) {
	var zero T
	if q.n == 0 {
		return zero, ErrQueueEmpty
	}
	elem := q.buffer[q.head]
	q.buffer[q.head] = zero
	q.head++
	if q.head == len(q.buffer) {
		q.head = 0
	}
	q.n--
	return elem, nil
}

// IsEmpty reports whether the ring holds no elements.
func (q *Ring[T]) IsEmpty() bool {
	return q.n == 0
}

// Len returns the number of stored elements.
func (q *Ring[T]) Len() int {
	return q.n
}

// Cap returns the ring capacity.
func (q *Ring[T]) Cap() int {
	return len(q.buffer)
}

// Unused returns the number of free slots.
func (q *Ring[T]) Unused() int {
	return len(q.buffer) - q.n
}

// SetCapacity replaces the backing storage with one of the given capacity.
//
// Stored elements keep their order and move to the front of the new
// storage. Returns ErrCapacityTooSmall, leaving the ring unchanged, if
// capacity < Len().
func (q *Ring[T]) SetCapacity(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("%w: ring capacity %d", ErrInvalidArgument, capacity)
	}
	if capacity < q.n {
		return fmt.Errorf("%w: capacity %d, used %d", ErrCapacityTooSmall, capacity, q.n)
	}
	buffer := make([]T, capacity)
	if end := q.head + q.n; end <= len(q.buffer) {
		copy(buffer, q.buffer[q.head:end])
	} else {
		// Window wraps: [head, len) then [0, end-len).
		k := copy(buffer, q.buffer[q.head:])
		copy(buffer[k:], q.buffer[:end-len(q.buffer)])
	}
	q.buffer = buffer
	q.head = 0
	return nil
}

func (q *Ring[T]) tail() int {
	t := q.head + q.n
	if t >= len(q.buffer) {
		t -= len(q.buffer)
	}
	return t
}
