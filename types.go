// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

// Queue is the combined producer-consumer interface for an element queue.
//
// Enqueue and Dequeue never block. They return ErrQueueFull or
// ErrQueueEmpty, both of which satisfy IsWouldBlock.
//
// Example:
//
//	q, _ := bufq.NewRing[int](4)
//
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full queue
//	}
//
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Len() int
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue.
	// Returns nil on success, ErrQueueFull if no slot is free.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value. The slot it occupied is cleared so
// that any reference it holds can be collected.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element.
	// Returns (zero-value, ErrQueueEmpty) if the queue is empty.
	Dequeue() (T, error)
}

// ByteQueue is the combined interface of the reservation-based byte queues,
// ByteRing and DataRing.
//
// Sizes are counted in the queue's unit: bytes for ByteRing, elements of
// the region's Kind for DataRing.
type ByteQueue interface {
	ByteProducer
	ByteConsumer
	Used() int
	Unused() int
	Cap() int
}

// ByteProducer is the two-phase write side of a byte queue.
//
//	r, err := q.Reserve(n)
//	if err != nil {
//	    return err
//	}
//	copy(r.Bytes(), payload) // write in place
//	return q.Enqueue(r)      // publish
type ByteProducer interface {
	// Reserve claims n units at the tail and returns a writable view.
	// Only one reservation may be outstanding.
	Reserve(n int) (Reservation, error)

	// Enqueue publishes the whole of an outstanding reservation.
	Enqueue(r Reservation) error
}

// ByteConsumer is the copy-out read side of a byte queue.
type ByteConsumer interface {
	// Dequeue fills dst completely from the head or fails with
	// ErrInsufficientData without consuming anything.
	Dequeue(dst []byte) error
}
