// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import "fmt"

// ByteRing is a fixed-capacity byte queue with a two-phase write path.
//
// A producer reserves a contiguous span, writes into it in place, and
// enqueues it. A consumer copies bytes out with Dequeue. When a reservation
// would run past the end of the backing region, the live window [head, tail)
// is first moved down to offset 0 (compaction), so every reserved span is
// contiguous.
//
// ByteRing is not safe for concurrent use.
type ByteRing struct {
	buf  []byte
	head int
	tail int
	rsv  reserver
}

// NewByteRing creates a byte ring of byteLength bytes.
// Returns ErrInvalidArgument if byteLength < 1.
func NewByteRing(byteLength int) (*ByteRing, error) {
	if byteLength < 1 {
		return nil, fmt.Errorf("%w: byte length %d", ErrInvalidArgument, byteLength)
	}
	return &ByteRing{buf: make([]byte, byteLength)}, nil
}

// Reserve claims n bytes at the tail and returns a token whose Bytes is
// the writable view [tail, tail+n).
//
// Returns ErrReservationInProgress if a reservation is outstanding and
// ErrInsufficientSpace if n > Unused().
func (q *ByteRing) Reserve(n int) (Reservation, error) {
	if q.rsv.busy() {
		return Reservation{}, ErrReservationInProgress
	}
	if n < 1 {
		return Reservation{}, fmt.Errorf("%w: reserve %d bytes", ErrInvalidArgument, n)
	}
	if n > q.Unused() {
		return Reservation{}, fmt.Errorf("%w: reserve %d, unused %d", ErrInsufficientSpace, n, q.Unused())
	}
	if q.tail+n > len(q.buf) {
		q.compact()
	}
	return q.rsv.begin(q.buf[q.tail:q.tail+n:q.tail+n], n), nil
}

// Enqueue publishes the whole reserved span.
// Returns ErrNoReservation if r is not the outstanding reservation.
func (q *ByteRing) Enqueue(r Reservation) error {
	return q.EnqueueN(r, r.Len())
}

// EnqueueN publishes the first n bytes of the reserved span and releases
// the rest. Returns ErrOverCommit if n exceeds the reserved length.
func (q *ByteRing) EnqueueN(r Reservation, n int) error {
	if !q.rsv.owns(r) {
		return ErrNoReservation
	}
	if n < 0 {
		return fmt.Errorf("%w: enqueue %d bytes", ErrInvalidArgument, n)
	}
	if n > q.rsv.n {
		return fmt.Errorf("%w: enqueue %d, reserved %d", ErrOverCommit, n, q.rsv.n)
	}
	q.tail += n
	q.rsv.end()
	return nil
}

// Cancel abandons the outstanding reservation without publishing it.
func (q *ByteRing) Cancel(r Reservation) error {
	if !q.rsv.owns(r) {
		return ErrNoReservation
	}
	q.rsv.end()
	return nil
}

// Dequeue copies len(dst) bytes from the head into dst and consumes them.
// Returns ErrInsufficientData, consuming nothing, if len(dst) > Used().
func (q *ByteRing) Dequeue(dst []byte) error {
	if len(dst) > q.Used() {
		return fmt.Errorf("%w: dequeue %d, used %d", ErrInsufficientData, len(dst), q.Used())
	}
	q.head += copy(dst, q.buf[q.head:q.tail])
	return nil
}

// Used returns the number of committed, unread bytes.
func (q *ByteRing) Used() int {
	return q.tail - q.head
}

// Unused returns the number of bytes that can still be reserved.
func (q *ByteRing) Unused() int {
	return len(q.buf) - q.Used()
}

// Cap returns the capacity in bytes.
func (q *ByteRing) Cap() int {
	return len(q.buf)
}

// IsEmpty reports whether no committed bytes remain.
func (q *ByteRing) IsEmpty() bool {
	return q.head == q.tail
}

// compact moves [head, tail) to offset 0.
func (q *ByteRing) compact() {
	copy(q.buf, q.buf[q.head:q.tail])
	q.tail -= q.head
	q.head = 0
}

var (
	_ ByteQueue   = (*ByteRing)(nil)
	_ Queue[byte] = (*Ring[byte])(nil)
)
