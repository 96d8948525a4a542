// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

// Reservation is the token returned by Reserve and required by the matching
// commit. It carries the writable view over the reserved span.
//
// A Reservation is only valid until it is committed or cancelled, or until
// the buffer invalidates it (Sequence.ShrinkToFit, a new Input). Committing
// a stale token fails with ErrNoReservation, so two call sites cannot both
// publish the same span.
type Reservation struct {
	buf []byte
	id  uint64
}

// Bytes returns the writable view over the reserved span.
// Writes through it are zero-copy: they land in the backing region.
func (r Reservation) Bytes() []byte {
	return r.buf
}

// Len returns the reserved length in bytes.
func (r Reservation) Len() int {
	return len(r.buf)
}

// reserver tracks the single outstanding reservation of a buffer.
// id 0 means none is outstanding.
type reserver struct {
	seq uint64
	id  uint64
	n   int // reserved length in the buffer's unit (bytes or elements)
}

func (s *reserver) busy() bool {
	return s.id != 0
}

// begin records a new reservation of n units and returns its token.
// Callers check busy() and capacity before calling begin.
func (s *reserver) begin(buf []byte, n int) Reservation {
	s.seq++
	s.id = s.seq
	s.n = n
	return Reservation{buf: buf, id: s.id}
}

// owns reports whether r is the outstanding reservation.
func (s *reserver) owns(r Reservation) bool {
	return s.id != 0 && r.id == s.id
}

func (s *reserver) end() {
	s.id = 0
	s.n = 0
}
