// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import (
	"fmt"
	"math"
)

// Sequence is an append-only byte buffer with independent write and read
// cursors.
//
// The write side is two-phase: Reserve returns a writable view at the end
// of the committed content, growing the backing region by doubling when
// needed, and Commit publishes up to the reserved length. The read side
// pulls committed bytes from a cursor that only ResetOutput moves back;
// reading never invalidates content.
//
// Producer and consumer code that should not depend on *Sequence can be
// handed an Input or an Output instead. Each is single-owner: attaching a
// new one revokes the previous, and a direct Reserve or Commit takes the
// sequence back from both.
//
// Sequence is not safe for concurrent use.
type Sequence struct {
	buf []byte
	n   int // committed length
	out int // read cursor
	rsv reserver
	own uint64 // input generation owning the reservation, 0 when direct

	input  slot
	output slot
}

// NewSequence returns an empty sequence with no backing region.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Reserve returns a token over n writable bytes following the committed
// content.
//
// The current Input and Output are revoked first, dropping a reservation
// made through the Input. Returns ErrReservationInProgress if a direct
// reservation is outstanding.
func (s *Sequence) Reserve(n int) (Reservation, error) {
	s.revokeCallbacks()
	return s.reserve(n, 0)
}

func (s *Sequence) reserve(n int, owner uint64) (Reservation, error) {
	if s.rsv.busy() {
		return Reservation{}, ErrReservationInProgress
	}
	if n < 0 || n > math.MaxInt-s.n {
		return Reservation{}, fmt.Errorf("%w: reserve %d bytes", ErrInvalidArgument, n)
	}
	s.grow(s.n + n)
	s.own = owner
	return s.rsv.begin(s.buf[s.n:s.n+n:s.n+n], n), nil
}

// grow makes room for need bytes, doubling the capacity at least.
func (s *Sequence) grow(need int) {
	if need <= len(s.buf) {
		return
	}
	c := max(len(s.buf)*2, need)
	buf := make([]byte, c)
	copy(buf, s.buf[:s.n])
	s.buf = buf
}

// Commit publishes the first n bytes of reservation r, revoking the
// current Input and Output first. Returns ErrNoReservation for a stale
// token and ErrOverCommit if n exceeds the reserved length.
func (s *Sequence) Commit(r Reservation, n int) error {
	s.revokeCallbacks()
	return s.commit(r, n)
}

func (s *Sequence) commit(r Reservation, n int) error {
	if !s.rsv.owns(r) {
		return ErrNoReservation
	}
	if n < 0 {
		return fmt.Errorf("%w: commit %d bytes", ErrInvalidArgument, n)
	}
	if n > s.rsv.n {
		return fmt.Errorf("%w: commit %d, reserved %d", ErrOverCommit, n, s.rsv.n)
	}
	s.n += n
	s.rsv.end()
	s.own = 0
	return nil
}

// Pull copies min(len(dst), Remaining()) bytes from the read cursor into
// dst, advances the cursor, and returns the count.
func (s *Sequence) Pull(dst []byte) int {
	k := copy(dst, s.buf[s.out:s.n])
	s.out += k
	return k
}

// ResetOutput rewinds the read cursor to the start.
func (s *Sequence) ResetOutput() {
	s.out = 0
}

// ShrinkToFit reallocates the backing region to exactly Len() bytes.
//
// Views handed out earlier would alias the old region, so the outstanding
// reservation is dropped and the current Input and Output are revoked
// first.
func (s *Sequence) ShrinkToFit() {
	s.revokeCallbacks()
	s.rsv.end()
	s.own = 0
	buf := make([]byte, s.n)
	copy(buf, s.buf[:s.n])
	s.buf = buf
}

// revokeCallbacks revokes the current Input and Output and drops a
// reservation the Input holds.
func (s *Sequence) revokeCallbacks() {
	s.input.revoke()
	s.output.revoke()
	s.dropInputReservation()
}

func (s *Sequence) dropInputReservation() {
	if s.rsv.busy() && s.own != 0 {
		s.rsv.end()
		s.own = 0
	}
}

// Input attaches a new write-side callback. The previous Input is revoked
// and a reservation it held is dropped.
func (s *Sequence) Input() *Input {
	s.dropInputReservation()
	return &Input{seq: s, gen: s.input.attach()}
}

// Output attaches a new read-side callback, revoking the previous one.
// The read cursor is shared and not reset.
func (s *Sequence) Output() *Output {
	return &Output{seq: s, gen: s.output.attach()}
}

// Bytes returns a view of the committed content. It is valid until the
// next growth or ShrinkToFit.
func (s *Sequence) Bytes() []byte {
	return s.buf[:s.n:s.n]
}

// Len returns the committed length.
func (s *Sequence) Len() int {
	return s.n
}

// Cap returns the size of the backing region.
func (s *Sequence) Cap() int {
	return len(s.buf)
}

// Remaining returns the number of committed bytes not yet pulled.
func (s *Sequence) Remaining() int {
	return s.n - s.out
}
