// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import (
	"io"

	"code.hybscloud.com/atomix"
)

// slot holds the single active callback of one side of a Sequence.
//
// Each attach starts a new generation; a handle stays live only while its
// generation is current. Revocation is a generation bump, so a stale
// handle is detected on its next call rather than tracked down.
type slot struct {
	gen atomix.Uint64
}

// attach revokes the current handle and returns the generation of the next.
func (s *slot) attach() uint64 {
	return s.gen.AddAcqRel(1)
}

func (s *slot) revoke() {
	s.gen.AddAcqRel(1)
}

func (s *slot) live(gen uint64) bool {
	return s.gen.LoadAcquire() == gen
}

// Input is the write-side callback of a Sequence. It lets producer code
// append to the sequence without depending on *Sequence.
//
// Allocate returns a writable view of the requested size; the following
// Commit publishes the bytes written into it. Input also implements
// io.Writer on top of the same two steps.
//
// An Input comes from Sequence.Input. Only the most recently attached one
// is live. Once revoked, by a newer Input, a direct Reserve or Commit, or
// ShrinkToFit, every method fails with ErrRevoked and any reservation it
// held is dropped. The zero Input is revoked.
type Input struct {
	seq *Sequence
	gen uint64
	r   Reservation
}

// Allocate reserves n bytes at the end of the sequence, growing it if
// needed, and returns the writable view.
func (in *Input) Allocate(n int) ([]byte, error) {
	if !in.live() {
		return nil, ErrRevoked
	}
	r, err := in.seq.reserve(n, in.gen)
	if err != nil {
		return nil, err
	}
	in.r = r
	return r.Bytes(), nil
}

// Commit publishes the first n bytes of the last Allocate.
func (in *Input) Commit(n int) error {
	if !in.live() {
		return ErrRevoked
	}
	return in.seq.commit(in.r, n)
}

func (in *Input) live() bool {
	return in.seq != nil && in.seq.input.live(in.gen)
}

// Write appends p to the sequence.
func (in *Input) Write(p []byte) (int, error) {
	buf, err := in.Allocate(len(p))
	if err != nil {
		return 0, err
	}
	copy(buf, p)
	if err := in.Commit(len(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Output is the read-side callback of a Sequence. Pull copies committed
// bytes from the read cursor; Read and WriteTo adapt it to io.
//
// An Output comes from Sequence.Output. Only the most recently attached
// one is live; a revoked Output fails with ErrRevoked, and so does the
// zero Output.
type Output struct {
	seq *Sequence
	gen uint64
}

// Pull copies up to len(dst) unread bytes into dst and returns the count.
// A short count is not an error.
func (o *Output) Pull(dst []byte) (int, error) {
	if !o.live() {
		return 0, ErrRevoked
	}
	return o.seq.Pull(dst), nil
}

// Read implements io.Reader. It returns io.EOF once every committed byte
// has been read; more bytes committed later are readable again.
func (o *Output) Read(p []byte) (int, error) {
	n, err := o.Pull(p)
	if err != nil {
		return 0, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// WriteTo implements io.WriterTo, writing every unread byte to w.
func (o *Output) WriteTo(w io.Writer) (int64, error) {
	if !o.live() {
		return 0, ErrRevoked
	}
	s := o.seq
	n, err := w.Write(s.buf[s.out:s.n])
	s.out += n
	return int64(n), err
}

func (o *Output) live() bool {
	return o.seq != nil && o.seq.output.live(o.gen)
}

var (
	_ io.Writer   = (*Input)(nil)
	_ io.Reader   = (*Output)(nil)
	_ io.WriterTo = (*Output)(nil)
)
