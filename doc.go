// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bufq provides bounded buffer queues with zero-copy write paths.
//
// The package offers four buffers, all non-blocking and all built for a
// single writer and a single reader at a time:
//
//   - Ring[T]: fixed-capacity circular queue of values
//   - ByteRing: fixed-capacity byte queue with reserve/enqueue writes
//   - DataRing: ByteRing whose state lives in a header inside its region,
//     so other accessors (and other processes) can attach to it
//   - Sequence: growable append-only bytes with a resettable read cursor
//
// # Quick Start
//
// Direct constructors:
//
//	r, err := bufq.NewRing[Event](64)
//	b, err := bufq.NewByteRing(4096)
//	d, err := bufq.NewDataRing(bufq.Uint32, 1024)
//	s := bufq.NewSequence()
//
// Builder API for shared and file-backed regions:
//
//	d, err := bufq.New(1024).Kind(bufq.Uint32).Shared().BuildData()
//	d, err := bufq.New(1024).Kind(bufq.Uint32).File("/dev/shm/q").BuildData()
//
// # Reserve and Enqueue
//
// Byte writes are two-phase. Reserve returns a Reservation whose Bytes is a
// view directly into the backing region; the producer writes there and then
// publishes with Enqueue (or Commit, for a Sequence):
//
//	r, err := b.Reserve(len(msg))
//	if err != nil {
//	    return err
//	}
//	copy(r.Bytes(), msg)
//	if err := b.Enqueue(r); err != nil {
//	    return err
//	}
//
// Only one reservation may be outstanding. A second Reserve fails with
// ErrReservationInProgress, and committing a token that is not the
// outstanding one fails with ErrNoReservation.
//
// A ByteRing never splits a reservation across the end of its region: when
// the requested span would cross it, the unread bytes are first moved to
// offset 0.
//
// # Shared Regions
//
// A DataRing region begins with a 12-byte little-endian header:
//
//	[0,4)   kind tag (Int8 … Uint64)
//	[4,8)   head index
//	[8,12)  tail index
//	[12,…)  element data
//
// AttachDataRing and OpenDataRing validate the header, optionally against an
// expected Kind and length, before trusting it:
//
//	peer, err := bufq.AttachDataRing(d.Region(), bufq.ExpectKind(bufq.Uint32), bufq.ExpectLength(1024))
//
// The header carries the layout, not a lock. The host must serialize
// producers and consumers across owners.
//
// # Callbacks
//
// A Sequence exposes its write side as an Input (Allocate/Commit, io.Writer)
// and its read side as an Output (Pull, io.Reader, io.WriterTo), so that
// producer and consumer code need not know the concrete type:
//
//	seq := bufq.NewSequence()
//	io.Copy(seq.Input(), src)
//	io.Copy(dst, seq.Output())
//
// Attaching a new Input or Output revokes the previous one. A direct
// Reserve, Commit or ShrinkToFit on the Sequence revokes both. A revoked
// handle fails with ErrRevoked.
//
// # Error Handling
//
// Capacity errors wrap [ErrWouldBlock], sourced from [code.hybscloud.com/iox]:
//
//	ErrQueueFull, ErrInsufficientSpace   write exceeds free capacity
//	ErrQueueEmpty, ErrInsufficientData   read exceeds content
//
// so a caller can retry with backoff:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if !bufq.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// All other errors report misuse and are never worth retrying unchanged.
// Every operation validates before it mutates; a failed call leaves the
// buffer as it was.
//
// # Thread Safety
//
// No buffer locks. A ByteRing or Sequence has one owner at a time. Two
// DataRing accessors on one region may act as one producer and one
// consumer only with an external handshake between them, because Reserve
// may move unread data.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for the callback generation counters, and
// [golang.org/x/sys/unix] for shared mappings.
package bufq
