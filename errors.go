// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// It is never returned bare. The capacity errors below wrap it so that
// callers can treat every "full" and "empty" condition uniformly:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if bufq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// Capacity errors. All of them satisfy errors.Is(err, ErrWouldBlock).
var (
	// ErrQueueFull is returned by Ring.Enqueue when no free slot remains.
	ErrQueueFull = fmt.Errorf("bufq: queue full: %w", ErrWouldBlock)

	// ErrQueueEmpty is returned by Ring.Dequeue when the ring holds nothing.
	ErrQueueEmpty = fmt.Errorf("bufq: queue empty: %w", ErrWouldBlock)

	// ErrInsufficientSpace is returned by Reserve when the request exceeds
	// the unused capacity.
	ErrInsufficientSpace = fmt.Errorf("bufq: insufficient space: %w", ErrWouldBlock)

	// ErrInsufficientData is returned by Dequeue when the destination is
	// larger than the committed content.
	ErrInsufficientData = fmt.Errorf("bufq: insufficient data: %w", ErrWouldBlock)
)

// Sequencing and validation errors. These are caller bugs, not backpressure.
var (
	// ErrInvalidArgument reports a missing, malformed or out-of-range argument.
	ErrInvalidArgument = errors.New("bufq: invalid argument")

	// ErrCapacityTooSmall is returned by SetCapacity when the new capacity
	// cannot hold the current content.
	ErrCapacityTooSmall = errors.New("bufq: capacity smaller than used slots")

	// ErrReservationInProgress is returned by Reserve while a previous
	// reservation has not been committed or cancelled.
	ErrReservationInProgress = errors.New("bufq: reservation in progress")

	// ErrNoReservation is returned when committing without an outstanding
	// reservation, or with a token that is no longer the outstanding one.
	ErrNoReservation = errors.New("bufq: no reservation")

	// ErrOverCommit is returned when committing more bytes than reserved.
	ErrOverCommit = errors.New("bufq: commit exceeds reservation")

	// ErrSchemaMismatch is returned when attaching to a region whose header
	// disagrees with the expected kind or length, or is not self-consistent.
	ErrSchemaMismatch = errors.New("bufq: schema mismatch")

	// ErrClosed is returned by a DataRing after Close.
	ErrClosed = errors.New("bufq: ring closed")

	// ErrRevoked is returned by an Input or Output handle after a newer
	// handle has been attached or the sequence has been shrunk.
	ErrRevoked = errors.New("bufq: callback revoked")
)

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
