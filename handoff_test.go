// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq_test

import (
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/bufq"
	"code.hybscloud.com/iox"
)

// =============================================================================
// DataRing - Producer/Consumer Handoff
//
// One goroutine produces and another consumes, each through its own
// accessor over the same region. They never act at the same time: a turn
// flag hands the region back and forth. The consumer drains only part of
// what is committed, so the producer's reservations regularly compact.
// =============================================================================

// TestDataRingHandoff tests that values cross accessors in order across
// many partial drains and compactions.
func TestDataRingHandoff(t *testing.T) {
	if bufq.RaceEnabled {
		t.Skip("skip: handoff is synchronized through atomix, which the race detector cannot see")
	}

	const (
		producerTurn = 0
		consumerTurn = 1
		total        = 20000
		capacity     = 61
		timeout      = 10 * time.Second
	)

	ring, err := bufq.NewDataRing(bufq.Uint64, capacity)
	if err != nil {
		t.Fatalf("NewDataRing: %v", err)
	}
	defer ring.Close()
	peer, err := bufq.AttachDataRing(ring.Region(), bufq.ExpectKind(bufq.Uint64), bufq.ExpectLength(capacity))
	if err != nil {
		t.Fatalf("AttachDataRing: %v", err)
	}

	var turn atomix.Uint64
	var done, timedOut atomix.Bool
	var wg sync.WaitGroup
	wg.Add(2)

	wait := func(want uint64) bool {
		deadline := time.Now().Add(timeout)
		backoff := iox.Backoff{}
		for turn.LoadAcquire() != want {
			if time.Now().After(deadline) {
				timedOut.Store(true)
				return false
			}
			backoff.Wait()
		}
		return true
	}

	// Producer
	go func() {
		defer wg.Done()
		rng := rand.New(rand.NewPCG(7, 11))
		next := uint64(0)
		for next < total {
			if !wait(producerTurn) || timedOut.Load() {
				return
			}
			n := min(1+rng.IntN(capacity), ring.Unused(), int(total-next))
			if n > 0 {
				r, err := ring.Reserve(n)
				if err != nil {
					t.Errorf("Reserve(%d) with %d unused: %v", n, ring.Unused(), err)
					timedOut.Store(true)
					return
				}
				for i := range n {
					binary.NativeEndian.PutUint64(r.Bytes()[8*i:], next)
					next++
				}
				if err := ring.Enqueue(r); err != nil {
					t.Errorf("Enqueue: %v", err)
					timedOut.Store(true)
					return
				}
			}
			if next == total {
				done.Store(true)
			}
			turn.StoreRelease(consumerTurn)
		}
	}()

	// Consumer
	got := 0
	go func() {
		defer wg.Done()
		rng := rand.New(rand.NewPCG(13, 17))
		buf := make([]byte, 8*capacity)
		want := uint64(0)
		for want < total {
			if !wait(consumerTurn) || timedOut.Load() {
				return
			}
			n := peer.Used()
			if !done.Load() {
				n = min(n, rng.IntN(capacity))
			}
			if err := peer.Dequeue(buf[:8*n]); err != nil {
				t.Errorf("Dequeue(%d): %v", n, err)
				timedOut.Store(true)
				return
			}
			for i := range n {
				if v := binary.NativeEndian.Uint64(buf[8*i:]); v != want {
					t.Errorf("Dequeue: got %d, want %d", v, want)
					timedOut.Store(true)
					return
				}
				want++
			}
			got = int(want)
			turn.StoreRelease(producerTurn)
		}
	}()

	wg.Wait()
	if timedOut.Load() {
		t.Fatalf("handoff stopped after %d of %d values", got, total)
	}
	if got != total || !ring.IsEmpty() {
		t.Fatalf("consumed %d of %d, Used %d", got, total, ring.Used())
	}
}
