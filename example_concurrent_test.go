// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples with a producer and a consumer goroutine
// sharing one region. They hand the region back and forth through an
// atomix flag, which Go's race detector cannot see. The examples are
// correct; they're excluded from race testing.

package bufq_test

import (
	"encoding/binary"
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/bufq"
	"code.hybscloud.com/iox"
)

// Example_handoff demonstrates one producer and one consumer attached to
// the same DataRing, serialized by a turn flag.
func Example_handoff() {
	const (
		producerTurn = 0
		consumerTurn = 1
		batches      = 4
	)

	ring, _ := bufq.NewDataRing(bufq.Int64, 8)
	defer ring.Close()
	peer, _ := bufq.AttachDataRing(ring.Region(), bufq.ExpectKind(bufq.Int64))

	var turn atomix.Uint64
	var wg sync.WaitGroup
	wg.Add(2)

	// Producer writes batches of three values in place
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for b := range batches {
			for turn.LoadAcquire() != producerTurn {
				backoff.Wait()
			}
			backoff.Reset()
			r, err := ring.Reserve(3)
			if err != nil {
				panic(err)
			}
			for i := range 3 {
				binary.NativeEndian.PutUint64(r.Bytes()[8*i:], uint64(b*10+i))
			}
			ring.Enqueue(r)
			turn.StoreRelease(consumerTurn)
		}
	}()

	// Consumer drains each batch through its own accessor
	sums := make([]int64, batches)
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		buf := make([]byte, 8)
		for b := range batches {
			for turn.LoadAcquire() != consumerTurn {
				backoff.Wait()
			}
			backoff.Reset()
			for !peer.IsEmpty() {
				peer.Dequeue(buf)
				sums[b] += int64(binary.NativeEndian.Uint64(buf))
			}
			turn.StoreRelease(producerTurn)
		}
	}()

	wg.Wait()
	fmt.Println(sums)

	// Output:
	// [3 33 63 93]
}
