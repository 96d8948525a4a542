// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq_test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"code.hybscloud.com/bufq"
)

// ExampleNewRing demonstrates a fixed-capacity element queue.
func ExampleNewRing() {
	q, _ := bufq.NewRing[string](4)

	for _, s := range []string{"A", "B", "C", "D"} {
		q.Enqueue(&s)
	}

	// Full: E only fits once A is taken
	e := "E"
	fmt.Println(errors.Is(q.Enqueue(&e), bufq.ErrQueueFull))
	a, _ := q.Dequeue()
	fmt.Println(a, q.Enqueue(&e))

	for !q.IsEmpty() {
		v, _ := q.Dequeue()
		fmt.Print(v)
	}
	fmt.Println()

	// Output:
	// true
	// A <nil>
	// BCDE
}

// ExampleByteRing_Reserve demonstrates the zero-copy write path.
func ExampleByteRing_Reserve() {
	q, _ := bufq.NewByteRing(16)

	// Write directly into the ring's storage
	r, _ := q.Reserve(5)
	copy(r.Bytes(), "hello")
	q.Enqueue(r)

	fmt.Println("used:", q.Used(), "unused:", q.Unused())

	out := make([]byte, 5)
	q.Dequeue(out)
	fmt.Println(string(out))

	// Output:
	// used: 5 unused: 11
	// hello
}

// ExampleAttachDataRing demonstrates two accessors sharing one region.
func ExampleAttachDataRing() {
	producer, _ := bufq.NewDataRing(bufq.Uint32, 10)
	defer producer.Close()

	r, _ := producer.Reserve(3)
	for i, v := range []uint32{100, 200, 300} {
		binary.NativeEndian.PutUint32(r.Bytes()[4*i:], v)
	}
	producer.Enqueue(r)

	// Another accessor reads the same state from the header
	consumer, err := bufq.AttachDataRing(producer.Region(), bufq.ExpectKind(bufq.Uint32))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(consumer.Kind(), consumer.Cap(), consumer.Used())

	buf := make([]byte, 8)
	consumer.Dequeue(buf)
	fmt.Println(binary.NativeEndian.Uint32(buf), binary.NativeEndian.Uint32(buf[4:]))
	fmt.Println("producer sees used:", producer.Used())

	// A mismatched expectation is refused
	_, err = bufq.AttachDataRing(producer.Region(), bufq.ExpectKind(bufq.Float32))
	fmt.Println(err)

	// Output:
	// uint32 10 3
	// 100 200
	// producer sees used: 1
	// bufq: schema mismatch: kind uint32, expected float32
}

// ExampleSequence demonstrates growth and a rewindable read cursor.
func ExampleSequence() {
	s := bufq.NewSequence()

	r, _ := s.Reserve(5)
	copy(r.Bytes(), "hello")
	s.Commit(r, 5)

	r, _ = s.Reserve(6)
	copy(r.Bytes(), " world")
	s.Commit(r, 6)
	fmt.Println(s.Len(), s.Cap())

	buf := make([]byte, 8)
	n := s.Pull(buf)
	fmt.Printf("%q\n", buf[:n])
	n = s.Pull(buf)
	fmt.Printf("%q\n", buf[:n])

	s.ResetOutput()
	fmt.Println(s.Remaining())

	// Output:
	// 11 11
	// "hello wo"
	// "rld"
	// 11
}

// ExampleSequence_Input demonstrates the io adapters.
func ExampleSequence_Input() {
	s := bufq.NewSequence()

	io.Copy(s.Input(), strings.NewReader("streamed through a sequence\n"))
	io.Copy(os.Stdout, s.Output())

	// Output:
	// streamed through a sequence
}

// ExampleIsWouldBlock demonstrates error handling patterns.
func ExampleIsWouldBlock() {
	q, _ := bufq.NewByteRing(4)

	// Not enough room
	_, err := q.Reserve(8)
	if bufq.IsWouldBlock(err) {
		fmt.Println("Ring full - applying backpressure")
	}

	// Nothing to read
	err = q.Dequeue(make([]byte, 1))
	if bufq.IsWouldBlock(err) {
		fmt.Println("Ring empty - no data available")
	}

	// Misuse is not backpressure
	err = q.Enqueue(bufq.Reservation{})
	fmt.Println(bufq.IsWouldBlock(err), err)

	// Output:
	// Ring full - applying backpressure
	// Ring empty - no data available
	// false bufq: no reservation
}
