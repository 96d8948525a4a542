// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import (
	"fmt"
	"math"

	"code.hybscloud.com/bufq/internal/shm"
)

// DataRing is a ByteRing whose element-type tag and head/tail indices are
// stored in a header at the start of the region it manages:
//
//	[0,4)   kind tag
//	[4,8)   head index (elements)
//	[8,12)  tail index (elements)
//	[12,…)  element data
//
// Because the indices live in the region, a second DataRing attached to the
// same memory, in this process or another one mapping the same file,
// observes the same state with no other handshake. The header supplies the
// layout, not the locking: concurrent Reserve, Enqueue or Dequeue from
// different owners must be serialized by the host, typically with one
// designated producer and one designated consumer.
//
// Sizes passed to Reserve and EnqueueN, and returned by Used, Unused and
// Cap, are counted in elements of Kind. Reservation views and Dequeue
// destinations are bytes.
//
// The reservation itself is local to the accessor; it is never recorded
// in the region.
//
// After Close, operations that return an error fail with ErrClosed and the
// size accessors report zero.
type DataRing struct {
	region *shm.Region // nil when attached to caller-owned memory
	mem    []byte
	hdr    header // zero once closed
	kind   Kind
	size   int // element size in bytes
	cap    int // capacity in elements
	rsv    reserver
}

// NewDataRing creates a DataRing of length elements of kind k in private
// heap memory. Use the Builder for shared or file-backed regions.
func NewDataRing(k Kind, length int) (*DataRing, error) {
	return newDataRing(k, length, func(size int) (*shm.Region, error) {
		return shm.Heap(size), nil
	})
}

// RegionSize returns the region size in bytes needed for length elements of
// kind k.
func RegionSize(k Kind, length int) int {
	return HeaderSize + length*k.Size()
}

func newDataRing(k Kind, length int, alloc func(size int) (*shm.Region, error)) (*DataRing, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, k)
	}
	if length < 1 || uint64(length) > maxIndex || length > (math.MaxInt-HeaderSize)/k.Size() {
		return nil, fmt.Errorf("%w: data ring length %d", ErrInvalidArgument, length)
	}
	region, err := alloc(RegionSize(k, length))
	if err != nil {
		return nil, err
	}
	mem := region.Bytes()
	q := &DataRing{
		region: region,
		mem:    mem,
		hdr:    newHeader(mem),
		kind:   k,
		size:   k.Size(),
		cap:    length,
	}
	q.hdr.setHead(0)
	q.hdr.setTail(0)
	q.hdr.setKind(k)
	return q, nil
}

// AttachOption constrains what AttachDataRing and OpenDataRing accept.
type AttachOption func(*attachOptions)

type attachOptions struct {
	kind      Kind
	hasKind   bool
	length    int
	hasLength bool
}

// ExpectKind requires the region's tag to be k.
func ExpectKind(k Kind) AttachOption {
	return func(o *attachOptions) {
		o.kind = k
		o.hasKind = true
	}
}

// ExpectLength requires the region to hold exactly length elements.
func ExpectLength(length int) AttachOption {
	return func(o *attachOptions) {
		o.length = length
		o.hasLength = true
	}
}

// AttachDataRing attaches to a region previously initialized by
// NewDataRing (its Region) or another owner.
//
// The header is validated before it is trusted: the tag must be known, the
// data area must be a whole number of elements, and head ≤ tail ≤ capacity.
// Any failure, or a mismatch against ExpectKind or ExpectLength, returns
// ErrSchemaMismatch. The region must be at least HeaderSize bytes and 4-byte
// aligned, else ErrInvalidArgument.
//
// The caller keeps ownership of region; Close on the result detaches the
// accessor without releasing the memory.
func AttachDataRing(region []byte, opts ...AttachOption) (*DataRing, error) {
	var o attachOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(region) < HeaderSize {
		return nil, fmt.Errorf("%w: region of %d bytes is shorter than the header", ErrInvalidArgument, len(region))
	}
	if !headerFits(region) {
		return nil, fmt.Errorf("%w: region is not 4-byte aligned", ErrInvalidArgument)
	}
	hdr := newHeader(region)
	k := hdr.kind()
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown tag %d", ErrSchemaMismatch, uint32(k))
	}
	data := len(region) - HeaderSize
	if data%k.Size() != 0 || data/k.Size() < 1 || uint64(data/k.Size()) > maxIndex {
		return nil, fmt.Errorf("%w: %d data bytes for %v elements", ErrSchemaMismatch, data, k)
	}
	length := data / k.Size()
	if o.hasKind && o.kind != k {
		return nil, fmt.Errorf("%w: kind %v, expected %v", ErrSchemaMismatch, k, o.kind)
	}
	if o.hasLength && o.length != length {
		return nil, fmt.Errorf("%w: length %d, expected %d", ErrSchemaMismatch, length, o.length)
	}
	if head, tail := hdr.head(), hdr.tail(); head > tail || tail > length {
		return nil, fmt.Errorf("%w: head %d, tail %d, capacity %d", ErrSchemaMismatch, head, tail, length)
	}
	return &DataRing{
		mem:  region,
		hdr:  hdr,
		kind: k,
		size: k.Size(),
		cap:  length,
	}, nil
}

// OpenDataRing maps the file region at path and attaches to it.
// Close unmaps it.
func OpenDataRing(path string, opts ...AttachOption) (*DataRing, error) {
	region, err := shm.Open(path)
	if err != nil {
		return nil, err
	}
	q, err := AttachDataRing(region.Bytes(), opts...)
	if err != nil {
		region.Close()
		return nil, err
	}
	q.region = region
	return q, nil
}

// Reserve claims n elements at the tail and returns a token whose Bytes is
// the writable view over them (n*Kind().Size() bytes).
//
// If the span would cross the end of the region, the live window is first
// moved to the start of the data area.
func (q *DataRing) Reserve(n int) (Reservation, error) {
	if !q.hdr.valid() {
		return Reservation{}, ErrClosed
	}
	if q.rsv.busy() {
		return Reservation{}, ErrReservationInProgress
	}
	if n < 1 {
		return Reservation{}, fmt.Errorf("%w: reserve %d elements", ErrInvalidArgument, n)
	}
	head, tail := q.hdr.head(), q.hdr.tail()
	if unused := q.cap - (tail - head); n > unused {
		return Reservation{}, fmt.Errorf("%w: reserve %d, unused %d", ErrInsufficientSpace, n, unused)
	}
	if tail+n > q.cap {
		copy(q.data(0, tail-head), q.data(head, tail))
		tail -= head
		q.hdr.setHead(0)
		q.hdr.setTail(tail)
	}
	return q.rsv.begin(q.data(tail, tail+n), n), nil
}

// Enqueue publishes the whole reservation by advancing the header tail.
func (q *DataRing) Enqueue(r Reservation) error {
	return q.EnqueueN(r, q.rsv.n)
}

// EnqueueN publishes the first n reserved elements and releases the rest.
func (q *DataRing) EnqueueN(r Reservation, n int) error {
	if !q.hdr.valid() {
		return ErrClosed
	}
	if !q.rsv.owns(r) {
		return ErrNoReservation
	}
	if n < 0 {
		return fmt.Errorf("%w: enqueue %d elements", ErrInvalidArgument, n)
	}
	if n > q.rsv.n {
		return fmt.Errorf("%w: enqueue %d, reserved %d", ErrOverCommit, n, q.rsv.n)
	}
	q.hdr.setTail(q.hdr.tail() + n)
	q.rsv.end()
	return nil
}

// Cancel abandons the outstanding reservation without publishing it.
func (q *DataRing) Cancel(r Reservation) error {
	if !q.hdr.valid() {
		return ErrClosed
	}
	if !q.rsv.owns(r) {
		return ErrNoReservation
	}
	q.rsv.end()
	return nil
}

// Dequeue copies len(dst)/Kind().Size() elements from the head into dst
// and consumes them. len(dst) must be a multiple of the element size.
func (q *DataRing) Dequeue(dst []byte) error {
	if !q.hdr.valid() {
		return ErrClosed
	}
	if len(dst)%q.size != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of %v elements", ErrInvalidArgument, len(dst), q.kind)
	}
	n := len(dst) / q.size
	head, tail := q.hdr.head(), q.hdr.tail()
	if n > tail-head {
		return fmt.Errorf("%w: dequeue %d, used %d", ErrInsufficientData, n, tail-head)
	}
	copy(dst, q.data(head, head+n))
	q.hdr.setHead(head + n)
	return nil
}

// Used returns the number of committed, unread elements.
func (q *DataRing) Used() int {
	if !q.hdr.valid() {
		return 0
	}
	return q.hdr.tail() - q.hdr.head()
}

// Unused returns the number of elements that can still be reserved.
func (q *DataRing) Unused() int {
	return q.cap - q.Used()
}

// Cap returns the capacity in elements.
func (q *DataRing) Cap() int {
	return q.cap
}

// IsEmpty reports whether no committed elements remain.
func (q *DataRing) IsEmpty() bool {
	return q.Used() == 0
}

// Kind returns the element-type tag recorded in the region.
func (q *DataRing) Kind() Kind {
	return q.kind
}

// Head returns the header head index.
func (q *DataRing) Head() int {
	if !q.hdr.valid() {
		return 0
	}
	return q.hdr.head()
}

// Tail returns the header tail index.
func (q *DataRing) Tail() int {
	if !q.hdr.valid() {
		return 0
	}
	return q.hdr.tail()
}

// Region returns the whole managed region, header included. It is meant for
// attaching another accessor; callers must not modify it directly.
func (q *DataRing) Region() []byte {
	return q.mem
}

// Shared reports whether the region is a shared mapping.
func (q *DataRing) Shared() bool {
	return q.region != nil && q.region.Shared()
}

// Path returns the backing file of a file-backed region, or "".
func (q *DataRing) Path() string {
	if q.region == nil {
		return ""
	}
	return q.region.Path()
}

// Close detaches the accessor and releases a region it allocated or
// mapped. Memory passed to AttachDataRing stays with the caller. Closing
// twice is a no-op.
func (q *DataRing) Close() error {
	q.hdr = header{}
	q.mem = nil
	q.cap = 0
	q.rsv.end()
	if q.region == nil {
		return nil
	}
	region := q.region
	q.region = nil
	return region.Close()
}

// data returns the byte view over elements [i, j).
func (q *DataRing) data(i, j int) []byte {
	lo, hi := HeaderSize+i*q.size, HeaderSize+j*q.size
	return q.mem[lo:hi:hi]
}

var _ ByteQueue = (*DataRing)(nil)
