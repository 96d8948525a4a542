// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import (
	"fmt"

	"code.hybscloud.com/bufq/internal/shm"
)

// Options configures buffer creation.
type Options struct {
	// Capacity in the buffer's unit (elements, bytes, or Kind elements)
	capacity int

	// DataRing region
	kind   Kind
	shared bool   // MAP_SHARED mapping instead of heap memory
	path   string // file backing the mapping; implies shared
}

// Builder creates buffers with fluent configuration.
//
// Example:
//
//	// Element ring of 64 requests
//	r, err := bufq.BuildRing[*Request](bufq.New(64))
//
//	// 4KB byte ring
//	b, err := bufq.New(4096).BuildBytes()
//
//	// 1024 float32 samples in a file another process can attach to
//	d, err := bufq.New(1024).Kind(bufq.Float32).File("/dev/shm/samples").BuildData()
type Builder struct {
	opts Options
}

// New creates a builder with the given capacity.
//
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("bufq: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity, kind: Uint8}}
}

// Kind sets the DataRing element type. Default: Uint8.
// Ignored by BuildRing and BuildBytes.
func (b *Builder) Kind(k Kind) *Builder {
	b.opts.kind = k
	return b
}

// Shared places the DataRing region in an anonymous MAP_SHARED mapping,
// visible to processes forked after creation.
// Ignored by BuildRing and BuildBytes.
func (b *Builder) Shared() *Builder {
	b.opts.shared = true
	return b
}

// File places the DataRing region in a new file at path, mapped shared,
// so another process can attach with OpenDataRing. The file must not
// exist. Implies Shared.
func (b *Builder) File(path string) *Builder {
	b.opts.path = path
	b.opts.shared = true
	return b
}

// BuildRing creates a Ring[T] holding Capacity elements.
func BuildRing[T any](b *Builder) (*Ring[T], error) {
	return NewRing[T](b.opts.capacity)
}

// BuildBytes creates a ByteRing of Capacity bytes.
func (b *Builder) BuildBytes() (*ByteRing, error) {
	return NewByteRing(b.opts.capacity)
}

// BuildData creates a DataRing of Capacity elements of Kind.
//
// Region selection:
//
//	File(path) → file-backed shared mapping
//	Shared()   → anonymous shared mapping
//	default    → private heap memory
func (b *Builder) BuildData() (*DataRing, error) {
	switch {
	case b.opts.path != "":
		path := b.opts.path
		return newDataRing(b.opts.kind, b.opts.capacity, func(size int) (*shm.Region, error) {
			return shm.Create(path, size)
		})
	case b.opts.shared:
		return newDataRing(b.opts.kind, b.opts.capacity, shm.Anonymous)
	default:
		return NewDataRing(b.opts.kind, b.opts.capacity)
	}
}

// String describes the configuration, for logs.
func (b *Builder) String() string {
	switch {
	case b.opts.path != "":
		return fmt.Sprintf("bufq.Builder{capacity: %d, kind: %v, file: %q}", b.opts.capacity, b.opts.kind, b.opts.path)
	case b.opts.shared:
		return fmt.Sprintf("bufq.Builder{capacity: %d, kind: %v, shared}", b.opts.capacity, b.opts.kind)
	default:
		return fmt.Sprintf("bufq.Builder{capacity: %d, kind: %v}", b.opts.capacity, b.opts.kind)
	}
}
