// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shm allocates the backing regions used by bufq.DataRing.
//
// A region is either private heap memory or a MAP_SHARED mapping, anonymous
// (inherited across fork) or backed by a file that other processes can map.
// Heap regions are 8-byte aligned so the 32-bit header fields can be
// accessed atomically.
package shm

import (
	"errors"
	"os"
	"unsafe"
)

// ErrUnsupported is returned by the mapping constructors on platforms
// without mmap support.
var ErrUnsupported = errors.New("shm: shared mapping not supported on this platform")

// ErrClosed is returned when closing a region twice.
var ErrClosed = errors.New("shm: region closed")

// Region is a contiguous block of memory owned by one accessor.
type Region struct {
	mem    []byte
	file   *os.File
	path   string
	mapped bool
	closed bool
}

// Heap returns a private region of size bytes, zeroed and 8-byte aligned.
func Heap(size int) *Region {
	words := make([]uint64, (size+7)/8)
	var mem []byte
	if size > 0 {
		mem = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size)
	}
	return &Region{mem: mem}
}

// Bytes returns the region memory. The slice is invalid after Close for
// mapped regions.
func (r *Region) Bytes() []byte {
	return r.mem
}

// Len returns the region size in bytes.
func (r *Region) Len() int {
	return len(r.mem)
}

// Shared reports whether the region is a MAP_SHARED mapping.
func (r *Region) Shared() bool {
	return r.mapped
}

// Path returns the backing file path, or "" for heap and anonymous regions.
func (r *Region) Path() string {
	return r.path
}

// Close releases the mapping and the backing file, if any.
// Heap regions are left to the garbage collector.
func (r *Region) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	var err error
	if r.mapped {
		err = unmap(r.mem)
	}
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	r.mem = nil
	return err
}
