// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import (
	"math/bits"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Region layout of a DataRing:
//
//	[0,4)   kind tag
//	[4,8)   head index, in elements
//	[8,12)  tail index, in elements
//	[12,…)  element data
//
// Header fields are unsigned 32-bit little-endian on every host, so an
// accessor written in any language can read them. Element data is in the
// writer's native byte order.
const (
	HeaderSize = 12 // bytes before the element data

	offKind = 0 // element-type tag
	offHead = 4 // index of the oldest element
	offTail = 8 // index one past the newest committed element
)

// maxIndex bounds head and tail so they fit the 32-bit header fields.
const maxIndex = 1<<32 - 1

// bigEndian is set on hosts whose native order differs from the layout.
var bigEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 0
}()

// header holds atomix handles placed over the fixed fields of a region.
//
// The tail is published with release and read with acquire, so element
// bytes written before a commit are visible to an accessor that observes
// the new tail. This keeps fields from tearing; it does not make
// concurrent producers or consumers safe.
//
// The zero header belongs to a closed ring.
type header struct {
	kindField *atomix.Uint32
	headField *atomix.Uint32
	tailField *atomix.Uint32
}

// newHeader places the handles. The caller checks headerFits first.
func newHeader(region []byte) header {
	_, k := atomix.PlaceAlignedUint32(region, offKind)
	_, h := atomix.PlaceAlignedUint32(region, offHead)
	_, t := atomix.PlaceAlignedUint32(region, offTail)
	return header{kindField: k, headField: h, tailField: t}
}

// headerFits reports whether region can carry a header in place.
func headerFits(region []byte) bool {
	return len(region) >= HeaderSize && atomix.CanPlaceAligned4(region, 0)
}

func (h header) valid() bool { return h.tailField != nil }

func (h header) kind() Kind { return Kind(le32(h.kindField.LoadAcquire())) }
func (h header) setKind(k Kind) { h.kindField.StoreRelease(le32(uint32(k))) }
func (h header) head() int { return int(le32(h.headField.LoadAcquire())) }
func (h header) setHead(i int) { h.headField.StoreRelease(le32(uint32(i))) }
func (h header) tail() int { return int(le32(h.tailField.LoadAcquire())) }
func (h header) setTail(i int) { h.tailField.StoreRelease(le32(uint32(i))) }

// le32 converts between native and little-endian representation.
func le32(v uint32) uint32 {
	if bigEndian {
		return bits.ReverseBytes32(v)
	}
	return v
}
