// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufq

import (
	"fmt"
	"strings"
)

// Kind is the element-type tag stored in a DataRing header. It selects the
// numeric type used to interpret the data bytes and fixes the element size.
//
// Tag values are part of the region layout and must not be renumbered.
type Kind uint32

const (
	Int8 Kind = iota
	Uint8
	Uint8Clamped
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
	Int64
	Uint64

	numKinds
)

var kindInfo = [numKinds]struct {
	name string
	size int
}{
	Int8:         {"int8", 1},
	Uint8:        {"uint8", 1},
	Uint8Clamped: {"uint8clamped", 1},
	Int16:        {"int16", 2},
	Uint16:       {"uint16", 2},
	Int32:        {"int32", 4},
	Uint32:       {"uint32", 4},
	Float32:      {"float32", 4},
	Float64:      {"float64", 8},
	Int64:        {"int64", 8},
	Uint64:       {"uint64", 8},
}

// Valid reports whether k is a known tag.
func (k Kind) Valid() bool {
	return k < numKinds
}

// Size returns the element size in bytes, or 0 for an unknown tag.
func (k Kind) Size() int {
	if !k.Valid() {
		return 0
	}
	return kindInfo[k].size
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
	return kindInfo[k].name
}

// ParseKind returns the Kind named s (case-insensitive), as printed by String.
func ParseKind(s string) (Kind, error) {
	for k := range numKinds {
		if strings.EqualFold(s, kindInfo[k].name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, s)
}
