// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shm

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutMmap(t *testing.T) {
	t.Helper()
	switch runtime.GOOS {
	case "linux", "darwin", "freebsd", "netbsd", "openbsd", "dragonfly":
	default:
		t.Skipf("shared mappings not supported on %s", runtime.GOOS)
	}
}

func Test_Heap(t *testing.T) {
	assert := assert.New(t)

	for _, size := range []int{1, 12, 13, 52, 4096} {
		r := Heap(size)
		assert.Equal(size, r.Len())
		assert.Zero(uintptr(unsafe.Pointer(unsafe.SliceData(r.Bytes())))%8, "size %d not 8-byte aligned", size)
		assert.False(r.Shared())
		assert.Empty(r.Path())
		assert.NoError(r.Close())
		assert.ErrorIs(r.Close(), ErrClosed)
	}
}

func Test_Anonymous(t *testing.T) {
	skipWithoutMmap(t)
	assert := assert.New(t)

	r, err := Anonymous(100)
	require.NoError(t, err)
	assert.Equal(100, r.Len())
	assert.True(r.Shared())
	assert.Empty(r.Path())

	// Fresh mappings are zeroed and writable
	assert.Equal(make([]byte, 100), r.Bytes())
	r.Bytes()[99] = 0xff

	assert.NoError(r.Close())
	assert.Nil(r.Bytes())
	assert.ErrorIs(r.Close(), ErrClosed)

	_, err = Anonymous(0)
	assert.Error(err)
}

func Test_CreateOpen(t *testing.T) {
	skipWithoutMmap(t)
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "region")
	a, err := Create(path, 64)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(path, a.Path())
	assert.True(a.Shared())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(64, info.Size())

	// Exclusive creation
	_, err = Create(path, 64)
	assert.ErrorIs(err, fs.ErrExist)

	// A second mapping of the file sees writes through the first
	b, err := Open(path)
	require.NoError(t, err)
	assert.Equal(64, b.Len())
	copy(a.Bytes(), "shared")
	assert.Equal("shared", string(b.Bytes()[:6]))

	b.Bytes()[63] = 7
	assert.EqualValues(7, a.Bytes()[63])
	assert.NoError(b.Close())
}

func Test_OpenErrors(t *testing.T) {
	skipWithoutMmap(t)
	assert := assert.New(t)
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing"))
	assert.ErrorIs(err, fs.ErrNotExist)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = Open(empty)
	assert.Error(err)
}
