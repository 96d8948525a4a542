// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package shm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Anonymous returns a zeroed MAP_SHARED|MAP_ANON region of size bytes.
// The mapping is shared with child processes created after it.
func Anonymous(size int) (*Region, error) {
	if size < 1 {
		return nil, fmt.Errorf("shm: invalid size %d", size)
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("shm: mmap anonymous: %w", err)
	}
	return &Region{mem: mem, mapped: true}, nil
}

// Create creates the file at path exclusively, sizes it to size bytes and
// maps it shared. The new region is zeroed.
func Create(path string, size int) (*Region, error) {
	if size < 1 {
		return nil, fmt.Errorf("shm: invalid size %d", size)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shm: create %s: %w", path, err)
	}
	cleanup := func() {
		file.Close()
		os.Remove(path)
	}
	if err := file.Truncate(int64(size)); err != nil {
		cleanup()
		return nil, fmt.Errorf("shm: resize %s: %w", path, err)
	}
	mem, err := mapFile(file, size)
	if err != nil {
		cleanup()
		return nil, err
	}
	return &Region{mem: mem, file: file, path: path, mapped: true}, nil
}

// Open maps an existing file region shared. The caller validates content.
func Open(path string) (*Region, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("shm: open %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shm: stat %s: %w", path, err)
	}
	if info.Size() < 1 {
		file.Close()
		return nil, fmt.Errorf("shm: %s is empty", path)
	}
	mem, err := mapFile(file, int(info.Size()))
	if err != nil {
		file.Close()
		return nil, err
	}
	return &Region{mem: mem, file: file, path: path, mapped: true}, nil
}

func mapFile(file *os.File, size int) ([]byte, error) {
	mem, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shm: mmap %s: %w", file.Name(), err)
	}
	return mem, nil
}

func unmap(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("shm: munmap: %w", err)
	}
	return nil
}
