// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package shm

// Anonymous is not supported on this platform.
func Anonymous(size int) (*Region, error) {
	return nil, ErrUnsupported
}

// Create is not supported on this platform.
func Create(path string, size int) (*Region, error) {
	return nil, ErrUnsupported
}

// Open is not supported on this platform.
func Open(path string) (*Region, error) {
	return nil, ErrUnsupported
}

func unmap(mem []byte) error {
	return nil
}
