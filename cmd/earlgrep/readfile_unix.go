//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// readFile maps the file read-only into memory. The mapping is searched in
// place and must not be used after release.
func readFile(name string) ([]byte, func() error, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 || !info.Mode().IsRegular() {
		// Mmap rejects empty mappings; pipes and devices have no size.
		b, err := os.ReadFile(name)
		return b, noRelease, err
	}
	if int64(int(size)) != size {
		return nil, nil, &os.PathError{Op: "mmap", Path: name, Err: unix.EFBIG}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, &os.PathError{Op: "mmap", Path: name, Err: err}
	}
	release := func() error {
		if err := unix.Munmap(data); err != nil {
			return &os.PathError{Op: "munmap", Path: name, Err: err}
		}
		return nil
	}
	return data, release, nil
}
