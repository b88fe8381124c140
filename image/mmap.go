//go:build !windows
// +build !windows

package image

import (
	"fmt"
	"os"
	"syscall"
)

// OpenMmap memory-maps a file read-only for zero-copy access. Preferred
// over Open for multi-megabyte ROM dumps scanned by BruteScanner, since
// it avoids a full-file copy into the Go heap. The returned Image must
// be Closed to release the mapping.
func OpenMmap(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: opening %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("image: stat %s: %w", path, err)
	}

	size := fi.Size()
	if size == 0 {
		img := New(nil)
		img.closer = f.Close
		return img, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("image: mmap %s: %w", path, err)
	}

	img := New(data)
	img.closer = func() error {
		if uerr := syscall.Munmap(data); uerr != nil {
			f.Close()
			return uerr
		}
		return f.Close()
	}
	return img, nil
}
