//go:build windows
// +build windows

package image

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
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

	sizeLow := uint32(size)
	sizeHigh := uint32(size >> 32)
	handle, err := syscall.CreateFileMapping(syscall.Handle(f.Fd()), nil, syscall.PAGE_READONLY, sizeHigh, sizeLow, nil)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("image: CreateFileMapping %s: %w", path, err)
	}

	ptr, err := syscall.MapViewOfFile(handle, syscall.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		syscall.CloseHandle(handle)
		f.Close()
		return nil, fmt.Errorf("image: MapViewOfFile %s: %w", path, err)
	}

	data := (*[1 << 30]byte)(unsafe.Pointer(ptr))[:size:size]

	img := New(data)
	img.closer = func() error {
		uerr := syscall.UnmapViewOfFile(ptr)
		syscall.CloseHandle(handle)
		f.Close()
		return uerr
	}
	return img, nil
}
