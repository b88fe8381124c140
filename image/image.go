// Package image provides an immutable, random-access view over a firmware
// image's raw bytes: the ECU ROM dump the detector scans for calibration
// tables. Offsets are always byte offsets into this buffer; the image is
// never mutated.
package image

import (
	"fmt"
	"os"

	"github.com/ms42scan/ms42scan/internal/binreader"
)

// ErrOutOfBounds is returned by any read that would run past either end
// of the image.
var ErrOutOfBounds = binreader.ErrOutOfBounds

// Image is an immutable, length-known byte buffer with an optional
// informational base address. BaseAddress never affects offsets; it
// exists only for presentation (e.g. XDF export of absolute addresses).
type Image struct {
	r           *binreader.Reader
	baseAddress uint32
	closer      func() error
}

// New wraps an in-memory byte slice. The slice is not copied; the caller
// must not mutate it afterward.
func New(data []byte) *Image {
	return &Image{r: binreader.New(data)}
}

// NewWithBase wraps data and records an informational base address.
func NewWithBase(data []byte, baseAddress uint32) *Image {
	img := New(data)
	img.baseAddress = baseAddress
	return img
}

// Open reads a file fully into memory.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("image: reading %s: %w", path, err)
	}
	return New(data), nil
}

// BaseAddress returns the image's informational base address, or 0 if
// none was set.
func (img *Image) BaseAddress() uint32 {
	return img.baseAddress
}

// Size returns the number of bytes in the image.
func (img *Image) Size() int {
	return img.r.Len()
}

// Slice returns a view of length bytes starting at offset.
func (img *Image) Slice(offset, length int) ([]byte, error) {
	return img.r.Slice(offset, length)
}

// ReadU16LE reads a little-endian unsigned 16-bit element at offset.
func (img *Image) ReadU16LE(offset int) (uint16, error) {
	return img.r.ReadU16(offset)
}

// ReadU16LEArray reads count consecutive little-endian uint16 elements
// starting at offset.
func (img *Image) ReadU16LEArray(offset, count int) ([]uint16, error) {
	return img.r.ReadU16Array(offset, count)
}

// ReadIntElement reads a single element of elementSizeBits width
// (8/16/32), signed or unsigned, at offset. Used by the template
// rescanner, which supports element sizes other than the brute-force
// scanner's fixed 16-bit unsigned elements.
func (img *Image) ReadIntElement(offset, elementSizeBits int, signed bool) (int64, error) {
	return img.r.ReadIntElement(offset, elementSizeBits, signed)
}

// Close releases any resources backing the image (a no-op for an
// in-memory image; meaningful for a memory-mapped one).
func (img *Image) Close() error {
	if img.closer != nil {
		return img.closer()
	}
	return nil
}
