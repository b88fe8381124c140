// Package binreader provides little-endian, bounds-checked, offset-addressed
// reads over a byte slice.
//
// Unlike a cursor-advancing decoder, every read here takes an explicit
// byte offset: the calibration-table scanner probes the same buffer at
// many unrelated offsets per pass and has no notion of a current position.
package binreader

import (
	"encoding/binary"
	"errors"
)

// ErrOutOfBounds is returned when a read or slice would run past either
// end of the underlying buffer.
var ErrOutOfBounds = errors.New("binreader: out of bounds")

// ByteOrder is the byte order used throughout this package.
var ByteOrder = binary.LittleEndian

// Reader gives bounds-checked, offset-addressed access to a byte slice.
// It never copies the backing array on construction.
type Reader struct {
	data []byte
}

// New wraps data for bounds-checked reads. The slice is not copied; the
// caller must not mutate it while the Reader is in use.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of bytes in the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

func (r *Reader) bounds(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(r.data) {
		return ErrOutOfBounds
	}
	return nil
}

// Slice returns a view of length bytes starting at offset. The returned
// slice aliases the underlying buffer.
func (r *Reader) Slice(offset, length int) ([]byte, error) {
	if err := r.bounds(offset, length); err != nil {
		return nil, err
	}
	return r.data[offset : offset+length], nil
}

// ReadU8 reads one byte at offset.
func (r *Reader) ReadU8(offset int) (uint8, error) {
	if err := r.bounds(offset, 1); err != nil {
		return 0, err
	}
	return r.data[offset], nil
}

// ReadU16 reads a little-endian unsigned 16-bit integer at offset.
func (r *Reader) ReadU16(offset int) (uint16, error) {
	if err := r.bounds(offset, 2); err != nil {
		return 0, err
	}
	return ByteOrder.Uint16(r.data[offset:]), nil
}

// ReadU32 reads a little-endian unsigned 32-bit integer at offset.
func (r *Reader) ReadU32(offset int) (uint32, error) {
	if err := r.bounds(offset, 4); err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(r.data[offset:]), nil
}

// ReadU16Array reads count consecutive little-endian uint16 values
// starting at offset.
func (r *Reader) ReadU16Array(offset, count int) ([]uint16, error) {
	if count < 0 {
		return nil, ErrOutOfBounds
	}
	if err := r.bounds(offset, count*2); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = ByteOrder.Uint16(r.data[offset+i*2:])
	}
	return out, nil
}

// ReadIntElement reads a single element of elementSizeBits width
// (8/16/32) at offset, signed or unsigned per signed, widened to int64.
func (r *Reader) ReadIntElement(offset, elementSizeBits int, signed bool) (int64, error) {
	switch elementSizeBits {
	case 8:
		v, err := r.ReadU8(offset)
		if err != nil {
			return 0, err
		}
		if signed {
			return int64(int8(v)), nil
		}
		return int64(v), nil
	case 16:
		v, err := r.ReadU16(offset)
		if err != nil {
			return 0, err
		}
		if signed {
			return int64(int16(v)), nil
		}
		return int64(v), nil
	case 32:
		v, err := r.ReadU32(offset)
		if err != nil {
			return 0, err
		}
		if signed {
			return int64(int32(v)), nil
		}
		return int64(v), nil
	default:
		return 0, ErrOutOfBounds
	}
}
