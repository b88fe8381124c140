// Package axis probes the bytes surrounding an accepted table candidate
// for the monotonic breakpoint vectors ("axes") calibration tables
// conventionally store alongside their data: X-axis breakpoints
// immediately after the table, Y-axis breakpoints immediately before.
// Monotonicity is the only structural invariant a breakpoint table must
// satisfy, so it is the only test applied here.
package axis

import "github.com/ms42scan/ms42scan/image"

// reader is the minimal image.Image surface the sniffer needs.
type reader interface {
	ReadU16LEArray(offset, count int) ([]uint16, error)
}

// Sniff probes the neighbourhood of an accepted (offset, rows, cols)
// candidate for X- and Y-axis breakpoint vectors. Each trial reads
// `length` little-endian u16 values and accepts the first monotonic
// hit; out-of-bounds trials are skipped, not treated as errors. Both
// return values are independently nil when no trial succeeds.
func Sniff(img *image.Image, offset, rows, cols int) (axisX, axisY []float64) {
	return sniff(img, offset, rows, cols)
}

func sniff(img reader, offset, rows, cols int) (axisX, axisY []float64) {
	tableBytes := rows * cols * 2

	xTrials := []int{
		offset + tableBytes,
		offset + tableBytes + cols*2,
	}
	for _, trial := range xTrials {
		if v, ok := tryVector(img, trial, cols); ok {
			axisX = v
			break
		}
	}

	yTrials := []int{
		clampNonNegative(offset - 2*rows*2),
		clampNonNegative(offset - rows*2),
	}
	for _, trial := range yTrials {
		if v, ok := tryVector(img, trial, rows); ok {
			axisY = v
			break
		}
	}

	return axisX, axisY
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// tryVector reads length u16 values at offset and reports whether they
// form a monotonic vector.
func tryVector(img reader, offset, length int) ([]float64, bool) {
	if offset < 0 {
		return nil, false
	}
	raw, err := img.ReadU16LEArray(offset, length)
	if err != nil {
		return nil, false
	}
	v := make([]float64, length)
	for i, x := range raw {
		v[i] = float64(x)
	}
	if !isMonotonic(v) {
		return nil, false
	}
	return v, true
}

// isMonotonic reports whether v is non-decreasing throughout or
// non-increasing throughout (equality satisfies both directions). A
// vector of fewer than two elements is trivially monotonic.
func isMonotonic(v []float64) bool {
	if len(v) < 2 {
		return true
	}
	nonDecreasing, nonIncreasing := true, true
	for i := 0; i < len(v)-1; i++ {
		if v[i] > v[i+1] {
			nonDecreasing = false
		}
		if v[i] < v[i+1] {
			nonIncreasing = false
		}
	}
	return nonDecreasing || nonIncreasing
}
