package scanner

import "sync"

// rowBufPool reuses the scratch []float64 row buffers the correlation
// test needs: a small fixed-capacity bucket reused across offsets
// instead of a fresh allocation per row per offset in the hot loop.
// Candidate values themselves are never drawn from this pool; they are
// copied out of the image into their own slice owned by the
// DetectedMap.
var rowBufPool = sync.Pool{
	New: func() any {
		buf := make([]float64, 0, DefaultMaxCols)
		return &buf
	},
}

func getRowBuf(n int) []float64 {
	bufp := rowBufPool.Get().(*[]float64)
	buf := *bufp
	if cap(buf) < n {
		buf = make([]float64, n)
	} else {
		buf = buf[:n]
	}
	return buf
}

func putRowBuf(buf []float64) {
	buf = buf[:0]
	rowBufPool.Put(&buf)
}
