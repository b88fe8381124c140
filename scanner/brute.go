// Package scanner implements the brute-force offset×column search: the
// parallel sliding-window enumeration of (offset, cols) pairs that is
// the detector's primary candidate source. For every offset it grows
// cols from 2 upward, accepting a width the moment minRows consecutive
// rows all correlate with their neighbour above a fixed threshold, then
// hands the accepted region to the axis sniffer and classifier before
// emitting a candidate.
package scanner

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ms42scan/ms42scan/axis"
	"github.com/ms42scan/ms42scan/classify"
	"github.com/ms42scan/ms42scan/correlation"
	"github.com/ms42scan/ms42scan/image"
	"github.com/ms42scan/ms42scan/model"
)

// elementSize is the brute-force scanner's fixed element width:
// little-endian unsigned 16-bit.
const elementSize = model.DefaultElementSize

// correlationThreshold is the minimum absolute adjacent-row Pearson
// correlation a candidate must clear at every row boundary.
const correlationThreshold = 0.85

// progressStride is how many offset-visits elapse between ProgressFunc
// calls. Advisory only; it never gates correctness.
const progressStride = 10000

// ProgressFunc optionally receives (scanned, limit) at most every
// progressStride offset-visits, aggregated across all workers.
type ProgressFunc func(scanned, limit int)

// ScanOptions configures a Scan call. The zero value is usable: it
// scans with MinRows=3, MaxCols=128, and one worker per CPU.
type ScanOptions struct {
	// MinRows is the fixed row count every emitted candidate has. 0
	// means model.DefaultMinRows (3).
	MinRows int
	// MaxCols is the largest column count tried at any offset. 0 means
	// DefaultMaxCols (128).
	MaxCols int
	// Workers is the number of parallel goroutines. 0 means
	// runtime.GOMAXPROCS(0).
	Workers int
	// GrowRows enables a non-canonical row-growth variant: once
	// minRows rows correlate, keep absorbing further rows while each
	// new row correlates with the previous at >= growRowsThreshold,
	// scoring by the mean of all adjacent correlations instead of a
	// flat 1.0. Disabled by default; the canonical core emits at
	// MinRows only.
	GrowRows bool
	// Progress, if non-nil, receives aggregate progress across all
	// workers. Each worker adds its visited offsets when it finishes (or
	// is cancelled), and a call is made only once at least
	// progressStride offsets have accumulated since the previous call.
	Progress ProgressFunc
}

// DefaultMaxCols is the largest column count tried at any offset when
// ScanOptions.MaxCols is left at zero.
const DefaultMaxCols = 128

const growRowsThreshold = 0.7

func (o ScanOptions) normalized() ScanOptions {
	if o.MinRows <= 0 {
		o.MinRows = model.DefaultMinRows
	}
	if o.MaxCols <= 0 {
		o.MaxCols = DefaultMaxCols
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Scanner runs the brute-force detector over a ByteImage.
type Scanner struct {
	Hints *model.DisassemblerHints
}

// Scan enumerates candidate tables: guards, parallel partitioned
// offset×cols search, row-correlation acceptance, and MapKey
// deduplication. ctx cancellation is cooperative, polled between
// a worker's offset iterations; it is never required for correctness
// and the call still returns whatever each worker had already found.
func (s *Scanner) Scan(ctx context.Context, img *image.Image, opts ScanOptions) ([]model.DetectedMap, error) {
	opts = opts.normalized()

	// Strict "<": an image of exactly elementSize*minRows*2 bytes fits
	// one minRows x 2 table at offset 0 (offset+need <= size permits
	// equality) and must still be scanned.
	if img.Size() < elementSize*opts.MinRows*2 {
		return nil, nil
	}
	limit := img.Size() - elementSize*opts.MinRows
	if limit <= 0 {
		return nil, nil
	}

	overlap := overlapFor(opts.MaxCols, opts.MinRows, elementSize)
	parts := partitionRange(limit, opts.Workers, overlap)

	var scanned int64
	var progressMu sync.Mutex
	lastReported := int64(0)
	reportProgress := func(delta int64) {
		if opts.Progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		scanned += delta
		if scanned-lastReported >= progressStride {
			lastReported = scanned
			opts.Progress(int(scanned), limit)
		}
	}

	results := make([][]model.DetectedMap, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range parts {
		i, p := i, p
		g.Go(func() error {
			results[i] = s.scanPartition(gctx, img, p, opts, reportProgress)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.DetectedMap
	for _, r := range results {
		all = append(all, r...)
	}
	return suppressOverlapping(model.Dedup(all)), nil
}

// suppressOverlapping keeps only the earliest-offset candidate in any
// run of candidates whose byte ranges overlap. At cols=2 the
// correlation test is degenerate: the Pearson coefficient of any two
// non-constant two-element rows is mathematically always exactly ±1
// (mean-centering two points always yields a proportional pair), so a
// real table immediately followed by other non-constant data (an axis,
// another table) produces a phantom "detection" at every offset whose
// window merely slides a few bytes into that real data. Those phantoms
// are not independent tables; they are the same bytes read from a
// different starting point. Sorting by offset and dropping any
// candidate that starts before the previous kept candidate's range
// ends collapses them back to the one real detection.
func suppressOverlapping(maps []model.DetectedMap) []model.DetectedMap {
	sort.Slice(maps, func(i, j int) bool { return maps[i].Offset < maps[j].Offset })

	out := make([]model.DetectedMap, 0, len(maps))
	nextFree := 0
	for _, m := range maps {
		if m.Offset < nextFree {
			continue
		}
		out = append(out, m)
		nextFree = m.Offset + m.Rows*m.Cols*elementSize
	}
	return out
}

// scanPartition scans one worker's [Start,End) offset range, returning
// its local (undeduplicated) candidate list.
func (s *Scanner) scanPartition(ctx context.Context, img *image.Image, p partition, opts ScanOptions, reportProgress func(int64)) []model.DetectedMap {
	var local []model.DetectedMap
	var visited int64

	for o := p.Start; o < p.End; o++ {
		if visited%2048 == 0 {
			select {
			case <-ctx.Done():
				reportProgress(visited)
				return local
			default:
			}
		}
		visited++

		if m, ok := s.tryOffset(img, o, opts); ok {
			local = append(local, m)
		}
	}
	reportProgress(visited)
	return local
}

// tryOffset runs the cols loop at a single offset, returning the first
// accepted candidate (growing cols from 2 upward; the first width that
// satisfies the correlation test wins).
func (s *Scanner) tryOffset(img *image.Image, o int, opts ScanOptions) (model.DetectedMap, bool) {
	for cols := 2; cols <= opts.MaxCols; cols++ {
		need := cols * opts.MinRows * elementSize
		if o+need > img.Size() {
			break
		}

		arr, err := img.ReadU16LEArray(o, cols*opts.MinRows)
		if err != nil {
			continue
		}

		rows := opts.MinRows
		corrs, ok := rowCorrelations(arr, cols, rows)
		if !ok {
			continue
		}
		if opts.GrowRows {
			arr, rows = growRows(img, o, cols, rows, arr, opts.MaxRowsCap())
			for r := opts.MinRows - 1; r < rows-1; r++ {
				corrs = append(corrs, correlation.Pearson(widenRow(arr, cols, r), widenRow(arr, cols, r+1)))
			}
		}

		m := model.NewDetectedMap("AutoDetect", o, rows, cols, arr)
		m.Score = scoreFor(corrs, opts.GrowRows)
		m.AxisX, m.AxisY = axis.Sniff(img, o, rows, cols)
		m.Type = classify.Classify(arr, m.AxisX, s.Hints, o)
		return m, true
	}
	return model.DetectedMap{}, false
}

// MaxRowsCap bounds GrowRows' row growth so a single pathological
// constant-ish region cannot absorb the rest of the image.
func (o ScanOptions) MaxRowsCap() int {
	return 64
}

// rowCorrelations computes the Pearson correlation between every pair
// of adjacent rows. ok is false the moment any pair falls below
// correlationThreshold in absolute value.
func rowCorrelations(arr []uint16, cols, rows int) (corrs []float64, ok bool) {
	a := getRowBuf(cols)
	b := getRowBuf(cols)
	defer putRowBuf(a)
	defer putRowBuf(b)

	corrs = make([]float64, 0, rows-1)
	for r := 0; r < rows-1; r++ {
		fillRow(a, arr, cols, r)
		fillRow(b, arr, cols, r+1)
		c := correlation.Pearson(a, b)
		if math.Abs(c) < correlationThreshold {
			return nil, false
		}
		corrs = append(corrs, c)
	}
	return corrs, true
}

// widenRow returns a freshly allocated copy of row `row`'s cols values
// as float64. Used by growRows, which needs to retain the buffer past a
// single correlation check.
func widenRow(arr []uint16, cols, row int) []float64 {
	out := make([]float64, cols)
	fillRow(out, arr, cols, row)
	return out
}

func fillRow(dst []float64, arr []uint16, cols, row int) {
	base := row * cols
	for i := 0; i < cols; i++ {
		dst[i] = float64(arr[base+i])
	}
}

// growRows extends rows past minRows while each newly absorbed row
// correlates with the previous one at >= growRowsThreshold. arr
// initially holds exactly minRows*cols values; growRows appends
// further rows in place, up to maxRows total, stopping at the first
// row that fails the threshold or at the image boundary.
func growRows(img *image.Image, offset, cols, minRows int, arr []uint16, maxRows int) ([]uint16, int) {
	rows := minRows
	for rows < maxRows {
		nextOffset := offset + rows*cols*elementSize
		nextRow, err := img.ReadU16LEArray(nextOffset, cols)
		if err != nil {
			break
		}
		prevRow := widenRow(arr, cols, rows-1)
		candidate := make([]float64, cols)
		for i, v := range nextRow {
			candidate[i] = float64(v)
		}
		if math.Abs(correlation.Pearson(prevRow, candidate)) < growRowsThreshold {
			break
		}
		arr = append(arr, nextRow...)
		rows++
	}
	return arr, rows
}

func scoreFor(corrs []float64, grown bool) float64 {
	if !grown || len(corrs) == 0 {
		return 1.0
	}
	var sum float64
	for _, c := range corrs {
		sum += math.Abs(c)
	}
	return sum / float64(len(corrs))
}
