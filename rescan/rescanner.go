// Package rescan implements the template-guided rescan: given a catalog
// of previously known map locations (carried as XDF EMBEDDEDDATA
// fragments), it sweeps a window around each template's recorded
// address looking for a byte region that still looks like the same
// table, and returns the template rewritten to its new address. This
// recovers maps that drifted between firmware revisions without paying
// for a full brute-force rescan.
package rescan

import (
	"math"

	"github.com/ms42scan/ms42scan/image"
	"github.com/ms42scan/ms42scan/model"
)

// DefaultSearchRange is the library's default byte distance swept on
// either side of a template's recorded address, as set by
// NewDefaultOptions. A zero RescanOptions.SearchRange is not replaced by it.
const DefaultSearchRange = 4096

// DefaultStride is the byte step between successive sweep offsets when
// RescanOptions.Stride is left at zero.
const DefaultStride = 2

// plausibilityMeanLimit rejects obvious garbage (pointer tables, packed
// code) whose mean magnitude is implausibly large for a calibration
// table.
const plausibilityMeanLimit = 1_000_000

// RescanOptions configures Rescan. The zero value sweeps a SearchRange
// of 0, so only each template's own recorded address is tried: a
// literal no-op rewrite. Callers that want the library default sweep
// width must set SearchRange explicitly to DefaultSearchRange (or use
// NewDefaultOptions).
type RescanOptions struct {
	// SearchRange is how far to sweep on either side of each template's
	// recorded address. Zero is a valid, meaningful value (sweep only
	// the recorded address itself) and is never silently defaulted.
	SearchRange int
	// Stride is the byte step between successive sweep offsets. 0 means
	// DefaultStride.
	Stride int
}

// NewDefaultOptions returns RescanOptions with the library's default search
// range and stride, for callers that don't need the zero-range contract.
func NewDefaultOptions() RescanOptions {
	return RescanOptions{SearchRange: DefaultSearchRange, Stride: DefaultStride}
}

func (o RescanOptions) normalized() RescanOptions {
	if o.Stride <= 0 {
		o.Stride = DefaultStride
	}
	return o
}

// Rescan sweeps every template in templates against img, skipping
// offsets already claimed in knownByOffset, and returns a map of newly
// located offset -> rewritten rawXML. A template whose rawXML carries
// no usable EMBEDDEDDATA element, or whose attributes fail to parse, is
// skipped; it never aborts the rest of the rescan.
func Rescan(img *image.Image, templates []model.Template, knownByOffset map[int]string, opts RescanOptions) map[int]string {
	opts = opts.normalized()
	out := map[int]string{}

	for _, tmpl := range templates {
		elements, err := findEmbeddedData(tmpl.RawXML)
		if err != nil {
			continue
		}
		signed := tmpl.Datatype == "signed"
		for _, el := range elements {
			off, rewritten, ok := rescanOne(img, tmpl.RawXML, el, signed, knownByOffset, opts)
			if !ok {
				continue
			}
			out[off] = rewritten
			break // first hit wins per template
		}
	}
	return out
}

func rescanOne(img *image.Image, rawXML string, el embeddedDataElement, signed bool, knownByOffset map[int]string, opts RescanOptions) (int, string, bool) {
	bytesNeeded := el.cols * el.rows * (el.elementSizeBits / 8)

	lo := int(el.origAddress) - opts.SearchRange
	if lo < 0 {
		lo = 0
	}
	hi := int(el.origAddress) + opts.SearchRange
	if maxStart := img.Size() - bytesNeeded; maxStart < hi {
		hi = maxStart
	}

	for off := lo; off <= hi; off += opts.Stride {
		if foundOff, rewritten, ok := evaluateOffset(img, rawXML, el, signed, knownByOffset, off); ok {
			return foundOff, rewritten, true
		}
	}
	return 0, "", false
}

// evaluateOffset tests a single candidate offset and, on success,
// returns the offset and rewritten XML.
func evaluateOffset(img *image.Image, rawXML string, el embeddedDataElement, signed bool, knownByOffset map[int]string, off int) (int, string, bool) {
	if _, known := knownByOffset[off]; known {
		return 0, "", false
	}
	bytesNeeded := el.cols * el.rows * (el.elementSizeBits / 8)
	if off < 0 || bytesNeeded <= 0 {
		return 0, "", false
	}

	values, ok := readElements(img, off, el.cols*el.rows, el.elementSizeBits, signed)
	if !ok {
		return 0, "", false
	}
	if !plausible(values) {
		return 0, "", false
	}
	if overlapsKnown(off, bytesNeeded, knownByOffset) {
		return 0, "", false
	}

	rewritten := rewriteAddress(rawXML, el.origAddress, int64(off))
	return off, rewritten, true
}

func readElements(img *image.Image, offset, count, elementSizeBits int, signed bool) ([]float64, bool) {
	out := make([]float64, 0, count)
	stride := elementSizeBits / 8
	for i := 0; i < count; i++ {
		v, err := img.ReadIntElement(offset+i*stride, elementSizeBits, signed)
		if err != nil {
			return nil, false
		}
		out = append(out, float64(v))
	}
	return out, true
}

// plausible tests non-empty, a non-zero spread, and a mean that isn't
// obviously a pointer table or garbage.
func plausible(values []float64) bool {
	if len(values) == 0 {
		return false
	}
	min, max := values[0], values[0]
	var sum float64
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	if max-min <= 0 {
		return false
	}
	mean := sum / float64(len(values))
	return math.Abs(mean) <= plausibilityMeanLimit
}

func overlapsKnown(off, bytesNeeded int, knownByOffset map[int]string) bool {
	end := off + bytesNeeded
	for koff := range knownByOffset {
		kend := koff + bytesNeeded
		if off < kend && koff < end {
			return true
		}
	}
	return false
}
