package model

import "github.com/google/uuid"

// DefaultMinRows is the minimum row count a candidate table must have to
// be considered plausible, per spec.
const DefaultMinRows = 3

// DefaultElementSize is the brute-force scanner's fixed element width:
// little-endian unsigned 16-bit. Other widths are reserved for the
// template-rescan path, which records them on Template rather than here.
const DefaultElementSize = 2

// DetectedMap is a candidate calibration table: a 2D lookup table found
// at a byte offset inside a ByteImage, with optional axis vectors and a
// coarse physical-meaning classification.
//
// A DetectedMap is an immutable snapshot as far as the detector is
// concerned. Only Name and Accepted are meant to be mutated by a
// downstream consumer (e.g. a UI); the detector itself never reads them
// back, so nothing in this package depends on user edits.
type DetectedMap struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Offset int       `json:"offset"`
	Rows   int       `json:"rows"`
	Cols   int       `json:"cols"`

	// ElementSize is the byte width of each decoded element. Always
	// DefaultElementSize (2) for maps produced by the brute-force
	// scanner; the template-rescan path may report candidates with
	// other widths via the enriched fields below.
	ElementSize int `json:"elementSize"`

	// Values is the row-major flattened table, length Rows*Cols.
	Values []uint16 `json:"values"`

	// AxisX has length Cols when present, nil otherwise.
	AxisX []float64 `json:"axisX,omitempty"`
	// AxisY has length Rows when present, nil otherwise.
	AxisY []float64 `json:"axisY,omitempty"`

	Score float64 `json:"score"`
	Type  MapType `json:"type"`

	// Accepted is set only by a downstream consumer; the detector
	// always creates candidates with Accepted == false.
	Accepted bool `json:"accepted"`

	// Template-enriched fields, populated only when a TemplateRescanner
	// hit has been merged onto this candidate.
	Datatype       string `json:"datatype,omitempty"`
	DecimalPlaces  int    `json:"decimalPlaces,omitempty"`
	Units          string `json:"units,omitempty"`
	RawEmbeddedXML string `json:"rawEmbeddedXML,omitempty"`
}

// MapKey is the deduplication key: two candidates with the same
// (Offset, Rows, Cols) are treated as the same detection.
type MapKey struct {
	Offset int
	Rows   int
	Cols   int
}

// Key returns m's deduplication key.
func (m DetectedMap) Key() MapKey {
	return MapKey{Offset: m.Offset, Rows: m.Rows, Cols: m.Cols}
}

// NewDetectedMap constructs a candidate with a fresh UUID and
// Accepted == false, mirroring what the brute-force scanner emits on
// acceptance. name is typically "AutoDetect" for scanner output.
func NewDetectedMap(name string, offset, rows, cols int, values []uint16) DetectedMap {
	return DetectedMap{
		ID:          uuid.New(),
		Name:        name,
		Offset:      offset,
		Rows:        rows,
		Cols:        cols,
		ElementSize: DefaultElementSize,
		Values:      values,
		Type:        TypeUnknown,
	}
}

// FitsWithin reports whether the candidate's byte extent lies entirely
// within an image of the given size: the core invariant
// offset + rows*cols*elementSize <= size.
func (m DetectedMap) FitsWithin(imageSize int) bool {
	return m.Offset >= 0 && m.Offset+m.Rows*m.Cols*m.ElementSize <= imageSize
}
