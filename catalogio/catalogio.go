// Package catalogio loads the detector's side-channel inputs (template
// catalogs, disassembler hints) and persists/reloads its output map
// set, all as JSON. Any input file beginning with the gzip magic bytes
// is transparently decompressed first, since tuning-community tools
// routinely ship harvested template catalogs gzipped.
package catalogio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/gzip"

	"github.com/ms42scan/ms42scan/model"
)

var gzipMagic = []byte{0x1f, 0x8b}

// openDecompressed opens path and, if its first two bytes are the gzip
// magic, wraps it in a gzip reader. The caller owns the returned
// io.ReadCloser.
func openDecompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalogio: opening %s: %w: %w", path, model.ErrIOFailure, err)
	}

	var header [2]byte
	n, _ := io.ReadFull(f, header[:])
	prefix := header[:n]

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("catalogio: seeking %s: %w: %w", path, model.ErrIOFailure, err)
	}

	if bytes.Equal(prefix, gzipMagic) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("catalogio: gzip header in %s: %w: %w", path, model.ErrDecodeFailure, err)
		}
		return &gzipReadCloser{gz: gz, f: f}, nil
	}
	return f, nil
}

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

// LoadTemplates reads a JSON array of templates from path, transparently
// gzip-decompressing when applicable. Unknown fields are ignored.
func LoadTemplates(path string) ([]model.Template, error) {
	r, err := openDecompressed(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var templates []model.Template
	if err := json.NewDecoder(r).Decode(&templates); err != nil {
		return nil, fmt.Errorf("catalogio: decoding templates from %s: %w: %w", path, model.ErrDecodeFailure, err)
	}
	return templates, nil
}

// LoadHints reads a disassembler hints JSON object from path, transparently
// gzip-decompressing when applicable.
func LoadHints(path string) (*model.DisassemblerHints, error) {
	r, err := openDecompressed(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var hints model.DisassemblerHints
	if err := json.NewDecoder(r).Decode(&hints); err != nil {
		return nil, fmt.Errorf("catalogio: decoding hints from %s: %w: %w", path, model.ErrDecodeFailure, err)
	}
	return &hints, nil
}

// SaveMaps writes maps as a pretty-printed JSON array to path, with the
// keys of every object in sorted order.
func SaveMaps(path string, maps []model.DetectedMap) error {
	raw, err := json.Marshal(maps)
	if err != nil {
		return fmt.Errorf("catalogio: encoding maps: %w: %w", model.ErrWriteFailure, err)
	}
	// Re-marshal through generic objects: encoding/json writes map keys
	// sorted, and UseNumber keeps every number's literal text.
	var generic []map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("catalogio: encoding maps: %w: %w", model.ErrWriteFailure, err)
	}
	data, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return fmt.Errorf("catalogio: encoding maps: %w: %w", model.ErrWriteFailure, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("catalogio: writing %s: %w: %w", path, model.ErrWriteFailure, err)
	}
	return nil
}

// LoadMaps reads back a JSON array of DetectedMap previously written by
// SaveMaps, transparently gzip-decompressing when applicable.
func LoadMaps(path string) ([]model.DetectedMap, error) {
	r, err := openDecompressed(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var maps []model.DetectedMap
	if err := json.NewDecoder(r).Decode(&maps); err != nil {
		return nil, fmt.Errorf("catalogio: decoding maps from %s: %w: %w", path, model.ErrDecodeFailure, err)
	}
	return maps, nil
}

// KnownOffsets builds the offset -> rawEmbeddedXML map the rescan
// package expects as its knownByOffset argument, from an existing
// result set: every map that already carries template-enriched XML is
// considered pinned and is never reconsidered by a rescan sweep.
func KnownOffsets(maps []model.DetectedMap) map[int]string {
	known := make(map[int]string, len(maps))
	for _, m := range maps {
		if m.RawEmbeddedXML != "" {
			known[m.Offset] = m.RawEmbeddedXML
		}
	}
	return known
}

// SortedOffsets returns the distinct offsets of known in ascending
// order; used only for deterministic logging/diagnostics, never for
// correctness.
func SortedOffsets(known map[int]string) []int {
	offsets := make([]int, 0, len(known))
	for off := range known {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)
	return offsets
}
