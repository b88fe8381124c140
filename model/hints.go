package model

import "encoding/json"

// Uint32Set is a set of uint32 values that marshals to/from a JSON array.
type Uint32Set map[uint32]struct{}

// Has reports whether v is a member of the set.
func (s Uint32Set) Has(v uint32) bool {
	_, ok := s[v]
	return ok
}

// MarshalJSON encodes the set as a JSON array, for round-trip fidelity
// with catalogs that were never decoded through this type.
func (s Uint32Set) MarshalJSON() ([]byte, error) {
	out := make([]uint32, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a JSON array of integers into the set.
func (s *Uint32Set) UnmarshalJSON(data []byte) error {
	var arr []uint32
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	set := make(Uint32Set, len(arr))
	for _, v := range arr {
		set[v] = struct{}{}
	}
	*s = set
	return nil
}

// Function describes one disassembled function: its address range, the
// data addresses it references, and any local labels.
type Function struct {
	Name         string            `json:"name"`
	StartAddress uint32            `json:"startAddress"`
	EndAddress   uint32            `json:"endAddress"`
	DataRefs     Uint32Set         `json:"dataRefs,omitempty"`
	Labels       map[string]uint32 `json:"labels,omitempty"`
}

// Contains reports whether offset falls within the function's address
// range, inclusive.
func (f Function) Contains(offset uint32) bool {
	return offset >= f.StartAddress && offset <= f.EndAddress
}

// DisassemblerHints is an optional, read-only bundle of symbolic
// information used purely as a negative signal by the classifier: an
// offset that looks code- or label-adjacent is refused a physical-type
// guess rather than mislabeled.
type DisassemblerHints struct {
	Functions []Function        `json:"functions,omitempty"`
	Labels    map[string]uint32 `json:"labels,omitempty"`
}

// IsCodeOrLabelAdjacent reports whether offset matches any of the three
// classifier negative-signal conditions: a data reference of some
// function, inside some function's address range, or the exact value
// of some global label.
func (h *DisassemblerHints) IsCodeOrLabelAdjacent(offset uint32) bool {
	if h == nil {
		return false
	}
	for _, fn := range h.Functions {
		if fn.DataRefs.Has(offset) || fn.Contains(offset) {
			return true
		}
	}
	for _, v := range h.Labels {
		if v == offset {
			return true
		}
	}
	return false
}
