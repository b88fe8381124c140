// Package classify provides the detector's coarse, rule-based
// physical-meaning labeling. It is intentionally weak: a handful of
// ordered heuristics over value statistics, axis range, and optional
// disassembler hints, first match wins. Downstream tooling is expected
// to override its guesses.
package classify

import "github.com/ms42scan/ms42scan/model"

// Classify labels a candidate table using five ordered rules, first
// match wins. hints may be nil.
func Classify(values []uint16, axisX []float64, hints *model.DisassemblerHints, offset int) model.MapType {
	if len(values) == 0 {
		return model.TypeUnknown
	}

	max, sum := values[0], 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
		sum += float64(v)
	}
	mean := sum / float64(len(values))

	// Rule 1: very high peak values read as ignition timing tables.
	if max > 15000 {
		return model.TypeIgnition
	}

	// Rule 2: small mean and small peak read as fueling tables.
	if mean < 50 && max < 3000 {
		return model.TypeFuel
	}

	// Rule 3: an X-axis starting well above idle RPM reads as an
	// airflow-indexed (mass-airflow) table.
	if len(axisX) > 0 && axisX[0] > 1000 {
		return model.TypeMAF
	}

	// Rule 4: code- or label-adjacent offsets are refused a guess rather
	// than mislabeled.
	if hints.IsCodeOrLabelAdjacent(uint32(offset)) {
		return model.TypeUnknown
	}

	return model.TypeUnknown
}
