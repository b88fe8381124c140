package classify

import (
	"testing"

	"github.com/ms42scan/ms42scan/model"
)

func TestClassifyIgnition(t *testing.T) {
	values := []uint16{20000, 20010, 20001, 20011, 20002, 20012}
	if got := Classify(values, nil, nil, 0); got != model.TypeIgnition {
		t.Errorf("Classify() = %v, want ignition", got)
	}
}

func TestClassifyFuel(t *testing.T) {
	values := []uint16{10, 20, 11, 21, 12, 22}
	if got := Classify(values, nil, nil, 0); got != model.TypeFuel {
		t.Errorf("Classify() = %v, want fuel", got)
	}
}

func TestClassifyMAF(t *testing.T) {
	values := []uint16{4000, 5000, 4100, 5100, 4200, 5200}
	axisX := []float64{1200, 2400}
	if got := Classify(values, axisX, nil, 0); got != model.TypeMAF {
		t.Errorf("Classify() = %v, want maf", got)
	}
}

func TestClassifyUnknownDefault(t *testing.T) {
	values := []uint16{4000, 5000, 4100, 5100, 4200, 5200}
	if got := Classify(values, nil, nil, 0); got != model.TypeUnknown {
		t.Errorf("Classify() = %v, want unknown", got)
	}
}

func TestClassifyCodeAdjacentRefusesGuess(t *testing.T) {
	values := []uint16{4000, 5000, 4100, 5100, 4200, 5200} // would otherwise fall through to unknown anyway
	hints := &model.DisassemblerHints{
		Functions: []model.Function{{Name: "f", StartAddress: 10, EndAddress: 20}},
	}
	if got := Classify(values, nil, hints, 15); got != model.TypeUnknown {
		t.Errorf("Classify() = %v, want unknown", got)
	}
}

func TestClassifyEmptyValues(t *testing.T) {
	if got := Classify(nil, nil, nil, 0); got != model.TypeUnknown {
		t.Errorf("Classify(nil) = %v, want unknown", got)
	}
}

func TestClassifyPure(t *testing.T) {
	values := []uint16{20000, 20010, 20001}
	a := Classify(values, nil, nil, 42)
	b := Classify(values, nil, nil, 42)
	if a != b {
		t.Errorf("Classify() not pure: %v != %v", a, b)
	}
}
