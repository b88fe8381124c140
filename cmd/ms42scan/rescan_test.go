package main

import (
	"testing"

	"github.com/ms42scan/ms42scan/model"
)

func TestMergeRescanHitsUpdatesExisting(t *testing.T) {
	maps := []model.DetectedMap{
		model.NewDetectedMap("AutoDetect", 16, 3, 2, []uint16{1, 2, 3, 4, 5, 6}),
	}
	hits := map[int]string{16: "<rewritten/>"}

	got := mergeRescanHits(maps, hits)
	if len(got) != 1 {
		t.Fatalf("mergeRescanHits() = %+v, want 1 entry", got)
	}
	if got[0].RawEmbeddedXML != "<rewritten/>" {
		t.Errorf("RawEmbeddedXML = %q, want <rewritten/>", got[0].RawEmbeddedXML)
	}
}

func TestMergeRescanHitsAppendsSynthetic(t *testing.T) {
	maps := []model.DetectedMap{
		model.NewDetectedMap("AutoDetect", 16, 3, 2, []uint16{1, 2, 3, 4, 5, 6}),
	}
	hits := map[int]string{64: "<new-hit/>"}

	got := mergeRescanHits(maps, hits)
	if len(got) != 2 {
		t.Fatalf("mergeRescanHits() = %+v, want 2 entries", got)
	}
	if got[1].Offset != 64 || got[1].RawEmbeddedXML != "<new-hit/>" {
		t.Errorf("appended entry = %+v, want offset=64 rawXML=<new-hit/>", got[1])
	}
}
