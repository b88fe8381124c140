package scanner

import "testing"

func TestOverlapForCaps(t *testing.T) {
	if got := overlapFor(1024, 3, 2); got != maxOverlapBytes {
		t.Errorf("overlapFor(1024,3,2) = %d, want capped at %d", got, maxOverlapBytes)
	}
	if got := overlapFor(4, 3, 2); got != 24 {
		t.Errorf("overlapFor(4,3,2) = %d, want 24", got)
	}
}

func TestPartitionRangeCoversWithOverlap(t *testing.T) {
	limit := 1000
	workers := 4
	overlap := 50
	parts := partitionRange(limit, workers, overlap)

	if len(parts) != workers {
		t.Fatalf("partitionRange() produced %d partitions, want %d", len(parts), workers)
	}
	if parts[0].Start != 0 {
		t.Errorf("first partition start = %d, want 0", parts[0].Start)
	}
	if parts[len(parts)-1].End != limit {
		t.Errorf("last partition end = %d, want %d", parts[len(parts)-1].End, limit)
	}
	// every partition except the last should overlap into the next one's
	// start by `overlap` bytes (clamped to limit).
	for i := 0; i < len(parts)-1; i++ {
		wantEnd := parts[i+1].Start + overlap
		if wantEnd > limit {
			wantEnd = limit
		}
		// parts[i].End should reach at least parts[i+1].Start (no gap).
		if parts[i].End < parts[i+1].Start {
			t.Errorf("partition %d ends at %d before next starts at %d: gap", i, parts[i].End, parts[i+1].Start)
		}
		if parts[i].End != wantEnd {
			t.Errorf("partition %d ends at %d, want %d (next start + overlap)", i, parts[i].End, wantEnd)
		}
	}
}

func TestPartitionRangeDegenerate(t *testing.T) {
	if got := partitionRange(0, 4, 10); got != nil {
		t.Errorf("partitionRange(0,...) = %v, want nil", got)
	}
	if got := partitionRange(100, 0, 10); got != nil {
		t.Errorf("partitionRange(_, 0, _) = %v, want nil", got)
	}
}

func TestPartitionRangeSmallLimit(t *testing.T) {
	// fewer valid offsets than workers: should not produce degenerate
	// (Start>=End) partitions, and should not panic.
	parts := partitionRange(3, 8, 10)
	for _, p := range parts {
		if p.Start >= p.End {
			t.Errorf("degenerate partition: %+v", p)
		}
	}
	if len(parts) == 0 {
		t.Error("expected at least one partition covering a positive limit")
	}
}
