package scanner

import (
	"context"
	"testing"

	"github.com/ms42scan/ms42scan/image"
	"github.com/ms42scan/ms42scan/model"
)

func u16bytes(vals ...uint16) []byte {
	out := make([]byte, 0, len(vals)*2)
	for _, v := range vals {
		out = append(out, byte(v), byte(v>>8))
	}
	return out
}

// Scenario A: trivial reject (constant region).
func TestScanScenarioA(t *testing.T) {
	img := image.New([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	s := &Scanner{}
	got, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Scan() = %v, want empty", got)
	}
}

// Scenario B: ideal 3x2 table.
func TestScanScenarioB(t *testing.T) {
	img := image.New(u16bytes(10, 20, 11, 21, 12, 22))
	s := &Scanner{}
	got, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Scan() found %d candidates, want 1: %+v", len(got), got)
	}
	m := got[0]
	if m.Offset != 0 || m.Rows != 3 || m.Cols != 2 {
		t.Errorf("candidate = %+v, want offset=0 rows=3 cols=2", m)
	}
	want := []uint16{10, 20, 11, 21, 12, 22}
	for i, v := range want {
		if m.Values[i] != v {
			t.Errorf("Values[%d] = %d, want %d", i, m.Values[i], v)
		}
	}
	if m.Type != model.TypeUnknown {
		t.Errorf("Type = %v, want unknown", m.Type)
	}
	if m.AxisX != nil || m.AxisY != nil {
		t.Errorf("axes = (%v,%v), want (nil,nil)", m.AxisX, m.AxisY)
	}
}

// Scenario C: table + X axis.
func TestScanScenarioC(t *testing.T) {
	data := append(u16bytes(10, 20, 11, 21, 12, 22), u16bytes(100, 200)...)
	img := image.New(data)
	s := &Scanner{}
	got, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Scan() found %d candidates, want 1", len(got))
	}
	if len(got[0].AxisX) != 2 || got[0].AxisX[0] != 100 || got[0].AxisX[1] != 200 {
		t.Errorf("AxisX = %v, want [100 200]", got[0].AxisX)
	}
}

// Scenario D: classifier high values -> ignition.
func TestScanScenarioD(t *testing.T) {
	img := image.New(u16bytes(20000, 20010, 20001, 20011, 20002, 20012))
	s := &Scanner{}
	got, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Scan() found %d candidates, want 1", len(got))
	}
	if got[0].Type != model.TypeIgnition {
		t.Errorf("Type = %v, want ignition", got[0].Type)
	}
}

// Scenario F: overlap correctness. A valid 3xC table starts exactly on
// a worker chunk cut, so it is examined redundantly by the tail end of
// one worker's overlap region and the head of the next worker's base
// range; deduplication must still leave exactly one candidate.
func TestScanOverlapCorrectness(t *testing.T) {
	const workers = 4
	const minRows = 3
	const maxCols = 4
	const elemSize = 2

	limit := 4 * workers * maxCols * minRows * elemSize // generous multiple of chunkSize
	chunkSize := limit / workers

	tableOffset := chunkSize // exactly on the first worker/second worker cut
	tableBytes := u16bytes(10, 20, 11, 21, 12, 22)

	// sized so that Scan's own limit (size - minRows*elemSize) equals limit
	data := make([]byte, limit+minRows*elemSize)
	copy(data[tableOffset:], tableBytes)

	img := image.New(data)
	s := &Scanner{}
	got, err := s.Scan(context.Background(), img, ScanOptions{MinRows: minRows, MaxCols: maxCols, Workers: workers})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	matches := 0
	for _, m := range got {
		if m.Offset == tableOffset && m.Rows == minRows && m.Cols == 2 {
			matches++
		}
	}
	if matches != 1 {
		t.Errorf("table at the worker cut (offset %d) matched %d times after dedup, want exactly 1", tableOffset, matches)
	}
}

func TestPartitionRangeOverlapsAcrossCut(t *testing.T) {
	// Sanity check backing TestScanOverlapCorrectness: the overlap rule
	// really does make two adjacent partitions both cover the cut.
	parts := partitionRange(400, 4, 24)
	if len(parts) < 2 {
		t.Fatalf("expected >=2 partitions, got %d", len(parts))
	}
	cut := parts[1].Start
	if !(parts[0].Start <= cut && cut < parts[0].End) {
		t.Errorf("partition 0 (%+v) does not cover the cut at %d", parts[0], cut)
	}
}

func TestScanDedupNoDuplicateKeys(t *testing.T) {
	img := image.New(u16bytes(10, 20, 11, 21, 12, 22))
	s := &Scanner{}
	got, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4, Workers: 3})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	seen := map[model.MapKey]bool{}
	for _, m := range got {
		if seen[m.Key()] {
			t.Errorf("duplicate key %+v in results", m.Key())
		}
		seen[m.Key()] = true
	}
}

func TestScanEmptyOnSmallImage(t *testing.T) {
	img := image.New([]byte{1, 2, 3})
	s := &Scanner{}
	got, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Scan() on tiny image = %v, want empty", got)
	}
}

func TestScanDeterministicKeySet(t *testing.T) {
	img := image.New(append(u16bytes(10, 20, 11, 21, 12, 22), u16bytes(100, 200)...))
	s := &Scanner{}
	a, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	b, err := s.Scan(context.Background(), img, ScanOptions{MinRows: 3, MaxCols: 4})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	keysA := map[model.MapKey]bool{}
	for _, m := range a {
		keysA[m.Key()] = true
	}
	keysB := map[model.MapKey]bool{}
	for _, m := range b {
		keysB[m.Key()] = true
	}
	if len(keysA) != len(keysB) {
		t.Fatalf("two scans produced different key-set sizes: %d vs %d", len(keysA), len(keysB))
	}
	for k := range keysA {
		if !keysB[k] {
			t.Errorf("key %+v present in first scan but not second", k)
		}
	}
}

func TestSuppressOverlapping(t *testing.T) {
	maps := []model.DetectedMap{
		model.NewDetectedMap("AutoDetect", 4, 3, 2, nil),
		model.NewDetectedMap("AutoDetect", 0, 3, 2, nil), // earliest, covers [0,12)
		model.NewDetectedMap("AutoDetect", 2, 3, 2, nil),
		model.NewDetectedMap("AutoDetect", 12, 3, 2, nil), // starts right after, kept
	}
	got := suppressOverlapping(maps)
	if len(got) != 2 {
		t.Fatalf("suppressOverlapping() = %d candidates, want 2: %+v", len(got), got)
	}
	if got[0].Offset != 0 || got[1].Offset != 12 {
		t.Errorf("suppressOverlapping() offsets = [%d %d], want [0 12]", got[0].Offset, got[1].Offset)
	}
}
