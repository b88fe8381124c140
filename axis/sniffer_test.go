package axis

import (
	"testing"

	"github.com/ms42scan/ms42scan/image"
)

func u16bytes(vals ...uint16) []byte {
	out := make([]byte, 0, len(vals)*2)
	for _, v := range vals {
		out = append(out, byte(v), byte(v>>8))
	}
	return out
}

// TestSniffScenarioC builds a table immediately followed by a monotonic
// X-axis, with no Y-axis data available.
func TestSniffScenarioC(t *testing.T) {
	data := append(u16bytes(10, 20, 11, 21, 12, 22), u16bytes(100, 200)...)
	img := image.New(data)

	x, y := Sniff(img, 0, 3, 2)
	if len(x) != 2 || x[0] != 100 || x[1] != 200 {
		t.Errorf("axisX = %v, want [100 200]", x)
	}
	if y != nil {
		t.Errorf("axisY = %v, want nil", y)
	}
}

func TestSniffNoAxes(t *testing.T) {
	data := u16bytes(10, 20, 11, 21, 12, 22)
	img := image.New(data)

	x, y := Sniff(img, 0, 3, 2)
	if x != nil || y != nil {
		t.Errorf("Sniff() = (%v,%v), want (nil,nil)", x, y)
	}
}

func TestSniffXFallsBackToSecondTrial(t *testing.T) {
	// first X trial (immediately after table) is non-monotonic; second
	// trial, one axis length further, is monotonic. A two-element vector
	// is always monotonic, so the table has three columns.
	table := u16bytes(10, 20, 30, 11, 21, 31, 12, 22, 32)
	firstTrial := u16bytes(5, 1, 4) // non-monotonic -> rejected
	secondTrial := u16bytes(1, 2, 3)
	data := append(append(table, firstTrial...), secondTrial...)
	img := image.New(data)

	x, _ := Sniff(img, 0, 3, 3)
	if len(x) != 3 || x[0] != 1 || x[1] != 2 || x[2] != 3 {
		t.Errorf("axisX = %v, want [1 2 3] (second trial)", x)
	}
}

func TestIsMonotonic(t *testing.T) {
	cases := []struct {
		v    []float64
		want bool
	}{
		{[]float64{1, 2, 3}, true},
		{[]float64{3, 2, 1}, true},
		{[]float64{1, 1, 1}, true},
		{[]float64{1, 3, 2}, false},
		{[]float64{1}, true},
		{nil, true},
	}
	for _, c := range cases {
		if got := isMonotonic(c.v); got != c.want {
			t.Errorf("isMonotonic(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestSniffOutOfBoundsTrialSkipped(t *testing.T) {
	// offset near start of image: Y trials land at/near 0, should not error.
	data := u16bytes(10, 20, 11, 21, 12, 22)
	img := image.New(data)
	x, y := Sniff(img, 0, 3, 2)
	_ = x
	if y != nil {
		// offset 0: yTrials are clamp(0-12)=0 and clamp(0-6)=0, both read
		// the table's own first `rows` values (10,20,11), which are not
		// monotonic, so y stays nil here -- the test only asserts no
		// panic and logs any non-nil outcome.
		t.Logf("axisY = %v", y)
	}
}
