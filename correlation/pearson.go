// Package correlation provides the numeric kernel the detector uses to
// score structural plausibility: row-to-row Pearson correlation over
// decoded calibration-table values.
package correlation

import "math"

// Pearson returns the Pearson correlation coefficient of a and b, which
// must have equal length. It returns 0 if either vector has fewer than
// two elements or is constant (zero variance), since the coefficient is
// undefined in that case and 0 reads as "no linear relationship" to
// every caller.
func Pearson(a, b []float64) float64 {
	n := len(a)
	if n != len(b) || n < 2 {
		return 0
	}

	meanA, meanB := mean(a), mean(b)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	denom := math.Sqrt(varA * varB)
	if denom == 0 {
		return 0
	}
	return cov / denom
}

// mean returns the arithmetic mean of v.
func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// Min returns the smallest value in v. Panics on an empty slice, matching
// the behavior of every caller guaranteeing non-empty input.
func Min(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Max returns the largest value in v.
func Max(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Mean returns the arithmetic mean of v, or 0 for an empty slice.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return mean(v)
}
