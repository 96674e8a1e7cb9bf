package stats

import (
	"math"
	"sort"
)

// Mean calculates the arithmetic mean, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Ratio divides a by b, 0 when b is 0
func Ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Percent returns part/total as a percentage in [0, 100] for 0 <= part <= total.
// An empty total yields 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Median calculates the median value
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile calculates the q-th quantile (0 <= q <= 1) with linear interpolation
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return quantileSorted(sortedCopy(values), q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// sortedCopy avoids reordering the caller's slice
func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
