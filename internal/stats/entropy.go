package stats

import "math"

// ShannonEntropy calculates the entropy in bits of a distribution given as frequency counts
func ShannonEntropy(counts []float64) float64 {
	total := Sum(counts)
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, c := range counts {
		if c > 0 {
			p := c / total
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// NormalizedEntropy scales ShannonEntropy into [0, 1] by log2 of the category count.
// 1 means bookings are spread evenly, 0 means a single category holds all of them.
func NormalizedEntropy(counts []float64) float64 {
	if len(counts) <= 1 {
		return 0
	}
	return ShannonEntropy(counts) / math.Log2(float64(len(counts)))
}
