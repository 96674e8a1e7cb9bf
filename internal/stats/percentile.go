package stats

// Percentile calculates the p-th percentile (0-100)
func Percentile(values []float64, p float64) float64 {
	return Quantile(values, p/100.0)
}

// FiveNumberSummary returns the five-number summary (min, Q1, median, Q3, max).
// The input is sorted once.
func FiveNumberSummary(values []float64) (min, q1, median, q3, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := sortedCopy(values)
	min = sorted[0]
	max = sorted[len(sorted)-1]
	q1 = quantileSorted(sorted, 0.25)
	median = quantileSorted(sorted, 0.5)
	q3 = quantileSorted(sorted, 0.75)
	return
}
