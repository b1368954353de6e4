package rating

import "math"

// Category values run 0-10, the overall score 0-5, both in half-point steps.
const (
	CategoryValueMax = 10.0
	OverallMax       = 5.0
)

// ComputeOverall reduces a set of category values to the overall score:
// the arithmetic mean rescaled from the 0-10 category domain to 0-5 and
// rounded to the nearest half point (half away from zero). Zero values count
// toward the mean; a category deliberately left at 0 still pulls the average
// down. An empty input yields 0.
func ComputeOverall(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return RoundToHalf(mean / 2)
}

// RoundToHalf quantizes to 0.5 steps, rounding halves away from zero.
func RoundToHalf(x float64) float64 {
	return math.Round(x*2) / 2
}

// isHalfStep reports whether v sits exactly on a half-point step.
func isHalfStep(v float64) bool {
	return v*2 == math.Trunc(v*2)
}
