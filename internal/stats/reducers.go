package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values.
func Mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value of the sorted input, or the mean of the two
// middle values for even-length input. The input slice is not modified.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StdDev returns the population standard deviation (n denominator). The
// population form is used throughout: reports describe the full filtered
// dataset rather than a sample drawn from a larger one.
func StdDev(values []float64) float64 {
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// ReducerByName resolves a reducer from its wire name. Only the three
// shipped reducers are exposed; anything else reports false.
func ReducerByName(name string) (Reducer, bool) {
	switch name {
	case "mean":
		return Mean, true
	case "median":
		return Median, true
	case "stddev":
		return StdDev, true
	default:
		return nil, false
	}
}

// ReducerNames lists the wire names of the shipped reducers in presentation
// order.
func ReducerNames() []string {
	return []string{"mean", "median", "stddev"}
}
