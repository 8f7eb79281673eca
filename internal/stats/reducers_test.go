package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floatTolerance = 1e-9

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"single value", []float64{5}, 5},
		{"integers", []float64{1, 2, 3}, 2},
		{"negatives", []float64{-10, 10}, 0},
		{"fractions", []float64{0.25, 0.75}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Mean(tt.values), floatTolerance)
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"single value", []float64{7}, 7},
		{"odd length", []float64{3, 1, 2}, 2},
		{"even length averages middle pair", []float64{1, 2, 3, 4}, 2.5},
		{"unsorted input", []float64{9, 1, 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Median(tt.values), floatTolerance)
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"constant column", []float64{2, 2, 2}, 0},
		{"single value", []float64{4}, 0},
		// population convention: sqrt(((1-2)^2 + (3-2)^2) / 2)
		{"two values", []float64{1, 3}, 1},
		// sqrt(((2-5)^2 + (4-5)^2 + (4-5)^2 + (4-5)^2 + (5-5)^2 + (5-5)^2 + (7-5)^2 + (9-5)^2) / 8)
		{"textbook population example", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, StdDev(tt.values), floatTolerance)
		})
	}
}

func TestReducerByName(t *testing.T) {
	for _, name := range ReducerNames() {
		reduce, ok := ReducerByName(name)
		require.True(t, ok, "reducer %s should resolve", name)
		require.NotNil(t, reduce)
	}

	_, ok := ReducerByName("variance")
	assert.False(t, ok)
}
