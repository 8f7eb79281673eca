package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDataset assembles a dataset from parallel name/column slices, failing
// the test on invariant violations.
func buildDataset(t *testing.T, names []string, columns [][]float64) *Dataset {
	t.Helper()
	d := NewDataset()
	for i, name := range names {
		require.NoError(t, d.Add(name, columns[i]))
	}
	return d
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		values   [][]float64
		reduce   Reducer
		expected []Entry
	}{
		{
			name:    "mean over two columns",
			columns: []string{"a", "b"},
			values:  [][]float64{{1, 2, 3}, {10, 20, 30}},
			reduce:  Mean,
			expected: []Entry{
				{Column: "a", Value: 2.0},
				{Column: "b", Value: 20.0},
			},
		},
		{
			name:    "median over even-length column",
			columns: []string{"a"},
			values:  [][]float64{{1, 2, 3, 4}},
			reduce:  Median,
			expected: []Entry{
				{Column: "a", Value: 2.5},
			},
		},
		{
			name:    "stddev of constant column is zero",
			columns: []string{"a"},
			values:  [][]float64{{2, 2, 2}},
			reduce:  StdDev,
			expected: []Entry{
				{Column: "a", Value: 0.0},
			},
		},
		{
			name:    "order follows insertion not lexicographic",
			columns: []string{"b", "a"},
			values:  [][]float64{{3, 4}, {1, 2}},
			reduce:  Mean,
			expected: []Entry{
				{Column: "b", Value: 3.5},
				{Column: "a", Value: 1.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buildDataset(t, tt.columns, tt.values)

			result, err := Aggregate(d, tt.reduce)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Entries())
			assert.Equal(t, d.NumColumns(), result.Len())
		})
	}
}

// TestAggregateStrategiesAgree verifies the explicit and declarative
// strategies produce identical results for every shipped reducer.
func TestAggregateStrategiesAgree(t *testing.T) {
	d := buildDataset(t,
		[]string{"forecast", "margin", "total_rating", "opp_rating"},
		[][]float64{
			{0.64, 0.18, 0.55, 0.91, 0.42},
			{7, -21, 3, 28, -3},
			{1450.2, 1502.7, 1477.9, 1512.3, 1466.1},
			{1502.1, 1611.9, 1480.4, 1399.8, 1510.6},
		},
	)

	for _, name := range ReducerNames() {
		t.Run(name, func(t *testing.T) {
			reduce, ok := ReducerByName(name)
			require.True(t, ok)

			explicit, err := Aggregate(d, reduce)
			require.NoError(t, err)
			declarative, err := AggregateMap(d, reduce)
			require.NoError(t, err)

			assert.True(t, explicit.Equal(declarative))
			assert.Equal(t, explicit.Entries(), declarative.Entries())
		})
	}
}

func TestAggregateDeterminism(t *testing.T) {
	d := buildDataset(t, []string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})

	first, err := Aggregate(d, Mean)
	require.NoError(t, err)
	second, err := Aggregate(d, Mean)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestAggregateEmptyColumn(t *testing.T) {
	d := NewDataset()
	require.NoError(t, d.Add("empty", nil))

	for _, name := range ReducerNames() {
		t.Run(name, func(t *testing.T) {
			reduce, _ := ReducerByName(name)

			_, err := Aggregate(d, reduce)
			var emptyErr *EmptyColumnError
			require.ErrorAs(t, err, &emptyErr)
			assert.Equal(t, "empty", emptyErr.Column)

			_, err = AggregateMap(d, reduce)
			require.ErrorAs(t, err, &emptyErr)
		})
	}
}

func TestAggregateNoColumns(t *testing.T) {
	_, err := Aggregate(NewDataset(), Mean)
	require.Error(t, err)
	_, err = AggregateMap(NewDataset(), Mean)
	require.Error(t, err)
}

func TestMapColumnsGenericOutput(t *testing.T) {
	d := buildDataset(t, []string{"a", "b"}, [][]float64{{1, 2, 3}, {4, 5, 6}})

	lengths := MapColumns(d, func(col []float64) int { return len(col) })
	assert.Equal(t, []int{3, 3}, lengths)
}

func TestResultJSONRoundTrip(t *testing.T) {
	d := buildDataset(t, []string{"b", "a"}, [][]float64{{1, 3}, {2, 4}})
	result, err := Aggregate(d, Mean)
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"column":"b","value":2},{"column":"a","value":3}]`, string(data))

	var restored Result
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, result.Equal(&restored))
}

func TestResultValue(t *testing.T) {
	d := buildDataset(t, []string{"a"}, [][]float64{{1, 2, 3}})
	result, err := Aggregate(d, Mean)
	require.NoError(t, err)

	v, ok := result.Value("a")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = result.Value("missing")
	assert.False(t, ok)
}
