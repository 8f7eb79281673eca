package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetAdd(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		d := NewDataset()
		require.NoError(t, d.Add("forecast", []float64{0.4, 0.6}))
		require.NoError(t, d.Add("margin", []float64{3, -7}))
		require.NoError(t, d.Add("points", []float64{21, 14}))

		assert.Equal(t, []string{"forecast", "margin", "points"}, d.Names())
		assert.Equal(t, 3, d.NumColumns())
		assert.Equal(t, 2, d.NumRows())
	})

	t.Run("rejects duplicate column", func(t *testing.T) {
		d := NewDataset()
		require.NoError(t, d.Add("points", []float64{1}))
		err := d.Add("points", []float64{2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects mismatched length", func(t *testing.T) {
		d := NewDataset()
		require.NoError(t, d.Add("a", []float64{1, 2, 3}))
		err := d.Add("b", []float64{1, 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 3")
	})
}

func TestDatasetColumn(t *testing.T) {
	d := NewDataset()
	require.NoError(t, d.Add("margin", []float64{3, -7, 10}))

	col, ok := d.Column("margin")
	require.True(t, ok)
	assert.Equal(t, []float64{3, -7, 10}, col)

	_, ok = d.Column("missing")
	assert.False(t, ok)
}

func TestDatasetNamesIsCopy(t *testing.T) {
	d := NewDataset()
	require.NoError(t, d.Add("a", []float64{1}))

	names := d.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, d.Names())
}
