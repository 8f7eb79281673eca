package stats

import "fmt"

// Dataset is an ordered collection of named numeric columns. All columns have
// the same length; rows correspond positionally across columns. A Dataset is
// immutable once handed to the aggregation functions.
type Dataset struct {
	names   []string
	columns [][]float64
	index   map[string]int
}

// NewDataset creates an empty dataset. Columns are appended with Add and keep
// their insertion order for the lifetime of the dataset.
func NewDataset() *Dataset {
	return &Dataset{
		index: make(map[string]int),
	}
}

// Add appends a named column. It rejects duplicate names and columns whose
// length differs from the columns already present; the equal-length invariant
// is enforced at construction so aggregation never has to re-check it.
func (d *Dataset) Add(name string, values []float64) error {
	if _, exists := d.index[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(d.columns) > 0 && len(values) != len(d.columns[0]) {
		return fmt.Errorf("column %q has %d rows, expected %d", name, len(values), len(d.columns[0]))
	}

	d.index[name] = len(d.names)
	d.names = append(d.names, name)
	d.columns = append(d.columns, values)
	return nil
}

// NumColumns returns the number of columns in the dataset.
func (d *Dataset) NumColumns() int {
	return len(d.names)
}

// NumRows returns the number of rows shared by every column.
func (d *Dataset) NumRows() int {
	if len(d.columns) == 0 {
		return 0
	}
	return len(d.columns[0])
}

// Names returns the column names in their original order. The returned slice
// is a copy and safe for the caller to mutate.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Column returns the values of the named column and whether it exists.
func (d *Dataset) Column(name string) ([]float64, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// validate checks the preconditions shared by both aggregation strategies: at
// least one column, and no column with zero rows.
func (d *Dataset) validate() error {
	if len(d.columns) == 0 {
		return fmt.Errorf("dataset has no columns to aggregate")
	}
	for i, col := range d.columns {
		if len(col) == 0 {
			return &EmptyColumnError{Column: d.names[i]}
		}
	}
	return nil
}
