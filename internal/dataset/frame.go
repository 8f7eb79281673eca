package dataset

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"predstats/internal/stats"
)

// Frame is an immutable view over parsed tabular data. Reshaping operations
// return a new Frame and leave the receiver untouched.
type Frame struct {
	df dataframe.DataFrame
}

// ReadCSV parses headered CSV data into a Frame. Column types are detected
// from the cell contents: columns where every cell parses as a number become
// numeric, everything else stays categorical.
func ReadCSV(r io.Reader) (*Frame, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("parse csv: no data rows")
	}
	return &Frame{df: df}, nil
}

// FromDataFrame wraps an existing gota dataframe.
func FromDataFrame(df dataframe.DataFrame) (*Frame, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("invalid dataframe: %w", df.Err)
	}
	return &Frame{df: df}, nil
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	return f.df.Nrow()
}

// NumColumns returns the column count.
func (f *Frame) NumColumns() int {
	return f.df.Ncol()
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	return f.df.Names()
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	for _, n := range f.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether the named column holds numeric values.
func (f *Frame) IsNumeric(name string) bool {
	names := f.df.Names()
	types := f.df.Types()
	for i, n := range names {
		if n == name {
			return types[i] == series.Float || types[i] == series.Int
		}
	}
	return false
}

// FilterEq keeps the rows where column equals value. The comparand must match
// the column's detected type (string for categorical, int/float for numeric).
func (f *Frame) FilterEq(column string, value interface{}) (*Frame, error) {
	if !f.HasColumn(column) {
		return nil, fmt.Errorf("filter: unknown column %q", column)
	}
	filtered := f.df.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.Eq,
		Comparando: value,
	})
	if filtered.Err != nil {
		return nil, fmt.Errorf("filter %s == %v: %w", column, value, filtered.Err)
	}
	return &Frame{df: filtered}, nil
}

// Rename gives an existing column a new name.
func (f *Frame) Rename(newName, oldName string) (*Frame, error) {
	if !f.HasColumn(oldName) {
		return nil, fmt.Errorf("rename: unknown column %q", oldName)
	}
	renamed := f.df.Rename(newName, oldName)
	if renamed.Err != nil {
		return nil, fmt.Errorf("rename %s to %s: %w", oldName, newName, renamed.Err)
	}
	return &Frame{df: renamed}, nil
}

// Derive appends a numeric column computed row-wise from the named input
// columns. fn receives the input values in the order given by inputs.
func (f *Frame) Derive(name string, inputs []string, fn func([]float64) float64) (*Frame, error) {
	if f.HasColumn(name) {
		return nil, fmt.Errorf("derive: column %q already exists", name)
	}

	cols := make([][]float64, len(inputs))
	for i, input := range inputs {
		values, err := f.numericColumn(input)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", name, err)
		}
		cols[i] = values
	}

	values := make([]float64, f.df.Nrow())
	row := make([]float64, len(inputs))
	for i := range values {
		for j := range cols {
			row[j] = cols[j][i]
		}
		values[i] = fn(row)
	}

	derived := f.df.Mutate(series.New(values, series.Float, name))
	if derived.Err != nil {
		return nil, fmt.Errorf("derive %s: %w", name, derived.Err)
	}
	return &Frame{df: derived}, nil
}

// NumericDataset projects the numeric columns, minus any explicitly excluded
// ones, into a stats.Dataset in their original column order. Categorical
// columns are skipped silently; the caller opted into "everything numeric".
func (f *Frame) NumericDataset(exclude ...string) (*stats.Dataset, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	d := stats.NewDataset()
	for _, name := range f.df.Names() {
		if excluded[name] || !f.IsNumeric(name) {
			continue
		}
		values, err := f.numericColumn(name)
		if err != nil {
			return nil, err
		}
		if err := d.Add(name, values); err != nil {
			return nil, fmt.Errorf("project column %s: %w", name, err)
		}
	}
	if d.NumColumns() == 0 {
		return nil, fmt.Errorf("no numeric columns to aggregate")
	}
	return d, nil
}

// Dataset projects exactly the named columns into a stats.Dataset, in the
// order given. Unlike NumericDataset it does not skip: a categorical column
// in the selection is an error the caller must resolve.
func (f *Frame) Dataset(columns ...string) (*stats.Dataset, error) {
	d := stats.NewDataset()
	for _, name := range columns {
		values, err := f.numericColumn(name)
		if err != nil {
			return nil, err
		}
		if err := d.Add(name, values); err != nil {
			return nil, fmt.Errorf("project column %s: %w", name, err)
		}
	}
	return d, nil
}

// numericColumn extracts a column as float64s, rejecting unknown and
// categorical columns.
func (f *Frame) numericColumn(name string) ([]float64, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if !f.IsNumeric(name) {
		return nil, &stats.NonNumericColumnError{Column: name, Type: string(f.columnType(name))}
	}

	values := f.df.Col(name).Float()
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("column %q has a malformed value at row %d", name, i)
		}
	}
	return values, nil
}

func (f *Frame) columnType(name string) series.Type {
	names := f.df.Names()
	types := f.df.Types()
	for i, n := range names {
		if n == name {
			return types[i]
		}
	}
	return ""
}
