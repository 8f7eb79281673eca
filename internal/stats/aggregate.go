package stats

import "encoding/json"

// Reducer maps a nonempty ordered sequence of numbers to a single number.
// Reducers must be pure and must not retain or mutate the input slice.
type Reducer func([]float64) float64

// Entry is a single named value inside a Result.
type Entry struct {
	Column string  `json:"column"`
	Value  float64 `json:"value"`
}

// Result is an ordered mapping from column name to the reduced value. The
// entry order matches the column order of the dataset that produced it.
type Result struct {
	names  []string
	values []float64
	index  map[string]int
}

func newResult(names []string, values []float64) *Result {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return &Result{names: names, values: values, index: index}
}

// Len returns the number of entries.
func (r *Result) Len() int {
	return len(r.names)
}

// Names returns the entry names in order.
func (r *Result) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Value returns the reduced value for the named column and whether the column
// is present.
func (r *Result) Value(name string) (float64, bool) {
	i, ok := r.index[name]
	if !ok {
		return 0, false
	}
	return r.values[i], true
}

// Entries returns the result as an ordered slice of entries.
func (r *Result) Entries() []Entry {
	entries := make([]Entry, len(r.names))
	for i, name := range r.names {
		entries[i] = Entry{Column: name, Value: r.values[i]}
	}
	return entries
}

// Equal reports whether two results have identical entries in identical order.
func (r *Result) Equal(other *Result) bool {
	if other == nil || len(r.names) != len(other.names) {
		return false
	}
	for i := range r.names {
		if r.names[i] != other.names[i] || r.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// MarshalJSON renders the result as an ordered array of entries. A plain Go
// map would lose the column order, which callers rely on.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Entries())
}

// UnmarshalJSON restores a result from its ordered entry representation.
func (r *Result) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	names := make([]string, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		names[i] = e.Column
		values[i] = e.Value
	}
	*r = *newResult(names, values)
	return nil
}

// Aggregate applies the reducer to every column using explicit positional
// iteration: the result container is sized up front, columns are visited by
// index and the reduced values stored positionally before assembly into the
// named Result.
func Aggregate(d *Dataset, reduce Reducer) (*Result, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	values := make([]float64, len(d.columns))
	for i, col := range d.columns {
		values[i] = reduce(col)
	}
	return newResult(d.Names(), values), nil
}

// AggregateMap applies the reducer to every column through the generic
// MapColumns operation instead of a hand-managed index loop. For any dataset
// and reducer it returns a Result identical to Aggregate's.
func AggregateMap(d *Dataset, reduce Reducer) (*Result, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	return newResult(d.Names(), MapColumns(d, reduce)), nil
}

// MapColumns applies fn to every column in order and returns the outputs as a
// slice aligned with the dataset's column order. The output element type is a
// type parameter, so reducers with non-float64 outputs (counts, labels) reuse
// the same operation without runtime branching.
func MapColumns[T any](d *Dataset, fn func([]float64) T) []T {
	out := make([]T, 0, len(d.columns))
	for _, col := range d.columns {
		out = append(out, fn(col))
	}
	return out
}
