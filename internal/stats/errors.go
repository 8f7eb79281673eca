package stats

import "fmt"

// EmptyColumnError indicates a column with no values was submitted for
// aggregation. Reducers are only defined over nonempty sequences, so the
// aggregation fails before any reducer runs.
type EmptyColumnError struct {
	Column string
}

// Error implements the error interface
func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column %q is empty: a reducer over zero values is undefined", e.Column)
}

// NonNumericColumnError indicates a column holds values a numeric reducer
// cannot consume. It is raised at the dataset boundary when a categorical
// column is requested for aggregation; the aggregator never coerces types.
type NonNumericColumnError struct {
	Column string
	Type   string
}

// Error implements the error interface
func (e *NonNumericColumnError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("column %q holds %s values and cannot be reduced numerically", e.Column, e.Type)
	}
	return fmt.Sprintf("column %q holds non-numeric values and cannot be reduced numerically", e.Column)
}
