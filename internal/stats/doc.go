// Package stats implements column-wise aggregation of numeric datasets.
//
// The package centers on two equivalent aggregation strategies over a Dataset
// (an ordered collection of named float64 columns of equal length):
//
//  1. Aggregate: explicit positional iteration over the columns
//  2. AggregateMap: a declarative pass built on the generic MapColumns operation
//
// Both strategies apply a Reducer (a function from a nonempty sequence of
// numbers to a single number) to every column and produce a Result that keeps
// one entry per column in the original column order. The two entry points are
// guaranteed to agree for any dataset and reducer pair; benchmark_test.go
// tracks their relative cost.
//
// # Components
//
//   - dataset.go: Dataset construction and invariants (equal column lengths)
//   - aggregate.go: the two aggregation strategies and MapColumns
//   - reducers.go: Mean, Median and StdDev reducers
//   - errors.go: EmptyColumnError and NonNumericColumnError
//
// # Error Handling
//
// Aggregation fails fast: a zero-length column yields an EmptyColumnError
// before any reducer runs, and no partial Result is ever returned. Columns a
// reducer cannot consume (categorical data) must be excluded by the caller;
// the dataset layer reports them as NonNumericColumnError when they are
// requested for aggregation. The aggregator performs no type coercion.
//
// # Conventions
//
// StdDev is the population standard deviation (n denominator). Reducers are
// pure functions; aggregation is deterministic, single-threaded and allocates
// only the result containers.
package stats
