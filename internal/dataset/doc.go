// Package dataset provides the tabular data layer between raw CSV sources and
// the numeric aggregation in internal/stats.
//
// A Frame wraps a gota dataframe and exposes the handful of reshaping
// operations the reporting workflow needs: row filtering, column renames,
// derived columns, and projection of the numeric columns into a
// stats.Dataset. Categorical columns (team names, opponents, dates) survive
// filtering but are excluded from the numeric projection; requesting one for
// aggregation surfaces a stats.NonNumericColumnError rather than coercing.
package dataset
