package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// CSVOptions configures CSV rendering behavior
type CSVOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV renders the summary as CSV: one row per dataset column, one value
// column per reducer, reducers in the summary's order.
func (s *Summary) WriteCSV(w io.Writer, options CSVOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := make([]string, 0, len(s.Results)+1)
	header = append(header, "column")
	for _, rr := range s.Results {
		header = append(header, rr.Reducer)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, column := range s.Columns {
		row := make([]string, 0, len(header))
		row = append(row, column)
		for _, rr := range s.Results {
			value, ok := rr.Result.Value(column)
			if !ok {
				return fmt.Errorf("reducer %s has no value for column %s", rr.Reducer, column)
			}
			row = append(row, strconv.FormatFloat(value, 'f', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row for column %s: %w", column, err)
		}
	}

	return writer.Error()
}

// WriteJSON renders the summary as indented JSON.
func (s *Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
