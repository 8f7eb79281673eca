package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// WriteXLSX renders the summary as an Excel workbook at path. Layout matches
// the CSV rendering: one row per column, one value column per reducer, plus a
// metadata sheet describing the run.
func (s *Summary) WriteXLSX(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), summarySheet)

	header := []interface{}{"column"}
	for _, rr := range s.Results {
		header = append(header, rr.Reducer)
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, column := range s.Columns {
		row := []interface{}{column}
		for _, rr := range s.Results {
			value, ok := rr.Result.Value(column)
			if !ok {
				return fmt.Errorf("reducer %s has no value for column %s", rr.Reducer, column)
			}
			row = append(row, value)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write row for column %s: %w", column, err)
		}
	}

	if err := s.writeRunSheet(f); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeRunSheet adds a sheet with the run metadata.
func (s *Summary) writeRunSheet(f *excelize.File) error {
	const sheet = "Run"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create run sheet: %w", err)
	}

	rows := [][]interface{}{
		{"report_id", s.ID},
		{"source", s.Source},
		{"team", s.Team},
		{"season", s.Season},
		{"rows", s.Rows},
		{"generated_at", s.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write run metadata: %w", err)
		}
	}
	return nil
}
