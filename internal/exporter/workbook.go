package exporter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"aeroreduce/internal/aero"
)

// Sheet names of the sweep workbook
const (
	SheetCoefficients = "Coefficients"
	SheetForces       = "Forces"
	SheetPressure     = "Cp"
	SheetWake         = "Wake"
	SheetSummary      = "Summary"
	SheetFailures     = "Failures"
)

type namedTable struct {
	name string
	t    table
}

// WriteWorkbook saves the sweep as an .xlsx workbook. Numeric cells are stored
// as numbers; the Wake sheet is added only when cases carry a profile and the
// Summary and Failures sheets only when there is something to show.
func WriteWorkbook(path string, result aero.SweepResult, summary *aero.SweepSummary, cfg aero.Config) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []namedTable{
		{SheetCoefficients, coefficientsTable(result.Results)},
		{SheetForces, forcesTable(result.Results)},
		{SheetPressure, pressureTable(result.Results, cfg.Layout, cfg.Chord)},
	}
	if wake := wakeTable(result.Results); len(wake.rows) > 0 {
		sheets = append(sheets, namedTable{SheetWake, wake})
	}
	if summary != nil {
		sheets = append(sheets, namedTable{SheetSummary, summaryTable(*summary)})
	}
	if len(result.Failures) > 0 {
		sheets = append(sheets, namedTable{SheetFailures, failuresTable(result.Failures)})
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.t, header); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t table, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &t.headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, record := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(record))
		for j, v := range record {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// cellValue stores numeric text as a number so spreadsheet formulas work
func cellValue(s string) interface{} {
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	return s
}
