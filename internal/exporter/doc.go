// Package exporter writes reduced sweeps to disk.
//
// Writer produces three CSV files, each with a UTF-8 BOM for spreadsheet
// compatibility:
//
//	coefficients.csv  one row per case: U∞, q∞, Re and Cl, Cd, Cm, Cdt with uncertainties
//	cp.csv            one row per tap and case: surface, x/c, Cp ± dCp
//	wake.csv          one row per merged wake sample and case
//
// WriteWorkbook bundles the same tables plus the sweep summary and the failed
// cases into a single .xlsx file.
//
// Example usage:
//
//	w := exporter.NewWriter("results", logger)
//	paths, err := w.Export(result, summary, cfg, exporter.Options{Workbook: true})
package exporter
