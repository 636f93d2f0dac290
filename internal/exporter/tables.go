package exporter

import (
	"aeroreduce/internal/aero"
	"aeroreduce/internal/measure"
)

// table is a header row plus records, shared by the CSV and workbook writers
type table struct {
	headers []string
	rows    [][]string
}

func quantityRow(prefix []string, qs ...measure.Quantity) []string {
	row := make([]string, len(prefix), len(prefix)+2*len(qs))
	copy(row, prefix)
	for _, q := range qs {
		row = append(row, formatQuantity(q)...)
	}
	return row
}

func coefficientsTable(results []aero.CaseResult) table {
	headers := append([]string{"id"}, quantityHeaders("alpha", "u_inf", "q_inf", "re", "cl", "cd", "cm", "cdt")...)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		c := r.Coefficients
		rows = append(rows, quantityRow([]string{r.ID},
			r.Alpha, r.FreeStream, r.DynamicPressure, r.Reynolds,
			c.Lift, c.Drag, c.Moment, c.WakeDrag,
		))
	}
	return table{headers: headers, rows: rows}
}

func forcesTable(results []aero.CaseResult) table {
	headers := append([]string{"id", "alpha"}, quantityHeaders("normal", "axial", "moment", "lift", "drag", "wake_drag")...)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		f := r.Forces
		rows = append(rows, quantityRow([]string{r.ID, formatFloat(r.Alpha.Value)},
			f.Normal, f.Axial, f.Moment, f.Lift, f.Drag, f.WakeDrag,
		))
	}
	return table{headers: headers, rows: rows}
}

// pressureTable lists Cp per tap with the station as x/c
func pressureTable(results []aero.CaseResult, layout aero.TapLayout, chord float64) table {
	headers := append([]string{"id", "alpha", "surface", "tap", "x_c"}, quantityHeaders("cp")...)
	var rows [][]string
	for _, r := range results {
		for _, s := range []struct {
			name string
			taps []aero.Point
			cp   []measure.Quantity
		}{
			{"top", layout.Top, r.Coefficients.CpTop},
			{"bottom", layout.Bottom, r.Coefficients.CpBottom},
		} {
			for i, cp := range s.cp {
				var x string
				if i < len(s.taps) && chord > 0 {
					x = formatFloat(s.taps[i].X / chord)
				}
				rows = append(rows, quantityRow(
					[]string{r.ID, formatFloat(r.Alpha.Value), s.name, formatInt(i), x}, cp))
			}
		}
	}
	return table{headers: headers, rows: rows}
}

func wakeTable(results []aero.CaseResult) table {
	headers := append([]string{"id", "alpha", "y", "config", "port"}, quantityHeaders("pressure", "velocity")...)
	var rows [][]string
	for _, r := range results {
		for _, p := range r.Wake {
			rows = append(rows, quantityRow(
				[]string{r.ID, formatFloat(r.Alpha.Value), formatFloat(p.Y), formatInt(p.Config), formatInt(p.Port)},
				p.Pressure, p.Velocity))
		}
	}
	return table{headers: headers, rows: rows}
}

func failuresTable(failures []*aero.CaseError) table {
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{formatInt(f.Index), f.ID, formatFloat(f.Alpha), f.Err.Error()})
	}
	return table{headers: []string{"index", "id", "alpha", "error"}, rows: rows}
}

func summaryTable(s aero.SweepSummary) table {
	pairs := []struct {
		name  string
		value float64
	}{
		{"cases", float64(s.Cases)},
		{"max_cl", s.MaxLift},
		{"stall_alpha", s.StallAlpha},
		{"lift_slope_per_deg", s.LiftSlopePerDeg},
		{"lift_slope_per_rad", s.LiftSlopePerRad},
		{"zero_lift_alpha", s.ZeroLiftAlpha},
		{"slope_r_squared", s.SlopeRSquared},
		{"slope_points", float64(s.SlopePoints)},
		{"min_cdt", s.MinWakeDrag},
		{"min_cdt_alpha", s.MinWakeDragAlpha},
		{"mean_cdt", s.MeanWakeDrag},
		{"max_l_over_d", s.MaxLiftToDrag},
		{"max_l_over_d_alpha", s.MaxLiftToDragAlpha},
	}
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p.name, formatFloat(p.value)}
	}
	return table{headers: []string{"metric", "value"}, rows: rows}
}
