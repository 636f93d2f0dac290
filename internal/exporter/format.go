package exporter

import (
	"strconv"

	"aeroreduce/internal/measure"
)

// formatFloat keeps 10 significant digits, enough for any propagated uncertainty
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 10, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatQuantity returns the value and uncertainty columns of q
func formatQuantity(q measure.Quantity) []string {
	return []string{formatFloat(q.Value), formatFloat(q.Err)}
}

// quantityHeaders expands a column name into its value and uncertainty columns
func quantityHeaders(names ...string) []string {
	out := make([]string, 0, 2*len(names))
	for _, n := range names {
		out = append(out, n, n+"_err")
	}
	return out
}
