package mapper

import (
	"math"

	"tickerprovider/internal/model"
	"tickerprovider/internal/source"
)

// Statements maps a line-item-by-period grid into one statement per period,
// in period order. Entries whose value is absent or not a number are
// dropped from the mapping, never coerced to zero: a missing line item and
// a zero line item mean different things to a consumer.
func Statements(g source.Grid) []model.FinancialStatement {
	out := make([]model.FinancialStatement, 0, len(g.Periods))
	for j, period := range g.Periods {
		values := make(map[string]float64)
		for i, item := range g.Items {
			if i >= len(g.Cells) || j >= len(g.Cells[i]) {
				continue
			}
			f, ok := g.Cells[i][j].Float()
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			values[item] = f
		}
		out = append(out, model.FinancialStatement{Date: period.UTC(), Values: values})
	}
	return out
}
