package mapper

import (
	"math"

	"tickerprovider/internal/source"
)

// SymbolFrame is one instrument's slice of a multi-instrument frame.
type SymbolFrame struct {
	Symbol string
	Frame  source.Frame
}

// SplitBySymbol splits a frame whose column axis is (symbol, field) pairs
// into one flat frame per distinct symbol, ordered by first appearance in
// the column axis. Rows where every cell for a symbol is absent or NaN are
// dropped from that symbol's slice; a symbol left with no rows is omitted
// entirely. Flat columns (no symbol level) are ignored here; the caller
// decides what a flat frame belongs to.
func SplitBySymbol(f source.Frame) []SymbolFrame {
	var order []string
	cols := make(map[string][]int)
	for c, col := range f.Cols {
		if col.Symbol == "" {
			continue
		}
		if _, ok := cols[col.Symbol]; !ok {
			order = append(order, col.Symbol)
		}
		cols[col.Symbol] = append(cols[col.Symbol], c)
	}

	out := make([]SymbolFrame, 0, len(order))
	for _, sym := range order {
		idxs := cols[sym]
		sub := source.Frame{Cols: make([]source.Col, len(idxs))}
		for k, c := range idxs {
			sub.Cols[k] = source.Col{Name: f.Cols[c].Name}
		}
		for i, row := range f.Rows {
			cells := make([]source.Value, len(idxs))
			defined := false
			for k, c := range idxs {
				v := row[c]
				cells[k] = v
				if fl, ok := v.Float(); ok && !math.IsNaN(fl) {
					defined = true
				} else if !v.IsAbsent() && v.Kind() != source.KindNumber {
					defined = true
				}
			}
			if !defined {
				continue
			}
			sub.Rows = append(sub.Rows, cells)
			if i < len(f.Index) {
				sub.Index = append(sub.Index, f.Index[i])
			}
		}
		if len(sub.Rows) == 0 {
			continue
		}
		out = append(out, SymbolFrame{Symbol: sym, Frame: sub})
	}
	return out
}
