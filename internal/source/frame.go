package source

import "time"

// Col identifies one frame column. Symbol is empty for flat frames; bulk
// download frames carry a (Symbol, Name) pair per column.
type Col struct {
	Symbol string
	Name   string
}

// Frame is a row-ordered table as returned upstream. Index holds per-row
// timestamps for time-indexed tables and is nil for tables that have none
// (option chains, holders). Rows is row-major and each row has len(Cols)
// cells.
type Frame struct {
	Index []time.Time
	Cols  []Col
	Rows  [][]Value
}

// NumRows reports the row count.
func (f Frame) NumRows() int { return len(f.Rows) }

// At looks up the named flat column in row i. Unknown columns and
// out-of-range rows yield an absent Value.
func (f Frame) At(i int, name string) Value {
	if i < 0 || i >= len(f.Rows) {
		return Value{}
	}
	for c, col := range f.Cols {
		if col.Symbol == "" && col.Name == name {
			return f.Rows[i][c]
		}
	}
	return Value{}
}

// HasCol reports whether a flat column with the given name exists.
func (f Frame) HasCol(name string) bool {
	for _, col := range f.Cols {
		if col.Symbol == "" && col.Name == name {
			return true
		}
	}
	return false
}

// Series is a time-indexed single-value sequence (dividends, splits).
type Series struct {
	Index  []time.Time
	Values []Value
}

// Grid is a line-item-by-period table (financial statements): Cells[i][j]
// holds the value of Items[i] for Periods[j].
type Grid struct {
	Items   []string
	Periods []time.Time
	Cells   [][]Value
}
