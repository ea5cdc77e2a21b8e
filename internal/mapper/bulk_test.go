package mapper

import (
	"testing"
	"time"

	"tickerprovider/internal/source"
)

func bulkFrame() source.Frame {
	return source.Frame{
		Index: []time.Time{day(1), day(2), day(3)},
		Cols: []source.Col{
			{Symbol: "AAPL", Name: "Close"},
			{Symbol: "AAPL", Name: "Volume"},
			{Symbol: "MSFT", Name: "Close"},
			{Symbol: "MSFT", Name: "Volume"},
		},
		Rows: [][]source.Value{
			{source.Number(170), source.Number(1000), source.Number(410), source.Number(2000)},
			{source.Number(171), source.Number(1100), source.NaN(), source.NaN()},
			{source.NaN(), source.NaN(), source.Number(412), source.Number(2100)},
		},
	}
}

func TestSplitBySymbol_PartitionsAndDropsEmptyRows(t *testing.T) {
	parts := SplitBySymbol(bulkFrame())
	if len(parts) != 2 {
		t.Fatalf("want 2 symbols, got %d", len(parts))
	}
	if parts[0].Symbol != "AAPL" || parts[1].Symbol != "MSFT" {
		t.Fatalf("symbol order must follow column axis: %v %v", parts[0].Symbol, parts[1].Symbol)
	}

	aapl := parts[0].Frame
	if aapl.NumRows() != 2 {
		t.Fatalf("AAPL row 3 is all-NaN and must be dropped, got %d rows", aapl.NumRows())
	}
	if !aapl.Index[0].Equal(day(1)) || !aapl.Index[1].Equal(day(2)) {
		t.Fatalf("AAPL index wrong: %v", aapl.Index)
	}
	if got, _ := aapl.At(1, "Close").Float(); got != 171 {
		t.Fatalf("AAPL close wrong: %v", got)
	}

	msft := parts[1].Frame
	if msft.NumRows() != 2 {
		t.Fatalf("MSFT row 2 is all-NaN and must be dropped, got %d rows", msft.NumRows())
	}
	if !msft.Index[1].Equal(day(3)) {
		t.Fatalf("MSFT index wrong: %v", msft.Index)
	}
}

func TestSplitBySymbol_SubFramesAreFlat(t *testing.T) {
	for _, part := range SplitBySymbol(bulkFrame()) {
		for _, col := range part.Frame.Cols {
			if col.Symbol != "" {
				t.Fatalf("sub-frame columns must be flat, got %+v", col)
			}
		}
		if !part.Frame.HasCol("Close") || !part.Frame.HasCol("Volume") {
			t.Fatalf("sub-frame lost columns: %+v", part.Frame.Cols)
		}
	}
}

func TestSplitBySymbol_OmitsSymbolWithNoRows(t *testing.T) {
	f := source.Frame{
		Index: []time.Time{day(1)},
		Cols: []source.Col{
			{Symbol: "AAPL", Name: "Close"},
			{Symbol: "FAIL", Name: "Close"},
		},
		Rows: [][]source.Value{
			{source.Number(170), source.NaN()},
		},
	}
	parts := SplitBySymbol(f)
	if len(parts) != 1 || parts[0].Symbol != "AAPL" {
		t.Fatalf("all-NaN symbol must be omitted: %+v", parts)
	}
}

func TestSplitBySymbol_IgnoresFlatColumns(t *testing.T) {
	f := source.Frame{
		Index: []time.Time{day(1)},
		Cols:  []source.Col{{Name: "Close"}},
		Rows:  [][]source.Value{{source.Number(170)}},
	}
	if parts := SplitBySymbol(f); len(parts) != 0 {
		t.Fatalf("flat frame has no symbol level to split on: %+v", parts)
	}
}
