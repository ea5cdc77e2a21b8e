package mapper

import (
	"testing"
	"time"

	"tickerprovider/internal/source"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func historyFrame(rows [][]source.Value, index []time.Time) source.Frame {
	names := []string{"Open", "High", "Low", "Close", "Volume", "Dividends", "Stock Splits"}
	cols := make([]source.Col, len(names))
	for i, n := range names {
		cols[i] = source.Col{Name: n}
	}
	return source.Frame{Index: index, Cols: cols, Rows: rows}
}

func TestHistoryRows_SparseActionFields(t *testing.T) {
	f := historyFrame([][]source.Value{
		{source.Number(10), source.Number(11), source.Number(9), source.Number(10.5), source.Number(1000), source.Number(0), source.Number(0)},
		{source.Number(10.5), source.Number(12), source.Number(10), source.Number(11.5), source.Number(2000), source.Number(0.24), source.Number(0)},
		{source.Number(11.5), source.Number(13), source.Number(11), source.Number(12), source.Number(1500), source.Number(0), source.Number(4)},
	}, []time.Time{day(1), day(2), day(3)})

	rows := HistoryRows(f)
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	if rows[0].Dividends != nil || rows[0].StockSplits != nil {
		t.Fatalf("zero action values must be omitted: %+v", rows[0])
	}
	if rows[1].Dividends == nil || *rows[1].Dividends != 0.24 || rows[1].StockSplits != nil {
		t.Fatalf("dividend row wrong: %+v", rows[1])
	}
	if rows[2].StockSplits == nil || *rows[2].StockSplits != 4 || rows[2].Dividends != nil {
		t.Fatalf("split row wrong: %+v", rows[2])
	}
	if !rows[1].Date.Equal(day(2)) {
		t.Fatalf("row date wrong: %v", rows[1].Date)
	}
}

func TestHistoryRows_NaNPriceZeroFills(t *testing.T) {
	f := historyFrame([][]source.Value{
		{source.NaN(), source.Number(12), source.Value{}, source.Number(11.5), source.NaN(), source.Number(0), source.Number(0)},
	}, []time.Time{day(1)})
	rows := HistoryRows(f)
	if rows[0].Open != 0 || rows[0].Low != 0 || rows[0].Volume != 0 {
		t.Fatalf("NaN and absent cells must zero-fill: %+v", rows[0])
	}
	if rows[0].High != 12 || rows[0].Close != 11.5 {
		t.Fatalf("defined cells must survive: %+v", rows[0])
	}
}

func TestHistoryRows_OrderPreserved(t *testing.T) {
	f := historyFrame([][]source.Value{
		{source.Number(1), source.Number(1), source.Number(1), source.Number(1), source.Number(1), source.Number(0), source.Number(0)},
		{source.Number(2), source.Number(2), source.Number(2), source.Number(2), source.Number(2), source.Number(0), source.Number(0)},
	}, []time.Time{day(5), day(4)})
	rows := HistoryRows(f)
	if !rows[0].Date.Equal(day(5)) || !rows[1].Date.Equal(day(4)) {
		t.Fatalf("history must keep source order, got %v then %v", rows[0].Date, rows[1].Date)
	}
}

func TestRecommendationRows_MostRecentFirst(t *testing.T) {
	cols := []source.Col{{Name: "Firm"}, {Name: "ToGrade"}, {Name: "FromGrade"}, {Name: "Action"}}
	f := source.Frame{
		Index: []time.Time{day(1), day(9), day(5)},
		Cols:  cols,
		Rows: [][]source.Value{
			{source.String("Alpha"), source.String("Buy"), source.String("Hold"), source.String("up")},
			{source.String("Beta"), source.String("Hold"), source.String("Buy"), source.String("down")},
			{source.String("Gamma"), source.String("Buy"), source.String(""), source.String("init")},
		},
	}
	rows := RecommendationRows(f)
	if len(rows) != 3 {
		t.Fatalf("want 3, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.After(rows[i-1].Date) {
			t.Fatalf("dates must be non-increasing: %v before %v", rows[i-1].Date, rows[i].Date)
		}
	}
	if rows[0].Firm != "Beta" || rows[2].Firm != "Alpha" {
		t.Fatalf("sort wrong: %+v", rows)
	}
}

func TestOptionContracts_ContractSizeFallback(t *testing.T) {
	// Column present: value passes through, even empty.
	withCol := source.Frame{
		Cols: []source.Col{{Name: "contractSymbol"}, {Name: "strike"}, {Name: "contractSize"}},
		Rows: [][]source.Value{
			{source.String("AAPL240621C00190000"), source.Number(190), source.String("JUMBO")},
		},
	}
	out := OptionContracts(withCol)
	if out[0].ContractSize != "JUMBO" {
		t.Fatalf("present column must pass through, got %q", out[0].ContractSize)
	}

	// Column missing outright: REGULAR.
	withoutCol := source.Frame{
		Cols: []source.Col{{Name: "contractSymbol"}, {Name: "strike"}},
		Rows: [][]source.Value{
			{source.String("AAPL240621P00180000"), source.Number(180)},
		},
	}
	out = OptionContracts(withoutCol)
	if out[0].ContractSize != "REGULAR" {
		t.Fatalf("missing column must default to REGULAR, got %q", out[0].ContractSize)
	}
	if out[0].LastTradeDate != nil {
		t.Fatalf("missing lastTradeDate must stay nil")
	}
}

func TestOptionContracts_LastTradeDate(t *testing.T) {
	f := source.Frame{
		Cols: []source.Col{{Name: "contractSymbol"}, {Name: "lastTradeDate"}},
		Rows: [][]source.Value{
			{source.String("X"), source.Number(1718928000)},
		},
	}
	out := OptionContracts(f)
	if out[0].LastTradeDate == nil || !out[0].LastTradeDate.Equal(time.Unix(1718928000, 0).UTC()) {
		t.Fatalf("lastTradeDate wrong: %+v", out[0].LastTradeDate)
	}
}

func TestMajorHolders(t *testing.T) {
	f := source.Frame{
		Cols: []source.Col{{Name: "Value"}, {Name: "Category"}},
		Rows: [][]source.Value{
			{source.Number(0.0735), source.String("insidersPercentHeld")},
			{source.Number(0.6112), source.String("institutionsPercentHeld")},
			{source.Number(1), source.Value{}},
		},
	}
	out := MajorHolders(f)
	if len(out) != 2 {
		t.Fatalf("rows without a category must be skipped, got %v", out)
	}
	if out["insidersPercentHeld"] != "0.0735" {
		t.Fatalf("value formatting wrong: %q", out["insidersPercentHeld"])
	}
}

func TestHolderRows(t *testing.T) {
	f := source.Frame{
		Cols: []source.Col{{Name: "Holder"}, {Name: "Shares"}, {Name: "Date Reported"}, {Name: "% Out"}, {Name: "Value"}},
		Rows: [][]source.Value{
			{source.String("Vanguard Group"), source.Number(1.3e9), source.Number(1711843200), source.Number(0.0845), source.Number(2.2e11)},
			{source.String("Unknown Fund"), source.NaN(), source.Value{}, source.NaN(), source.NaN()},
		},
	}
	out := HolderRows(f)
	if len(out) != 2 {
		t.Fatalf("want 2 rows, got %d", len(out))
	}
	if out[0].Holder != "Vanguard Group" || out[0].Shares != 1300000000 || out[0].PctOut != 0.0845 {
		t.Fatalf("first row wrong: %+v", out[0])
	}
	if out[0].DateReported == nil {
		t.Fatal("date reported must be set")
	}
	if out[1].Shares != 0 || out[1].DateReported != nil {
		t.Fatalf("NaN row must zero-fill with nil date: %+v", out[1])
	}
}

func TestDividendAndSplitRows(t *testing.T) {
	s := source.Series{
		Index:  []time.Time{day(2), day(20)},
		Values: []source.Value{source.Number(0.22), source.Number(0.24)},
	}
	divs := DividendRows(s)
	if len(divs) != 2 || divs[0].Amount != 0.22 || !divs[1].Date.Equal(day(20)) {
		t.Fatalf("dividends wrong: %+v", divs)
	}

	sp := SplitRows(source.Series{Index: []time.Time{day(7)}, Values: []source.Value{source.Number(10)}})
	if len(sp) != 1 || sp[0].Ratio != 10 {
		t.Fatalf("splits wrong: %+v", sp)
	}
}
