// Package mapper converts loosely shaped upstream results into strict
// output records. Mapping is a pure function of its input: no I/O, no
// shared state, same records for the same frame every time.
package mapper

import (
	"math"
	"sort"
	"time"

	"tickerprovider/internal/coerce"
	"tickerprovider/internal/model"
	"tickerprovider/internal/source"
)

// positive implements the sparse-field rule for corporate actions: the
// field is carried only when the source value is a defined, strictly
// positive number. Zero, negative, absent and NaN all mean "omit".
func positive(v source.Value) *float64 {
	f, ok := v.Float()
	if !ok || math.IsNaN(f) || f <= 0 {
		return nil
	}
	return &f
}

func rowTime(f source.Frame, i int) time.Time {
	if i < 0 || i >= len(f.Index) {
		return time.Time{}
	}
	return f.Index[i].UTC()
}

// HistoryRows maps a time-indexed OHLCV frame, preserving source row order.
func HistoryRows(f source.Frame) []model.HistoryRow {
	rows := make([]model.HistoryRow, 0, f.NumRows())
	for i := range f.Rows {
		rows = append(rows, model.HistoryRow{
			Date:         rowTime(f, i),
			Open:         coerce.Float(f.At(i, "Open")),
			High:         coerce.Float(f.At(i, "High")),
			Low:          coerce.Float(f.At(i, "Low")),
			Close:        coerce.Float(f.At(i, "Close")),
			Volume:       coerce.Int(f.At(i, "Volume")),
			Dividends:    positive(f.At(i, "Dividends")),
			StockSplits:  positive(f.At(i, "Stock Splits")),
			CapitalGains: positive(f.At(i, "Capital Gains")),
		})
	}
	return rows
}

// DividendRows maps a single-value dividend series.
func DividendRows(s source.Series) []model.DividendRow {
	rows := make([]model.DividendRow, 0, len(s.Values))
	for i, v := range s.Values {
		rows = append(rows, model.DividendRow{Date: s.Index[i].UTC(), Amount: coerce.Float(v)})
	}
	return rows
}

// SplitRows maps a single-value split-ratio series.
func SplitRows(s source.Series) []model.SplitRow {
	rows := make([]model.SplitRow, 0, len(s.Values))
	for i, v := range s.Values {
		rows = append(rows, model.SplitRow{Date: s.Index[i].UTC(), Ratio: coerce.Float(v)})
	}
	return rows
}

// ActionRows maps the corporate-actions frame; all three payload columns
// follow the sparse rule.
func ActionRows(f source.Frame) []model.ActionRow {
	rows := make([]model.ActionRow, 0, f.NumRows())
	for i := range f.Rows {
		rows = append(rows, model.ActionRow{
			Date:         rowTime(f, i),
			Dividends:    positive(f.At(i, "Dividends")),
			StockSplits:  positive(f.At(i, "Stock Splits")),
			CapitalGains: positive(f.At(i, "Capital Gains")),
		})
	}
	return rows
}

// EarningsRows maps the per-period revenue/earnings frame.
func EarningsRows(f source.Frame) []model.EarningsRow {
	rows := make([]model.EarningsRow, 0, f.NumRows())
	for i := range f.Rows {
		rows = append(rows, model.EarningsRow{
			Date:     rowTime(f, i),
			Revenue:  coerce.Float(f.At(i, "Revenue")),
			Earnings: coerce.Float(f.At(i, "Earnings")),
		})
	}
	return rows
}

// RecommendationRows maps the analyst-grade frame and re-sorts it most
// recent first. This is a deliberate post-processing step, not a
// pass-through of source order.
func RecommendationRows(f source.Frame) []model.RecommendationRow {
	rows := make([]model.RecommendationRow, 0, f.NumRows())
	for i := range f.Rows {
		rows = append(rows, model.RecommendationRow{
			Date:      rowTime(f, i),
			Firm:      coerce.Str(f.At(i, "Firm")),
			ToGrade:   coerce.Str(f.At(i, "ToGrade")),
			FromGrade: coerce.Str(f.At(i, "FromGrade")),
			Action:    coerce.Str(f.At(i, "Action")),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows
}

// OptionContracts maps one side of an option chain, keeping the as-returned
// row order. contractSize falls back to REGULAR only when the column is
// missing outright.
func OptionContracts(f source.Frame) []model.OptionContract {
	out := make([]model.OptionContract, 0, f.NumRows())
	for i := range f.Rows {
		c := model.OptionContract{
			ContractSymbol:    coerce.Str(f.At(i, "contractSymbol")),
			Strike:            coerce.Float(f.At(i, "strike")),
			Currency:          coerce.Str(f.At(i, "currency")),
			LastPrice:         coerce.Float(f.At(i, "lastPrice")),
			Bid:               coerce.Float(f.At(i, "bid")),
			Ask:               coerce.Float(f.At(i, "ask")),
			Change:            coerce.Float(f.At(i, "change")),
			PercentChange:     coerce.Float(f.At(i, "percentChange")),
			Volume:            coerce.Int(f.At(i, "volume")),
			OpenInterest:      coerce.Int(f.At(i, "openInterest")),
			ImpliedVolatility: coerce.Float(f.At(i, "impliedVolatility")),
			InTheMoney:        coerce.Bool(f.At(i, "inTheMoney")),
			ContractSize:      coerce.Str(f.At(i, "contractSize")),
		}
		if !f.HasCol("contractSize") {
			c.ContractSize = "REGULAR"
		}
		if t, ok := coerce.Timestamp(f.At(i, "lastTradeDate")); ok {
			c.LastTradeDate = &t
		}
		out = append(out, c)
	}
	return out
}

// MajorHolders maps the category/value breakdown into a flat map.
func MajorHolders(f source.Frame) map[string]string {
	out := make(map[string]string, f.NumRows())
	for i := range f.Rows {
		cat := coerce.Str(f.At(i, "Category"))
		if cat == "" {
			continue
		}
		out[cat] = coerce.Str(f.At(i, "Value"))
	}
	return out
}

// HolderRows maps an institutional or mutual-fund holders table.
func HolderRows(f source.Frame) []model.HolderRecord {
	out := make([]model.HolderRecord, 0, f.NumRows())
	for i := range f.Rows {
		h := model.HolderRecord{
			Holder: coerce.Str(f.At(i, "Holder")),
			Shares: coerce.Int(f.At(i, "Shares")),
			PctOut: coerce.Float(f.At(i, "% Out")),
			Value:  coerce.Float(f.At(i, "Value")),
		}
		if t, ok := coerce.Timestamp(f.At(i, "Date Reported")); ok {
			h.DateReported = &t
		}
		out = append(out, h)
	}
	return out
}
