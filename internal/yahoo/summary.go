package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"tickerprovider/internal/source"
)

type summaryEnvelope struct {
	QuoteSummary struct {
		Result []map[string]any `json:"result"`
		Error  *apiError        `json:"error"`
	} `json:"quoteSummary"`
}

// quoteSummary fetches the requested modules for one symbol and returns
// the result object as a value tree.
func (c *Client) quoteSummary(ctx context.Context, symbol string, modules ...string) (source.Value, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))
	var env summaryEnvelope
	if err := c.getJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, &env); err != nil {
		return source.Value{}, err
	}
	if env.QuoteSummary.Error != nil {
		return source.Value{}, fmt.Errorf("quoteSummary %s: %s (%s)", symbol, env.QuoteSummary.Error.Description, env.QuoteSummary.Error.Code)
	}
	if len(env.QuoteSummary.Result) == 0 {
		return source.Value{}, fmt.Errorf("quoteSummary %s: empty result", symbol)
	}
	return toValue(env.QuoteSummary.Result[0]), nil
}

// infoModules are merged, in order, into the flat profile map; the first
// module to supply a key wins.
var infoModules = []string{
	"price",
	"summaryDetail",
	"financialData",
	"defaultKeyStatistics",
	"assetProfile",
	"quoteType",
}

// Info returns the flat key/value profile map. Yahoo's {raw, fmt} leaf
// wrappers are unwrapped to their raw value; nested module structure is
// flattened away.
func (c *Client) Info(ctx context.Context, symbol string) (source.Attrs, error) {
	res, err := c.quoteSummary(ctx, symbol, infoModules...)
	if err != nil {
		return nil, err
	}
	attrs := source.Attrs{}
	for _, module := range infoModules {
		m := res.Get(module)
		if m.Kind() != source.KindMap {
			continue
		}
		for _, key := range mapKeys(m) {
			if _, exists := attrs[key]; exists {
				continue
			}
			attrs[key] = unwrapRaw(m.Get(key))
		}
	}
	return attrs, nil
}

// mapKeys lists a map value's keys in sorted order for deterministic
// merging.
func mapKeys(v source.Value) []string {
	if v.Kind() != source.KindMap {
		return nil
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.Keys() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Calendar returns the upcoming-events structure with the documented
// "Earnings Date" list and "Ex-Dividend Date" keys; sections the upstream
// lacks are simply not present.
func (c *Client) Calendar(ctx context.Context, symbol string) (source.Attrs, error) {
	res, err := c.quoteSummary(ctx, symbol, "calendarEvents")
	if err != nil {
		return nil, err
	}
	events := res.Get("calendarEvents")
	attrs := source.Attrs{}
	if dates := events.Get("earnings").Get("earningsDate"); dates.Len() > 0 {
		list := make([]source.Value, 0, dates.Len())
		for i := 0; i < dates.Len(); i++ {
			list = append(list, unwrapRaw(dates.At(i)))
		}
		attrs["Earnings Date"] = source.List(list)
	}
	if ex := unwrapRaw(events.Get("exDividendDate")); !ex.IsAbsent() {
		attrs["Ex-Dividend Date"] = ex
	}
	return attrs, nil
}

// Recommendations returns the grade-change frame in upstream order.
func (c *Client) Recommendations(ctx context.Context, symbol string) (source.Frame, error) {
	res, err := c.quoteSummary(ctx, symbol, "upgradeDowngradeHistory")
	if err != nil {
		return source.Frame{}, err
	}
	history := res.Get("upgradeDowngradeHistory").Get("history")
	frame := source.Frame{
		Cols: []source.Col{{Name: "Firm"}, {Name: "ToGrade"}, {Name: "FromGrade"}, {Name: "Action"}},
	}
	for i := 0; i < history.Len(); i++ {
		entry := history.At(i)
		ts, _ := coerceEpoch(unwrapRaw(entry.Get("epochGradeDate")))
		frame.Index = append(frame.Index, ts)
		frame.Rows = append(frame.Rows, []source.Value{
			entry.Get("firm"),
			entry.Get("toGrade"),
			entry.Get("fromGrade"),
			entry.Get("action"),
		})
	}
	return frame, nil
}

func coerceEpoch(v source.Value) (time.Time, bool) {
	f, ok := v.Float()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(f), 0).UTC(), true
}

// Holders returns one of the ownership tables.
func (c *Client) Holders(ctx context.Context, symbol string, kind source.HolderKind) (source.Frame, error) {
	switch kind {
	case source.HoldersMajor:
		return c.majorHolders(ctx, symbol)
	case source.HoldersInstitutional:
		return c.ownershipFrame(ctx, symbol, "institutionOwnership")
	case source.HoldersMutualFund:
		return c.ownershipFrame(ctx, symbol, "fundOwnership")
	default:
		return source.Frame{}, fmt.Errorf("unknown holder kind %q", kind)
	}
}

func (c *Client) majorHolders(ctx context.Context, symbol string) (source.Frame, error) {
	res, err := c.quoteSummary(ctx, symbol, "majorHoldersBreakdown")
	if err != nil {
		return source.Frame{}, err
	}
	breakdown := res.Get("majorHoldersBreakdown")
	frame := source.Frame{Cols: []source.Col{{Name: "Value"}, {Name: "Category"}}}
	for _, key := range mapKeys(breakdown) {
		if key == "maxAge" {
			continue
		}
		frame.Rows = append(frame.Rows, []source.Value{
			unwrapRaw(breakdown.Get(key)),
			source.String(key),
		})
	}
	return frame, nil
}

func (c *Client) ownershipFrame(ctx context.Context, symbol, module string) (source.Frame, error) {
	res, err := c.quoteSummary(ctx, symbol, module)
	if err != nil {
		return source.Frame{}, err
	}
	list := res.Get(module).Get("ownershipList")
	frame := source.Frame{
		Cols: []source.Col{
			{Name: "Holder"}, {Name: "Shares"}, {Name: "Date Reported"}, {Name: "% Out"}, {Name: "Value"},
		},
	}
	for i := 0; i < list.Len(); i++ {
		entry := list.At(i)
		frame.Rows = append(frame.Rows, []source.Value{
			entry.Get("organization"),
			unwrapRaw(entry.Get("position")),
			unwrapRaw(entry.Get("reportDate")),
			unwrapRaw(entry.Get("pctHeld")),
			unwrapRaw(entry.Get("value")),
		})
	}
	return frame, nil
}

// statementModules maps a statement kind to its yearly/quarterly
// quoteSummary modules and the inner list key shared by both.
var statementModules = map[source.StatementKind]struct {
	yearly    string
	quarterly string
	listKey   string
}{
	source.StatementIncome:   {"incomeStatementHistory", "incomeStatementHistoryQuarterly", "incomeStatementHistory"},
	source.StatementBalance:  {"balanceSheetHistory", "balanceSheetHistoryQuarterly", "balanceSheetStatements"},
	source.StatementCashFlow: {"cashflowStatementHistory", "cashflowStatementHistoryQuarterly", "cashflowStatements"},
}

// Financials returns the line-item-by-period grid for one statement type.
// Line items keep Yahoo's camelCase labels; values stay raw, including
// absent cells, which the mapper drops.
func (c *Client) Financials(ctx context.Context, symbol string, kind source.StatementKind, freq string) (source.Grid, error) {
	mods, ok := statementModules[kind]
	if !ok {
		return source.Grid{}, fmt.Errorf("unknown statement kind %q", kind)
	}
	module := mods.yearly
	if freq == "quarterly" {
		module = mods.quarterly
	}
	res, err := c.quoteSummary(ctx, symbol, module)
	if err != nil {
		return source.Grid{}, err
	}
	list := res.Get(module).Get(mods.listKey)

	itemSet := make(map[string]struct{})
	statements := make([]source.Value, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		entry := list.At(i)
		statements = append(statements, entry)
		for _, key := range mapKeys(entry) {
			if key == "endDate" || key == "maxAge" {
				continue
			}
			itemSet[key] = struct{}{}
		}
	}
	items := make([]string, 0, len(itemSet))
	for k := range itemSet {
		items = append(items, k)
	}
	sort.Strings(items)

	grid := source.Grid{Items: items}
	for _, entry := range statements {
		period, _ := coerceEpoch(unwrapRaw(entry.Get("endDate")))
		grid.Periods = append(grid.Periods, period)
	}
	grid.Cells = make([][]source.Value, len(items))
	for i, item := range items {
		grid.Cells[i] = make([]source.Value, len(statements))
		for j, entry := range statements {
			grid.Cells[i][j] = unwrapRaw(entry.Get(item))
		}
	}
	return grid, nil
}

// Earnings returns the per-period revenue/earnings frame. Yearly periods
// arrive as plain years, quarterly ones as strings like "3Q2024".
func (c *Client) Earnings(ctx context.Context, symbol, freq string) (source.Frame, error) {
	res, err := c.quoteSummary(ctx, symbol, "earnings")
	if err != nil {
		return source.Frame{}, err
	}
	chart := res.Get("earnings").Get("financialsChart")
	periods := chart.Get("yearly")
	if freq == "quarterly" {
		periods = chart.Get("quarterly")
	}

	frame := source.Frame{Cols: []source.Col{{Name: "Revenue"}, {Name: "Earnings"}}}
	for i := 0; i < periods.Len(); i++ {
		entry := periods.At(i)
		frame.Index = append(frame.Index, earningsPeriod(entry.Get("date")))
		frame.Rows = append(frame.Rows, []source.Value{
			unwrapRaw(entry.Get("revenue")),
			unwrapRaw(entry.Get("earnings")),
		})
	}
	return frame, nil
}

// earningsPeriod interprets a chart period label: a bare year number, or a
// "<q>Q<year>" string resolved to the quarter's last day.
func earningsPeriod(v source.Value) time.Time {
	if f, ok := v.Float(); ok {
		return time.Date(int(f), time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	s, ok := v.Str()
	if !ok || len(s) < 6 || s[1] != 'Q' {
		return time.Time{}
	}
	q, err1 := strconv.Atoi(s[:1])
	year, err2 := strconv.Atoi(s[2:])
	if err1 != nil || err2 != nil || q < 1 || q > 4 {
		return time.Time{}
	}
	return time.Date(year, time.Month(q*3)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}
