package yahoo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tickerprovider/internal/source"
)

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartEnvelope struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Currency  string `json:"currency"`
		PriceHint int    `json:"priceHint"`
	} `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Events     *chartEvents `json:"events"`
	Indicators struct {
		Quote    []chartQuote    `json:"quote"`
		AdjClose []chartAdjClose `json:"adjclose"`
	} `json:"indicators"`
}

// Bars use pointers: the chart API encodes missing bars as nulls.
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type chartAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

type chartEvents struct {
	Dividends    map[string]dividendEvent `json:"dividends"`
	Splits       map[string]splitEvent    `json:"splits"`
	CapitalGains map[string]gainEvent     `json:"capitalGains"`
}

type dividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

type splitEvent struct {
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
	Date        int64   `json:"date"`
}

type gainEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

func (e splitEvent) ratio() float64 {
	if e.Denominator == 0 {
		return 0
	}
	return e.Numerator / e.Denominator
}

// rangeQuery translates upstream history arguments to chart parameters.
// Only flags the caller actually set reach the wire.
func rangeQuery(args source.HistoryArgs) url.Values {
	q := url.Values{}
	if args.Interval != "" {
		q.Set("interval", args.Interval)
	}
	if args.Period != "" {
		q.Set("range", args.Period)
	} else {
		if args.Start != nil {
			q.Set("period1", strconv.FormatInt(args.Start.Unix(), 10))
		}
		if args.End != nil {
			q.Set("period2", strconv.FormatInt(args.End.Unix(), 10))
		}
	}
	if args.PrePost != nil {
		q.Set("includePrePost", strconv.FormatBool(*args.PrePost))
	}
	q.Set("events", "div,splits,capitalGains")
	return q
}

func (c *Client) fetchChart(ctx context.Context, symbol string, args source.HistoryArgs) (chartResult, error) {
	var env chartEnvelope
	if err := c.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), rangeQuery(args), &env); err != nil {
		return chartResult{}, err
	}
	if env.Chart.Error != nil {
		return chartResult{}, fmt.Errorf("chart %s: %s (%s)", symbol, env.Chart.Error.Description, env.Chart.Error.Code)
	}
	if len(env.Chart.Result) == 0 {
		return chartResult{}, fmt.Errorf("chart %s: empty result", symbol)
	}
	return env.Chart.Result[0], nil
}

// History fetches the OHLCV frame for one symbol. The chart API always
// returns unadjusted bars plus an adjusted close; auto-adjust (upstream
// default true) rescales OHLC by adjclose/close. Repair has no equivalent
// on the raw API and is accepted without effect.
func (c *Client) History(ctx context.Context, symbol string, args source.HistoryArgs) (source.Frame, error) {
	res, err := c.fetchChart(ctx, symbol, args)
	if err != nil {
		return source.Frame{}, err
	}
	return buildHistoryFrame(res, args), nil
}

func buildHistoryFrame(res chartResult, args source.HistoryArgs) source.Frame {
	withActions := args.Actions == nil || *args.Actions
	autoAdjust := args.AutoAdjust == nil || *args.AutoAdjust
	backAdjust := !autoAdjust && args.BackAdjust != nil && *args.BackAdjust
	keepNA := args.KeepNA != nil && *args.KeepNA
	rounding := args.Rounding != nil && *args.Rounding

	var quote chartQuote
	if len(res.Indicators.Quote) > 0 {
		quote = res.Indicators.Quote[0]
	}
	var adj []*float64
	if len(res.Indicators.AdjClose) > 0 {
		adj = res.Indicators.AdjClose[0].AdjClose
	}

	var divs map[int64]float64
	var splits map[int64]float64
	var gains map[int64]float64
	if res.Events != nil {
		divs = make(map[int64]float64, len(res.Events.Dividends))
		for _, e := range res.Events.Dividends {
			divs[e.Date] = e.Amount
		}
		splits = make(map[int64]float64, len(res.Events.Splits))
		for _, e := range res.Events.Splits {
			splits[e.Date] = e.ratio()
		}
		gains = make(map[int64]float64, len(res.Events.CapitalGains))
		for _, e := range res.Events.CapitalGains {
			gains[e.Date] = e.Amount
		}
	}

	frame := source.Frame{
		Cols: []source.Col{
			{Name: "Open"}, {Name: "High"}, {Name: "Low"}, {Name: "Close"}, {Name: "Volume"},
		},
	}
	if withActions {
		frame.Cols = append(frame.Cols,
			source.Col{Name: "Dividends"},
			source.Col{Name: "Stock Splits"},
		)
		if len(gains) > 0 {
			frame.Cols = append(frame.Cols, source.Col{Name: "Capital Gains"})
		}
	}

	round := func(f float64) float64 { return f }
	if rounding {
		scale := math.Pow10(res.Meta.PriceHint)
		if scale > 0 {
			round = func(f float64) float64 { return math.Round(f*scale) / scale }
		}
	}

	bar := func(vs []*float64, i int) (float64, bool) {
		if i >= len(vs) || vs[i] == nil {
			return math.NaN(), false
		}
		return *vs[i], true
	}

	for i, ts := range res.Timestamp {
		closeRaw, closeOK := bar(quote.Close, i)
		if !closeOK && !keepNA {
			continue
		}

		factor := 1.0
		if (autoAdjust || backAdjust) && closeOK && closeRaw != 0 {
			if a, ok := bar(adj, i); ok {
				factor = a / closeRaw
			}
		}

		price := func(vs []*float64, i int) source.Value {
			f, ok := bar(vs, i)
			if !ok {
				return source.NaN()
			}
			return source.Number(round(f * factor))
		}

		row := []source.Value{
			price(quote.Open, i),
			price(quote.High, i),
			price(quote.Low, i),
			price(quote.Close, i),
		}
		if v, ok := bar(quote.Volume, i); ok {
			row = append(row, source.Number(v))
		} else {
			row = append(row, source.NaN())
		}
		if withActions {
			row = append(row, source.Number(divs[ts]), source.Number(splits[ts]))
			if len(gains) > 0 {
				row = append(row, source.Number(gains[ts]))
			}
		}
		frame.Index = append(frame.Index, time.Unix(ts, 0).UTC())
		frame.Rows = append(frame.Rows, row)
	}
	return frame
}

// eventSeries fetches just the corporate-action events for a period.
func (c *Client) eventSeries(ctx context.Context, symbol, period string) (*chartEvents, error) {
	res, err := c.fetchChart(ctx, symbol, source.HistoryArgs{Period: period, Interval: "1d"})
	if err != nil {
		return nil, err
	}
	if res.Events == nil {
		return &chartEvents{}, nil
	}
	return res.Events, nil
}

// Dividends returns the dividend series for the period, oldest first.
func (c *Client) Dividends(ctx context.Context, symbol, period string) (source.Series, error) {
	events, err := c.eventSeries(ctx, symbol, period)
	if err != nil {
		return source.Series{}, err
	}
	dates := make([]int64, 0, len(events.Dividends))
	byDate := make(map[int64]float64, len(events.Dividends))
	for _, e := range events.Dividends {
		dates = append(dates, e.Date)
		byDate[e.Date] = e.Amount
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	var s source.Series
	for _, d := range dates {
		s.Index = append(s.Index, time.Unix(d, 0).UTC())
		s.Values = append(s.Values, source.Number(byDate[d]))
	}
	return s, nil
}

// Splits returns the split-ratio series for the period, oldest first.
func (c *Client) Splits(ctx context.Context, symbol, period string) (source.Series, error) {
	events, err := c.eventSeries(ctx, symbol, period)
	if err != nil {
		return source.Series{}, err
	}
	dates := make([]int64, 0, len(events.Splits))
	byDate := make(map[int64]float64, len(events.Splits))
	for _, e := range events.Splits {
		dates = append(dates, e.Date)
		byDate[e.Date] = e.ratio()
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	var s source.Series
	for _, d := range dates {
		s.Index = append(s.Index, time.Unix(d, 0).UTC())
		s.Values = append(s.Values, source.Number(byDate[d]))
	}
	return s, nil
}

// Actions returns the merged corporate-actions frame for the period,
// oldest first, with zero filler where a date has only one kind of event.
func (c *Client) Actions(ctx context.Context, symbol, period string) (source.Frame, error) {
	events, err := c.eventSeries(ctx, symbol, period)
	if err != nil {
		return source.Frame{}, err
	}
	divs := make(map[int64]float64, len(events.Dividends))
	for _, e := range events.Dividends {
		divs[e.Date] = e.Amount
	}
	splits := make(map[int64]float64, len(events.Splits))
	for _, e := range events.Splits {
		splits[e.Date] = e.ratio()
	}
	gains := make(map[int64]float64, len(events.CapitalGains))
	for _, e := range events.CapitalGains {
		gains[e.Date] = e.Amount
	}

	seen := make(map[int64]struct{})
	var dates []int64
	for _, m := range []map[int64]float64{divs, splits, gains} {
		for d := range m {
			if _, ok := seen[d]; !ok {
				seen[d] = struct{}{}
				dates = append(dates, d)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	frame := source.Frame{
		Cols: []source.Col{{Name: "Dividends"}, {Name: "Stock Splits"}, {Name: "Capital Gains"}},
	}
	for _, d := range dates {
		frame.Index = append(frame.Index, time.Unix(d, 0).UTC())
		frame.Rows = append(frame.Rows, []source.Value{
			source.Number(divs[d]),
			source.Number(splits[d]),
			source.Number(gains[d]),
		})
	}
	return frame, nil
}

// Download fetches history for several symbols and merges the results into
// one frame with a (symbol, field) column axis, or flat columns when a
// single symbol is requested. A symbol the upstream does not recognize is
// skipped; the call fails only when every symbol fails.
func (c *Client) Download(ctx context.Context, symbols []string, args source.HistoryArgs) (source.Frame, error) {
	frames := make([]source.Frame, len(symbols))
	errs := make([]error, len(symbols))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, sym := range symbols {
		g.Go(func() error {
			f, err := c.History(gctx, sym, args)
			mu.Lock()
			frames[i], errs[i] = f, err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var ok []int
	var lastErr error
	for i := range symbols {
		if errs[i] != nil {
			lastErr = errs[i]
			continue
		}
		ok = append(ok, i)
	}
	if len(ok) == 0 {
		if lastErr != nil {
			return source.Frame{}, fmt.Errorf("download: %w", lastErr)
		}
		return source.Frame{}, nil
	}
	if len(symbols) == 1 {
		return frames[ok[0]], nil
	}
	return mergeFrames(symbols, frames, ok), nil
}

// mergeFrames builds the two-level frame over the union of row timestamps,
// ascending, leaving absent cells where a symbol has no bar for a date.
func mergeFrames(symbols []string, frames []source.Frame, ok []int) source.Frame {
	seen := make(map[time.Time]struct{})
	var index []time.Time
	for _, i := range ok {
		for _, ts := range frames[i].Index {
			if _, dup := seen[ts]; !dup {
				seen[ts] = struct{}{}
				index = append(index, ts)
			}
		}
	}
	sort.Slice(index, func(a, b int) bool { return index[a].Before(index[b]) })

	merged := source.Frame{Index: index}
	rowAt := make([]map[time.Time]int, len(frames))
	for _, i := range ok {
		rowAt[i] = make(map[time.Time]int, len(frames[i].Index))
		for r, ts := range frames[i].Index {
			rowAt[i][ts] = r
		}
		for _, col := range frames[i].Cols {
			merged.Cols = append(merged.Cols, source.Col{Symbol: symbols[i], Name: col.Name})
		}
	}

	for _, ts := range index {
		row := make([]source.Value, 0, len(merged.Cols))
		for _, i := range ok {
			r, has := rowAt[i][ts]
			for c := range frames[i].Cols {
				if !has {
					row = append(row, source.Value{})
					continue
				}
				row = append(row, frames[i].Rows[r][c])
			}
		}
		merged.Rows = append(merged.Rows, row)
	}
	return merged
}
