// Command fetch performs a single normalized fetch against Yahoo Finance and
// prints the result as JSON. Useful for smoke-testing the source and mapper
// without running the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"tickerprovider/internal/httpx"
	"tickerprovider/internal/source"
	"tickerprovider/internal/ticker"
	"tickerprovider/internal/yahoo"
)

func main() {
	var (
		op       string
		symbol   string
		symbols  string
		period   string
		interval string
		start    string
		end      string
		freq     string
		date     string
		count    int
		timeout  int
	)

	flag.StringVar(&op, "op", "info", "operation: info, history, dividends, splits, actions, financials, balance-sheet, cashflow, earnings, recommendations, options, option-chain, calendar, news, major-holders, institutional-holders, mutualfund-holders, download")
	flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "AAPL"), "ticker symbol")
	flag.StringVar(&symbols, "symbols", "", "comma-separated symbols (download only)")
	flag.StringVar(&period, "period", "", "history period, e.g. 1mo, 1y, max")
	flag.StringVar(&interval, "interval", "", "bar interval, e.g. 1d, 1wk")
	flag.StringVar(&start, "start", "", "start date YYYY-MM-DD (ignored when period is set)")
	flag.StringVar(&end, "end", "", "end date YYYY-MM-DD")
	flag.StringVar(&freq, "freq", "", "statement frequency: yearly or quarterly")
	flag.StringVar(&date, "date", "", "option expiration date YYYY-MM-DD")
	flag.IntVar(&count, "count", 10, "number of news articles")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 30), "request timeout seconds")
	flag.Parse()

	httpClient := httpx.New(time.Duration(timeout) * time.Second)
	yc := yahoo.New(yahoo.WithHTTPClient(httpClient.HTTP))
	svc := ticker.New(yc, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	opts := ticker.RangeOptions{Period: period, Interval: interval}
	if t, ok := parseDate(start); ok {
		opts.Start = &t
	}
	if t, ok := parseDate(end); ok {
		opts.End = &t
	}

	var out any
	var err error
	switch op {
	case "info":
		out, err = svc.Info(ctx, symbol)
	case "history":
		out, err = svc.History(ctx, ticker.HistoryRequest{Symbol: symbol, RangeOptions: opts})
	case "dividends":
		out, err = svc.Dividends(ctx, symbol, period)
	case "splits":
		out, err = svc.Splits(ctx, symbol, period)
	case "actions":
		out, err = svc.Actions(ctx, symbol, period)
	case "financials":
		out, err = svc.Financials(ctx, symbol, source.StatementIncome, freq)
	case "balance-sheet":
		out, err = svc.Financials(ctx, symbol, source.StatementBalance, freq)
	case "cashflow":
		out, err = svc.Financials(ctx, symbol, source.StatementCashFlow, freq)
	case "earnings":
		out, err = svc.Earnings(ctx, symbol, freq)
	case "recommendations":
		out, err = svc.Recommendations(ctx, symbol)
	case "options":
		out, err = svc.OptionExpirations(ctx, symbol)
	case "option-chain":
		var calls, puts any
		calls, puts, err = svc.OptionChain(ctx, symbol, date)
		out = map[string]any{"calls": calls, "puts": puts}
	case "calendar":
		out, err = svc.Calendar(ctx, symbol)
	case "news":
		out, err = svc.News(ctx, symbol, count)
	case "major-holders":
		out, err = svc.MajorHolders(ctx, symbol)
	case "institutional-holders":
		out, err = svc.InstitutionalHolders(ctx, symbol)
	case "mutualfund-holders":
		out, err = svc.MutualFundHolders(ctx, symbol)
	case "download":
		runDownload(ctx, svc, symbols, opts)
		return
	default:
		log.Fatalf("unknown op %q", op)
	}
	if err != nil {
		log.Fatalf("%s: %v", op, err)
	}
	printJSON(out)
}

// runDownload prints one JSON line per symbol chunk as it arrives.
func runDownload(ctx context.Context, svc *ticker.Service, symbolsCSV string, opts ticker.RangeOptions) {
	if strings.TrimSpace(symbolsCSV) == "" {
		log.Fatal("download requires -symbols")
	}
	syms := splitCSV(symbolsCSV)
	ch, err := svc.Download(ctx, ticker.DownloadRequest{Symbols: syms, RangeOptions: opts})
	if err != nil {
		log.Fatalf("download: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	for chunk := range ch {
		if err := enc.Encode(chunk); err != nil {
			log.Fatalf("encode: %v", err)
		}
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x != 0 {
			return x
		}
	}
	return def
}
