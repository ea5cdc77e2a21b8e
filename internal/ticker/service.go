// Package ticker orchestrates one upstream call per operation: resolve the
// caller's options, fetch, map, and translate any failure into a single
// caller-visible error. Each call is independent and stateless.
package ticker

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tickerprovider/internal/mapper"
	"tickerprovider/internal/model"
	"tickerprovider/internal/source"
)

// OpError is the single error shape surfaced to callers: the operation,
// the instrument it was for, and the proximate upstream cause. Partial or
// corrupt records are never returned alongside it.
type OpError struct {
	Op     string
	Symbol string
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Service is the normalization façade over one upstream Source.
type Service struct {
	src source.Source
	log *zap.Logger
}

func New(src source.Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{src: src, log: log}
}

// fail logs the upstream failure with its identifiers and wraps it. There
// is no distinct not-found signal: an unknown symbol raising upstream
// collapses into the same category as any other upstream failure.
func (s *Service) fail(op, symbol string, err error) error {
	s.log.Error("upstream call failed",
		zap.String("op", op),
		zap.String("symbol", symbol),
		zap.Error(err),
	)
	return &OpError{Op: op, Symbol: symbol, Err: err}
}

func (s *Service) Info(ctx context.Context, symbol string) (model.InstrumentProfile, error) {
	attrs, err := s.src.Info(ctx, symbol)
	if err != nil {
		return model.InstrumentProfile{}, s.fail("info", symbol, err)
	}
	return mapper.Profile(symbol, attrs), nil
}

// MultiInfo fetches profiles for several symbols concurrently. Any single
// failure fails the whole call, matching the per-instrument endpoints.
func (s *Service) MultiInfo(ctx context.Context, symbols []string) (map[string]model.InstrumentProfile, error) {
	out := make(map[string]model.InstrumentProfile, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	results := make([]model.InstrumentProfile, len(symbols))
	for i, sym := range symbols {
		g.Go(func() error {
			attrs, err := s.src.Info(gctx, sym)
			if err != nil {
				return s.fail("multi_info", sym, err)
			}
			results[i] = mapper.Profile(sym, attrs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, sym := range symbols {
		out[sym] = results[i]
	}
	return out, nil
}

func (s *Service) History(ctx context.Context, req HistoryRequest) ([]model.HistoryRow, error) {
	frame, err := s.src.History(ctx, req.Symbol, resolveArgs(req.RangeOptions))
	if err != nil {
		return nil, s.fail("history", req.Symbol, err)
	}
	return mapper.HistoryRows(frame), nil
}

func (s *Service) Dividends(ctx context.Context, symbol, period string) ([]model.DividendRow, error) {
	series, err := s.src.Dividends(ctx, symbol, defaultPeriod(period))
	if err != nil {
		return nil, s.fail("dividends", symbol, err)
	}
	return mapper.DividendRows(series), nil
}

func (s *Service) Splits(ctx context.Context, symbol, period string) ([]model.SplitRow, error) {
	series, err := s.src.Splits(ctx, symbol, defaultPeriod(period))
	if err != nil {
		return nil, s.fail("splits", symbol, err)
	}
	return mapper.SplitRows(series), nil
}

func (s *Service) Actions(ctx context.Context, symbol, period string) ([]model.ActionRow, error) {
	frame, err := s.src.Actions(ctx, symbol, defaultPeriod(period))
	if err != nil {
		return nil, s.fail("actions", symbol, err)
	}
	return mapper.ActionRows(frame), nil
}

func (s *Service) Financials(ctx context.Context, symbol string, kind source.StatementKind, freq string) ([]model.FinancialStatement, error) {
	grid, err := s.src.Financials(ctx, symbol, kind, defaultFreq(freq))
	if err != nil {
		return nil, s.fail("financials/"+string(kind), symbol, err)
	}
	return mapper.Statements(grid), nil
}

func (s *Service) Earnings(ctx context.Context, symbol, freq string) ([]model.EarningsRow, error) {
	frame, err := s.src.Earnings(ctx, symbol, defaultFreq(freq))
	if err != nil {
		return nil, s.fail("earnings", symbol, err)
	}
	return mapper.EarningsRows(frame), nil
}

func (s *Service) Recommendations(ctx context.Context, symbol string) ([]model.RecommendationRow, error) {
	frame, err := s.src.Recommendations(ctx, symbol)
	if err != nil {
		return nil, s.fail("recommendations", symbol, err)
	}
	return mapper.RecommendationRows(frame), nil
}

func (s *Service) OptionExpirations(ctx context.Context, symbol string) ([]string, error) {
	dates, err := s.src.OptionExpirations(ctx, symbol)
	if err != nil {
		return nil, s.fail("options", symbol, err)
	}
	return dates, nil
}

// OptionChain returns the calls and puts for one expiration date; an empty
// date means the nearest expiration, as decided upstream.
func (s *Service) OptionChain(ctx context.Context, symbol, date string) (calls, puts []model.OptionContract, err error) {
	cf, pf, err := s.src.OptionChain(ctx, symbol, date)
	if err != nil {
		return nil, nil, s.fail("option_chain", symbol, err)
	}
	return mapper.OptionContracts(cf), mapper.OptionContracts(pf), nil
}

func (s *Service) Calendar(ctx context.Context, symbol string) (model.Calendar, error) {
	attrs, err := s.src.Calendar(ctx, symbol)
	if err != nil {
		return model.Calendar{}, s.fail("calendar", symbol, err)
	}
	return mapper.CalendarEntry(attrs), nil
}

func (s *Service) News(ctx context.Context, symbol string, count int) ([]model.NewsArticle, error) {
	wrappers, err := s.src.News(ctx, symbol, count)
	if err != nil {
		return nil, s.fail("news", symbol, err)
	}
	return mapper.News(wrappers, count), nil
}

func (s *Service) MajorHolders(ctx context.Context, symbol string) (map[string]string, error) {
	frame, err := s.src.Holders(ctx, symbol, source.HoldersMajor)
	if err != nil {
		return nil, s.fail("major_holders", symbol, err)
	}
	return mapper.MajorHolders(frame), nil
}

func (s *Service) InstitutionalHolders(ctx context.Context, symbol string) ([]model.HolderRecord, error) {
	frame, err := s.src.Holders(ctx, symbol, source.HoldersInstitutional)
	if err != nil {
		return nil, s.fail("institutional_holders", symbol, err)
	}
	return mapper.HolderRows(frame), nil
}

func (s *Service) MutualFundHolders(ctx context.Context, symbol string) ([]model.HolderRecord, error) {
	frame, err := s.src.Holders(ctx, symbol, source.HoldersMutualFund)
	if err != nil {
		return nil, s.fail("mutualfund_holders", symbol, err)
	}
	return mapper.HolderRows(frame), nil
}
