package ticker

import (
	"context"
	"strings"

	"tickerprovider/internal/mapper"
	"tickerprovider/internal/model"
)

// Download performs exactly one upstream bulk fetch, then streams one chunk
// per instrument that has data, in the order instruments appear in the
// result's column axis. Chunks become available as soon as each slice is
// mapped, so the transport can start delivering before the batch finishes.
// A whole-batch upstream failure is the single terminal error, returned
// before any chunk; an instrument with no rows is silently omitted. When
// the caller's context is cancelled the producer stops emitting; it does
// not interrupt the already-issued fetch.
func (s *Service) Download(ctx context.Context, req DownloadRequest) (<-chan model.BulkHistoryChunk, error) {
	frame, err := s.src.Download(ctx, req.Symbols, resolveArgs(req.RangeOptions))
	if err != nil {
		return nil, s.fail("download", strings.Join(req.Symbols, ","), err)
	}

	parts := mapper.SplitBySymbol(frame)
	if len(parts) == 0 && frame.NumRows() > 0 && len(req.Symbols) > 0 {
		// A single-instrument result comes back with flat columns.
		parts = []mapper.SymbolFrame{{Symbol: req.Symbols[0], Frame: frame}}
	}

	ch := make(chan model.BulkHistoryChunk, 1)
	go func() {
		defer close(ch)
		for _, p := range parts {
			rows := mapper.HistoryRows(p.Frame)
			if len(rows) == 0 {
				continue
			}
			select {
			case ch <- model.BulkHistoryChunk{Symbol: p.Symbol, Rows: rows}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
