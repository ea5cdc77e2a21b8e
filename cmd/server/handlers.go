package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tickerprovider/internal/source"
	"tickerprovider/internal/ticker"
)

type server struct {
	svc *ticker.Service
	log *zap.Logger
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /v1/tickers/{symbol}/info", s.handleInfo)
	mux.HandleFunc("POST /v1/tickers/info", s.handleMultiInfo)
	mux.HandleFunc("GET /v1/tickers/{symbol}/history", s.handleHistory)
	mux.HandleFunc("GET /v1/tickers/{symbol}/dividends", s.handleDividends)
	mux.HandleFunc("GET /v1/tickers/{symbol}/splits", s.handleSplits)
	mux.HandleFunc("GET /v1/tickers/{symbol}/actions", s.handleActions)
	mux.HandleFunc("GET /v1/tickers/{symbol}/financials", s.handleStatement(source.StatementIncome))
	mux.HandleFunc("GET /v1/tickers/{symbol}/balance-sheet", s.handleStatement(source.StatementBalance))
	mux.HandleFunc("GET /v1/tickers/{symbol}/cashflow", s.handleStatement(source.StatementCashFlow))
	mux.HandleFunc("GET /v1/tickers/{symbol}/earnings", s.handleEarnings)
	mux.HandleFunc("GET /v1/tickers/{symbol}/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /v1/tickers/{symbol}/options", s.handleOptionExpirations)
	mux.HandleFunc("GET /v1/tickers/{symbol}/option-chain", s.handleOptionChain)
	mux.HandleFunc("GET /v1/tickers/{symbol}/calendar", s.handleCalendar)
	mux.HandleFunc("GET /v1/tickers/{symbol}/news", s.handleNews)
	mux.HandleFunc("GET /v1/tickers/{symbol}/holders/major", s.handleHolders(source.HoldersMajor))
	mux.HandleFunc("GET /v1/tickers/{symbol}/holders/institutional", s.handleHolders(source.HoldersInstitutional))
	mux.HandleFunc("GET /v1/tickers/{symbol}/holders/mutualfund", s.handleHolders(source.HoldersMutualFund))
	mux.HandleFunc("GET /v1/download", s.handleDownload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	var b errorBody
	b.Error.Code = code
	b.Error.Message = msg
	writeJSON(w, status, b)
}

// upstreamError maps any service failure to a single opaque internal error.
// Upstream details stay in the logs, not in the response body.
func (s *server) upstreamError(w http.ResponseWriter, err error) {
	var op *ticker.OpError
	if errors.As(err, &op) {
		writeError(w, http.StatusInternalServerError, "internal", "error fetching "+op.Op+" for "+op.Symbol)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

func pathSymbol(w http.ResponseWriter, r *http.Request) (string, bool) {
	sym := strings.TrimSpace(r.PathValue("symbol"))
	if sym == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "missing symbol")
		return "", false
	}
	return sym, true
}

func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	info, err := s.svc.Info(r.Context(), sym)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"info": info})
}

type multiInfoBody struct {
	Symbols []string `json:"symbols"`
}

func (s *server) handleMultiInfo(w http.ResponseWriter, r *http.Request) {
	var b multiInfoBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid JSON body")
		return
	}
	if len(b.Symbols) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_argument", "symbols cannot be empty")
		return
	}
	if len(b.Symbols) > 1000 {
		writeError(w, http.StatusBadRequest, "invalid_argument", "too many symbols (max 1000)")
		return
	}
	infos, err := s.svc.MultiInfo(r.Context(), b.Symbols)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"infos": infos})
}

// parseTriBool reads a query flag as tri-state: absent means unset and the
// upstream default governs.
func parseTriBool(q map[string][]string, key string) *bool {
	vals, ok := q[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	var b bool
	switch strings.ToLower(vals[0]) {
	case "1", "true", "yes", "y":
		b = true
	case "0", "false", "no", "n":
		b = false
	default:
		return nil
	}
	return &b
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func rangeFromQuery(r *http.Request) (ticker.RangeOptions, error) {
	q := r.URL.Query()
	opts := ticker.RangeOptions{
		Period:   q.Get("period"),
		Interval: q.Get("interval"),
	}
	if v := q.Get("start"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			return opts, errors.New("invalid start date")
		}
		opts.Start = &t
	}
	if v := q.Get("end"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			return opts, errors.New("invalid end date")
		}
		opts.End = &t
	}
	opts.PrePost = parseTriBool(q, "prepost")
	opts.Actions = parseTriBool(q, "actions")
	opts.AutoAdjust = parseTriBool(q, "auto_adjust")
	opts.BackAdjust = parseTriBool(q, "back_adjust")
	opts.Repair = parseTriBool(q, "repair")
	opts.KeepNA = parseTriBool(q, "keepna")
	opts.Rounding = parseTriBool(q, "rounding")
	return opts, nil
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	opts, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}
	rows, err := s.svc.History(r.Context(), ticker.HistoryRequest{Symbol: sym, RangeOptions: opts})
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *server) handleDividends(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	rows, err := s.svc.Dividends(r.Context(), sym, r.URL.Query().Get("period"))
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dividends": rows})
}

func (s *server) handleSplits(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	rows, err := s.svc.Splits(r.Context(), sym, r.URL.Query().Get("period"))
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"splits": rows})
}

func (s *server) handleActions(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	rows, err := s.svc.Actions(r.Context(), sym, r.URL.Query().Get("period"))
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": rows})
}

func (s *server) handleStatement(kind source.StatementKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sym, ok := pathSymbol(w, r)
		if !ok {
			return
		}
		freq := r.URL.Query().Get("freq")
		stmts, err := s.svc.Financials(r.Context(), sym, kind, freq)
		if err != nil {
			s.upstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"statements": stmts})
	}
}

func (s *server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	freq := r.URL.Query().Get("freq")
	rows, err := s.svc.Earnings(r.Context(), sym, freq)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"earnings": rows})
}

func (s *server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	rows, err := s.svc.Recommendations(r.Context(), sym)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": rows})
}

func (s *server) handleOptionExpirations(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	dates, err := s.svc.OptionExpirations(r.Context(), sym)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expiration_dates": dates})
}

func (s *server) handleOptionChain(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	calls, puts, err := s.svc.OptionChain(r.Context(), sym, date)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calls": calls, "puts": puts})
}

func (s *server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	cal, err := s.svc.Calendar(r.Context(), sym)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calendar": cal})
}

func (s *server) handleNews(w http.ResponseWriter, r *http.Request) {
	sym, ok := pathSymbol(w, r)
	if !ok {
		return
	}
	count := 0
	if v := r.URL.Query().Get("count"); v != "" {
		x, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_argument", "invalid count")
			return
		}
		count = x
	}
	articles, err := s.svc.News(r.Context(), sym, count)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

func (s *server) handleHolders(kind source.HolderKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sym, ok := pathSymbol(w, r)
		if !ok {
			return
		}
		switch kind {
		case source.HoldersMajor:
			breakdown, err := s.svc.MajorHolders(r.Context(), sym)
			if err != nil {
				s.upstreamError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"breakdown": breakdown})
		case source.HoldersInstitutional:
			rows, err := s.svc.InstitutionalHolders(r.Context(), sym)
			if err != nil {
				s.upstreamError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"holders": rows})
		default:
			rows, err := s.svc.MutualFundHolders(r.Context(), sym)
			if err != nil {
				s.upstreamError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"holders": rows})
		}
	}
}

// handleDownload streams one NDJSON line per symbol chunk so large fetches
// never buffer the whole result set in the response.
func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("symbols")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "missing symbols query param")
		return
	}
	symbols := splitCSV(q)
	if len(symbols) > 1000 {
		writeError(w, http.StatusBadRequest, "invalid_argument", "too many symbols (max 1000)")
		return
	}
	opts, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	ch, err := s.svc.Download(r.Context(), ticker.DownloadRequest{Symbols: symbols, RangeOptions: opts})
	if err != nil {
		s.upstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for chunk := range ch {
		if err := enc.Encode(chunk); err != nil {
			s.log.Warn("download stream write", zap.Error(err))
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
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
