package source

import (
	"context"
	"time"
)

// StatementKind selects one of the three financial statements.
type StatementKind string

const (
	StatementIncome   StatementKind = "income"
	StatementBalance  StatementKind = "balance"
	StatementCashFlow StatementKind = "cashflow"
)

// HolderKind selects a holders table.
type HolderKind string

const (
	HoldersMajor         HolderKind = "major"
	HoldersInstitutional HolderKind = "institutional"
	HoldersMutualFund    HolderKind = "mutualfund"
)

// HistoryArgs are the arguments forwarded to the upstream history call.
// A nil flag means "not set by the caller": the upstream default applies
// and the flag is not sent at all. Period takes precedence over Start/End.
type HistoryArgs struct {
	Period   string
	Start    *time.Time
	End      *time.Time
	Interval string

	PrePost    *bool
	Actions    *bool
	AutoAdjust *bool
	BackAdjust *bool
	Repair     *bool
	KeepNA     *bool
	Rounding   *bool
}

// Source is the upstream data boundary. Implementations return loosely
// shaped values; all defaulting and strict-schema decisions happen in the
// mapper, never here.
type Source interface {
	Info(ctx context.Context, symbol string) (Attrs, error)
	History(ctx context.Context, symbol string, args HistoryArgs) (Frame, error)
	Dividends(ctx context.Context, symbol, period string) (Series, error)
	Splits(ctx context.Context, symbol, period string) (Series, error)
	Actions(ctx context.Context, symbol, period string) (Frame, error)
	Financials(ctx context.Context, symbol string, kind StatementKind, freq string) (Grid, error)
	Earnings(ctx context.Context, symbol, freq string) (Frame, error)
	Recommendations(ctx context.Context, symbol string) (Frame, error)
	OptionExpirations(ctx context.Context, symbol string) ([]string, error)
	OptionChain(ctx context.Context, symbol, date string) (calls Frame, puts Frame, err error)
	Calendar(ctx context.Context, symbol string) (Attrs, error)
	News(ctx context.Context, symbol string, count int) ([]Attrs, error)
	Holders(ctx context.Context, symbol string, kind HolderKind) (Frame, error)
	Download(ctx context.Context, symbols []string, args HistoryArgs) (Frame, error)
}
