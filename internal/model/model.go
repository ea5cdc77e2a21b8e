// Package model holds the strict output records served to clients. All
// records are request-scoped values built fresh from one upstream result
// and discarded after serialization.
package model

import "time"

// InstrumentProfile is the normalized profile record. Every field is
// present on the wire: absent upstream values are zero-filled, never
// omitted, because the schema has no optionality for these fields.
type InstrumentProfile struct {
	Symbol              string `json:"symbol"`
	ShortName           string `json:"short_name"`
	LongName            string `json:"long_name"`
	Industry            string `json:"industry"`
	Sector              string `json:"sector"`
	Country             string `json:"country"`
	City                string `json:"city"`
	State               string `json:"state"`
	Zip                 string `json:"zip"`
	Website             string `json:"website"`
	LongBusinessSummary string `json:"long_business_summary"`

	PreviousClose              float64 `json:"previous_close"`
	Open                       float64 `json:"open"`
	DayLow                     float64 `json:"day_low"`
	DayHigh                    float64 `json:"day_high"`
	RegularMarketPreviousClose float64 `json:"regular_market_previous_close"`
	RegularMarketOpen          float64 `json:"regular_market_open"`
	RegularMarketDayLow        float64 `json:"regular_market_day_low"`
	RegularMarketDayHigh       float64 `json:"regular_market_day_high"`
	CurrentPrice               float64 `json:"current_price"`

	Volume             int64 `json:"volume"`
	RegularMarketVolume int64 `json:"regular_market_volume"`
	AverageVolume      int64 `json:"average_volume"`
	AverageVolume10d   int64 `json:"average_volume_10days"`
	SharesOutstanding  int64 `json:"shares_outstanding"`
	FloatShares        int64 `json:"float_shares"`

	MarketCap                   int64   `json:"market_cap"`
	EnterpriseValue             float64 `json:"enterprise_value"`
	TrailingPE                  float64 `json:"trailing_pe"`
	ForwardPE                   float64 `json:"forward_pe"`
	PriceToBook                 float64 `json:"price_to_book"`
	PriceToSalesTrailing12Mo    float64 `json:"price_to_sales_trailing_12months"`
	EnterpriseToRevenue         float64 `json:"enterprise_to_revenue"`
	EnterpriseToEbitda          float64 `json:"enterprise_to_ebitda"`

	DividendRate             float64 `json:"dividend_rate"`
	DividendYield            float64 `json:"dividend_yield"`
	ExDividendDate           int64   `json:"ex_dividend_date"`
	PayoutRatio              float64 `json:"payout_ratio"`
	FiveYearAvgDividendYield float64 `json:"five_year_avg_dividend_yield"`

	Beta             float64 `json:"beta"`
	TrailingEPS      float64 `json:"trailing_eps"`
	ForwardEPS       float64 `json:"forward_eps"`
	BookValue        float64 `json:"book_value"`
	ProfitMargins    float64 `json:"profit_margins"`
	RevenuePerShare  float64 `json:"revenue_per_share"`
	ReturnOnAssets   float64 `json:"return_on_assets"`
	ReturnOnEquity   float64 `json:"return_on_equity"`
	RevenueGrowth    float64 `json:"revenue_growth"`
	EarningsGrowth   float64 `json:"earnings_growth"`
	OperatingMargins float64 `json:"operating_margins"`
	EbitdaMargins    float64 `json:"ebitda_margins"`

	FiftyTwoWeekLow      float64 `json:"fifty_two_week_low"`
	FiftyTwoWeekHigh     float64 `json:"fifty_two_week_high"`
	FiftyDayAverage      float64 `json:"fifty_day_average"`
	TwoHundredDayAverage float64 `json:"two_hundred_day_average"`

	TargetHighPrice          float64 `json:"target_high_price"`
	TargetLowPrice           float64 `json:"target_low_price"`
	TargetMeanPrice          float64 `json:"target_mean_price"`
	TargetMedianPrice        float64 `json:"target_median_price"`
	NumberOfAnalystOpinions  int64   `json:"number_of_analyst_opinions"`

	Currency          string `json:"currency"`
	Exchange          string `json:"exchange"`
	QuoteType         string `json:"quote_type"`
	FinancialCurrency string `json:"financial_currency"`
	PriceHint         int64  `json:"price_hint"`
}

// HistoryRow is one OHLCV bar. The corporate-action fields are sparse:
// set only when the upstream value is a defined, strictly positive number.
type HistoryRow struct {
	Date         time.Time `json:"date"`
	Open         float64   `json:"open"`
	High         float64   `json:"high"`
	Low          float64   `json:"low"`
	Close        float64   `json:"close"`
	Volume       int64     `json:"volume"`
	Dividends    *float64  `json:"dividends,omitempty"`
	StockSplits  *float64  `json:"stock_splits,omitempty"`
	CapitalGains *float64  `json:"capital_gains,omitempty"`
}

// DividendRow is one dividend payment.
type DividendRow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// SplitRow is one stock split.
type SplitRow struct {
	Date  time.Time `json:"date"`
	Ratio float64   `json:"ratio"`
}

// ActionRow is one corporate-action row; all three payloads are sparse.
type ActionRow struct {
	Date         time.Time `json:"date"`
	Dividends    *float64  `json:"dividends,omitempty"`
	StockSplits  *float64  `json:"stock_splits,omitempty"`
	CapitalGains *float64  `json:"capital_gains,omitempty"`
}

// EarningsRow is one reporting period of revenue and earnings.
type EarningsRow struct {
	Date     time.Time `json:"date"`
	Revenue  float64   `json:"revenue"`
	Earnings float64   `json:"earnings"`
}

// FinancialStatement maps line-item labels to values for one period.
// Entries whose upstream value is not a number are dropped, never zeroed.
type FinancialStatement struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}

// RecommendationRow is one analyst grade change.
type RecommendationRow struct {
	Date      time.Time `json:"date"`
	Firm      string    `json:"firm"`
	ToGrade   string    `json:"to_grade"`
	FromGrade string    `json:"from_grade"`
	Action    string    `json:"action"`
}

// OptionContract is one row of an option chain.
type OptionContract struct {
	ContractSymbol    string     `json:"contract_symbol"`
	Strike            float64    `json:"strike"`
	Currency          string     `json:"currency"`
	LastPrice         float64    `json:"last_price"`
	Bid               float64    `json:"bid"`
	Ask               float64    `json:"ask"`
	Change            float64    `json:"change"`
	PercentChange     float64    `json:"percent_change"`
	Volume            int64      `json:"volume"`
	OpenInterest      int64      `json:"open_interest"`
	ImpliedVolatility float64    `json:"implied_volatility"`
	InTheMoney        bool       `json:"in_the_money"`
	ContractSize      string     `json:"contract_size"`
	LastTradeDate     *time.Time `json:"last_trade_date,omitempty"`
}

// NewsArticle is one normalized news item. PublishTime is dropped (not the
// article) when the upstream date string does not parse.
type NewsArticle struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Publisher   string     `json:"publisher"`
	Link        string     `json:"link"`
	ContentType string     `json:"content_type"`
	PublishTime *time.Time `json:"publish_time,omitempty"`
	Thumbnail   string     `json:"thumbnail"`
}

// EarningsWindow is the expected earnings-date range.
type EarningsWindow struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Calendar groups upcoming events; each section is present only when the
// upstream supplied it.
type Calendar struct {
	Earnings       *EarningsWindow `json:"earnings,omitempty"`
	ExDividendDate *time.Time      `json:"ex_dividend_date,omitempty"`
}

// HolderRecord is one institutional or mutual-fund holder row.
type HolderRecord struct {
	Holder       string     `json:"holder"`
	Shares       int64      `json:"shares"`
	DateReported *time.Time `json:"date_reported,omitempty"`
	PctOut       float64    `json:"pct_out"`
	Value        float64    `json:"value"`
}

// BulkHistoryChunk is one instrument's worth of history rows, emitted as a
// unit on the streaming bulk endpoint.
type BulkHistoryChunk struct {
	Symbol string       `json:"symbol"`
	Rows   []HistoryRow `json:"rows"`
}
