package mapper

import (
	"tickerprovider/internal/coerce"
	"tickerprovider/internal/model"
	"tickerprovider/internal/source"
)

type fieldKind int

const (
	fieldString fieldKind = iota
	fieldFloat
	fieldInt
)

// profileField binds one upstream key to one profile field. The zero-fill
// policy is uniform for the profile: coercion substitutes the kind's zero
// value for absent or not-a-number inputs.
type profileField struct {
	key  string
	kind fieldKind
	set  func(*model.InstrumentProfile, source.Value)
}

// profileFields is the single authority on which upstream keys feed which
// profile fields. Tests iterate it; keep entries one per line.
var profileFields = []profileField{
	{"symbol", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Symbol = coerce.Str(v) }},
	{"shortName", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.ShortName = coerce.Str(v) }},
	{"longName", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.LongName = coerce.Str(v) }},
	{"industry", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Industry = coerce.Str(v) }},
	{"sector", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Sector = coerce.Str(v) }},
	{"country", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Country = coerce.Str(v) }},
	{"city", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.City = coerce.Str(v) }},
	{"state", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.State = coerce.Str(v) }},
	{"zip", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Zip = coerce.Str(v) }},
	{"website", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Website = coerce.Str(v) }},
	{"longBusinessSummary", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.LongBusinessSummary = coerce.Str(v) }},

	{"previousClose", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.PreviousClose = coerce.Float(v) }},
	{"open", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.Open = coerce.Float(v) }},
	{"dayLow", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.DayLow = coerce.Float(v) }},
	{"dayHigh", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.DayHigh = coerce.Float(v) }},
	{"regularMarketPreviousClose", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.RegularMarketPreviousClose = coerce.Float(v) }},
	{"regularMarketOpen", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.RegularMarketOpen = coerce.Float(v) }},
	{"regularMarketDayLow", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.RegularMarketDayLow = coerce.Float(v) }},
	{"regularMarketDayHigh", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.RegularMarketDayHigh = coerce.Float(v) }},
	{"currentPrice", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.CurrentPrice = coerce.Float(v) }},

	{"volume", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.Volume = coerce.Int(v) }},
	{"regularMarketVolume", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.RegularMarketVolume = coerce.Int(v) }},
	{"averageVolume", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.AverageVolume = coerce.Int(v) }},
	{"averageVolume10days", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.AverageVolume10d = coerce.Int(v) }},
	{"sharesOutstanding", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.SharesOutstanding = coerce.Int(v) }},
	{"floatShares", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.FloatShares = coerce.Int(v) }},

	{"marketCap", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.MarketCap = coerce.Int(v) }},
	{"enterpriseValue", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.EnterpriseValue = coerce.Float(v) }},
	{"trailingPE", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.TrailingPE = coerce.Float(v) }},
	{"forwardPE", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.ForwardPE = coerce.Float(v) }},
	{"priceToBook", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.PriceToBook = coerce.Float(v) }},
	{"priceToSalesTrailing12Months", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.PriceToSalesTrailing12Mo = coerce.Float(v) }},
	{"enterpriseToRevenue", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.EnterpriseToRevenue = coerce.Float(v) }},
	{"enterpriseToEbitda", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.EnterpriseToEbitda = coerce.Float(v) }},

	{"dividendRate", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.DividendRate = coerce.Float(v) }},
	{"dividendYield", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.DividendYield = coerce.Float(v) }},
	{"exDividendDate", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.ExDividendDate = coerce.Int(v) }},
	{"payoutRatio", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.PayoutRatio = coerce.Float(v) }},
	{"fiveYearAvgDividendYield", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.FiveYearAvgDividendYield = coerce.Float(v) }},

	{"beta", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.Beta = coerce.Float(v) }},
	{"trailingEps", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.TrailingEPS = coerce.Float(v) }},
	{"forwardEps", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.ForwardEPS = coerce.Float(v) }},
	{"bookValue", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.BookValue = coerce.Float(v) }},
	{"profitMargins", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.ProfitMargins = coerce.Float(v) }},
	{"revenuePerShare", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.RevenuePerShare = coerce.Float(v) }},
	{"returnOnAssets", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.ReturnOnAssets = coerce.Float(v) }},
	{"returnOnEquity", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.ReturnOnEquity = coerce.Float(v) }},
	{"revenueGrowth", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.RevenueGrowth = coerce.Float(v) }},
	{"earningsGrowth", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.EarningsGrowth = coerce.Float(v) }},
	{"operatingMargins", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.OperatingMargins = coerce.Float(v) }},
	{"ebitdaMargins", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.EbitdaMargins = coerce.Float(v) }},

	{"fiftyTwoWeekLow", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.FiftyTwoWeekLow = coerce.Float(v) }},
	{"fiftyTwoWeekHigh", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.FiftyTwoWeekHigh = coerce.Float(v) }},
	{"fiftyDayAverage", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.FiftyDayAverage = coerce.Float(v) }},
	{"twoHundredDayAverage", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.TwoHundredDayAverage = coerce.Float(v) }},

	{"targetHighPrice", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.TargetHighPrice = coerce.Float(v) }},
	{"targetLowPrice", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.TargetLowPrice = coerce.Float(v) }},
	{"targetMeanPrice", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.TargetMeanPrice = coerce.Float(v) }},
	{"targetMedianPrice", fieldFloat, func(p *model.InstrumentProfile, v source.Value) { p.TargetMedianPrice = coerce.Float(v) }},
	{"numberOfAnalystOpinions", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.NumberOfAnalystOpinions = coerce.Int(v) }},

	{"currency", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Currency = coerce.Str(v) }},
	{"exchange", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.Exchange = coerce.Str(v) }},
	{"quoteType", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.QuoteType = coerce.Str(v) }},
	{"financialCurrency", fieldString, func(p *model.InstrumentProfile, v source.Value) { p.FinancialCurrency = coerce.Str(v) }},
	{"priceHint", fieldInt, func(p *model.InstrumentProfile, v source.Value) { p.PriceHint = coerce.Int(v) }},
}

// Profile maps a flat profile lookup result onto the strict record. The
// requested symbol backfills the symbol field when the source omits it, and
// priceHint falls back to 2 when the key is missing entirely (a present
// not-a-number still zeroes it).
func Profile(symbol string, a source.Attrs) model.InstrumentProfile {
	var p model.InstrumentProfile
	for _, f := range profileFields {
		f.set(&p, a.Get(f.key))
	}
	if a.Get("symbol").IsAbsent() {
		p.Symbol = symbol
	}
	if a.Get("priceHint").IsAbsent() {
		p.PriceHint = 2
	}
	return p
}
