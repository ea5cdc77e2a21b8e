package ticker

import "tickerprovider/internal/source"

// resolveArgs turns caller options into the upstream argument set. Unset
// flags stay nil so the upstream applies its own documented default; set
// flags pass through unchanged. A period and an explicit date range are
// mutually exclusive: when a period is present it wins and the range is
// ignored. Interval falls back to 1d.
func resolveArgs(o RangeOptions) source.HistoryArgs {
	args := source.HistoryArgs{
		Interval:   o.Interval,
		PrePost:    o.PrePost,
		Actions:    o.Actions,
		AutoAdjust: o.AutoAdjust,
		BackAdjust: o.BackAdjust,
		Repair:     o.Repair,
		KeepNA:     o.KeepNA,
		Rounding:   o.Rounding,
	}
	if args.Interval == "" {
		args.Interval = "1d"
	}
	if o.Period != "" {
		args.Period = o.Period
	} else {
		args.Start = o.Start
		args.End = o.End
	}
	return args
}

// defaultPeriod applies the upstream default for the single-series
// endpoints (dividends, splits, actions).
func defaultPeriod(period string) string {
	if period == "" {
		return "max"
	}
	return period
}

// defaultFreq applies the statement-frequency default.
func defaultFreq(freq string) string {
	if freq == "" {
		return "yearly"
	}
	return freq
}
