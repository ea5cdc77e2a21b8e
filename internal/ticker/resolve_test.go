package ticker

import (
	"testing"
	"time"
)

func TestResolveArgs_UnsetFlagsStayUnset(t *testing.T) {
	args := resolveArgs(RangeOptions{})
	if args.PrePost != nil || args.Actions != nil || args.AutoAdjust != nil ||
		args.BackAdjust != nil || args.Repair != nil || args.KeepNA != nil || args.Rounding != nil {
		t.Fatalf("nil flags must be forwarded as nil: %+v", args)
	}
	if args.Interval != "1d" {
		t.Fatalf("interval must default to 1d, got %q", args.Interval)
	}
}

func TestResolveArgs_SetFlagsPassThroughVerbatim(t *testing.T) {
	tr, fa := true, false
	args := resolveArgs(RangeOptions{AutoAdjust: &fa, PrePost: &tr})
	if args.AutoAdjust == nil || *args.AutoAdjust != false {
		t.Fatalf("explicit false must survive: %+v", args.AutoAdjust)
	}
	if args.PrePost == nil || *args.PrePost != true {
		t.Fatalf("explicit true must survive: %+v", args.PrePost)
	}
}

func TestResolveArgs_PeriodWinsOverRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	args := resolveArgs(RangeOptions{Period: "1mo", Start: &start, End: &end})
	if args.Period != "1mo" {
		t.Fatalf("period lost: %q", args.Period)
	}
	if args.Start != nil || args.End != nil {
		t.Fatalf("range must be ignored when period is set: %+v", args)
	}

	args = resolveArgs(RangeOptions{Start: &start, End: &end})
	if args.Period != "" || args.Start == nil || args.End == nil {
		t.Fatalf("range must pass through when period is empty: %+v", args)
	}
}

func TestDefaults(t *testing.T) {
	if got := defaultPeriod(""); got != "max" {
		t.Fatalf("empty period must default to max, got %q", got)
	}
	if got := defaultPeriod("1y"); got != "1y" {
		t.Fatalf("explicit period lost: %q", got)
	}
	if got := defaultFreq(""); got != "yearly" {
		t.Fatalf("empty freq must default to yearly, got %q", got)
	}
	if got := defaultFreq("quarterly"); got != "quarterly" {
		t.Fatalf("explicit freq lost: %q", got)
	}
}
