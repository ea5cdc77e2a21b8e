package ticker

import (
	"time"
)

// RangeOptions are the caller-facing history options. The boolean flags are
// tri-state: nil means the caller did not set the flag and the upstream
// default governs; a non-nil value, true or false, is forwarded verbatim.
// A plain bool cannot express that, which matters because some upstream
// defaults are true (auto-adjust, corporate-action inclusion).
type RangeOptions struct {
	Period   string     `json:"period,omitempty"`
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
	Interval string     `json:"interval,omitempty"`

	PrePost    *bool `json:"prepost,omitempty"`
	Actions    *bool `json:"actions,omitempty"`
	AutoAdjust *bool `json:"auto_adjust,omitempty"`
	BackAdjust *bool `json:"back_adjust,omitempty"`
	Repair     *bool `json:"repair,omitempty"`
	KeepNA     *bool `json:"keepna,omitempty"`
	Rounding   *bool `json:"rounding,omitempty"`
}

// HistoryRequest asks for one instrument's history.
type HistoryRequest struct {
	Symbol string `json:"symbol"`
	RangeOptions
}

// DownloadRequest asks for bulk history across several instruments with
// shared range options.
type DownloadRequest struct {
	Symbols []string `json:"symbols"`
	RangeOptions
}
