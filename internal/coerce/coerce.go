// Package coerce converts single upstream values into concrete wire types.
// Every input, however malformed, yields a value of the requested kind;
// nothing here ever returns an error, so callers never special-case type
// failures per field.
package coerce

import (
	"math"
	"strconv"
	"time"

	"tickerprovider/internal/source"
)

// Float returns the value as a float64. Absent, NaN and non-numeric inputs
// become 0.0. Numeric strings are parsed; booleans count as 0/1.
func Float(v source.Value) float64 {
	switch v.Kind() {
	case source.KindNumber:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	case source.KindString:
		s, _ := v.Str()
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		return 0
	case source.KindBool:
		if b, _ := v.Bool(); b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Int returns the value truncated toward zero. Absent and NaN become 0.
func Int(v source.Value) int64 {
	switch v.Kind() {
	case source.KindNumber:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int64(f)
	case source.KindString:
		s, _ := v.Str()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f)
		}
		return 0
	case source.KindBool:
		if b, _ := v.Bool(); b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Str returns the value's textual form. Absent values and floating NaN
// (the upstream null marker) become the empty string.
func Str(v source.Value) string {
	switch v.Kind() {
	case source.KindString:
		s, _ := v.Str()
		return s
	case source.KindNumber:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case source.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	default:
		return ""
	}
}

// Bool returns the value as a bool, false for anything that is not a
// defined boolean or a non-zero number.
func Bool(v source.Value) bool {
	switch v.Kind() {
	case source.KindBool:
		b, _ := v.Bool()
		return b
	case source.KindNumber:
		f, _ := v.Float()
		return !math.IsNaN(f) && f != 0
	default:
		return false
	}
}

// Timestamp returns the value as a UTC instant with second resolution and
// ok=false for absent or not-a-number inputs. Numbers are read as Unix
// seconds. The "no timestamp" state is distinguishable from epoch zero.
func Timestamp(v source.Value) (time.Time, bool) {
	switch v.Kind() {
	case source.KindTime:
		t, _ := v.Time()
		return t.UTC().Truncate(time.Second), true
	case source.KindNumber:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, false
		}
		return time.Unix(int64(f), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}
