package source

import (
	"math"
	"time"
)

// Kind tags the shape of a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindString
	KindBool
	KindTime
	KindMap
	KindList
)

// Value is one semi-structured datum from the upstream source: a number
// (possibly NaN), a string, a bool, a timestamp, a nested map, a list, or
// nothing at all. The zero Value is absent. Navigation methods never fail;
// a lookup that cannot succeed yields an absent Value, which keeps the
// mapper free of per-field shape checks.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
	m    map[string]Value
	list []Value
}

func Number(f float64) Value        { return Value{kind: KindNumber, num: f} }
func String(s string) Value         { return Value{kind: KindString, str: s} }
func Bool(b bool) Value             { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value        { return Value{kind: KindTime, t: t} }
func Map(m map[string]Value) Value  { return Value{kind: KindMap, m: m} }
func List(vs []Value) Value         { return Value{kind: KindList, list: vs} }

// NaN is the upstream "defined but not a number" marker.
func NaN() Value { return Number(math.NaN()) }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Float reports the numeric payload. ok is false for non-numbers; a NaN
// number is returned as-is with ok true.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// Get descends into a map Value. Missing keys and non-map receivers yield
// an absent Value.
func (v Value) Get(key string) Value {
	if v.kind != KindMap {
		return Value{}
	}
	return v.m[key]
}

// At indexes into a list Value; out-of-range and non-list receivers yield
// an absent Value.
func (v Value) At(i int) Value {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}
	}
	return v.list[i]
}

// Len is the element count for lists, entry count for maps, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Keys lists a map Value's keys in unspecified order; nil otherwise.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	return keys
}

// Attrs is a flat-or-nested key/value record, e.g. a profile lookup result
// or one news article wrapper.
type Attrs map[string]Value

// Get yields the value for key, absent when missing or when a is nil.
func (a Attrs) Get(key string) Value {
	if a == nil {
		return Value{}
	}
	return a[key]
}
