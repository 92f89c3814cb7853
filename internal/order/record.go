package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRecord is a single row as returned by the data source, before any
// schema normalization. Deployments mix two column-naming generations, so
// the set of keys present on any given record is open-ended. Accessors take
// an ordered list of candidate keys and return the first usable value.
type RawRecord map[string]any

// dateLayouts are tried in order when a date or timestamp arrives as text.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Text returns the first non-empty value among keys rendered in its natural
// string form. Nil values and empty strings count as absent.
func (r RawRecord) Text(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s := stringify(v)
		if s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

// Date returns the first value among keys that parses as a point in time.
// Accepted shapes: time.Time, textual dates/timestamps, numeric epochs
// (seconds, or milliseconds when the magnitude demands it). Unparsable
// values are skipped rather than reported as errors.
func (r RawRecord) Date(keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if t, ok := coerceTime(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Number returns the first value among keys that is numeric, or parses as a
// number when stored as text.
func (r RawRecord) Number(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int32:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		// Whole floats (the usual fate of integer columns after a JSON
		// round-trip) must not grow a ".000000" suffix.
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return stringify(float64(s))
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func coerceTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case int64:
		return epochToTime(float64(t)), true
	case int:
		return epochToTime(float64(t)), true
	case float64:
		return epochToTime(t), true
	default:
		return time.Time{}, false
	}
}

// epochToTime treats values beyond the year-33658 second range as
// millisecond epochs.
func epochToTime(v float64) time.Time {
	if math.Abs(v) > 1e12 {
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Unix(int64(v), 0).UTC()
}
