package ragflow

import (
	"strconv"
	"strings"
	"time"
)

// The remote service's payload shapes drift between releases: ids arrive as
// strings or numbers, timestamps as millisecond epochs or formatted strings,
// progress as a fraction or a percentage. Every extractor here is total:
// it returns the zero value plus ok=false instead of failing, so mapping
// never crashes on malformed upstream data.

// StringField extracts a string value. Non-string values count as absent.
func StringField(raw map[string]interface{}, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntField extracts an int from a number or numeric string.
func IntField(raw map[string]interface{}, key string) (int, bool) {
	f, ok := FloatField(raw, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// FloatField extracts a float64 from a number or numeric string.
func FloatField(raw map[string]interface{}, key string) (float64, bool) {
	v, ok := raw[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// StringSliceField extracts a string array, dropping elements of the wrong
// type instead of rejecting the whole array. An all-invalid array yields an
// empty slice with ok=true, which keeps "present but empty" distinguishable
// from "absent".
func StringSliceField(raw map[string]interface{}, key string) ([]string, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// FloatSliceField extracts a numeric array (embedding vectors), dropping
// non-numeric elements.
func FloatSliceField(raw map[string]interface{}, key string) ([]float32, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]float32, 0, len(arr))
	for _, item := range arr {
		if f, ok := toFloat(item); ok {
			out = append(out, float32(f))
		}
	}
	return out, true
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ConvertTimestamp turns a millisecond epoch number or a parseable date
// string into a second-level unix timestamp. Anything else yields 0, which
// downstream code must read as "unknown", not as a real date.
func ConvertTimestamp(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t) / 1000
	case int64:
		return t / 1000
	case int:
		return int64(t) / 1000
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.Unix()
			}
		}
		return 0
	default:
		return 0
	}
}

// TimeField extracts a timestamp field as *time.Time; unknown values map to
// nil rather than to the epoch.
func TimeField(raw map[string]interface{}, key string) *time.Time {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	ts := ConvertTimestamp(v)
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

// NormalizeProgress maps the remote progress value onto a 0-100 percentage.
// The remote reports a fraction in [0,1] in most versions but a percentage
// in some, so values above 1.0 pass through unchanged.
func NormalizeProgress(p float64) float64 {
	if p <= 1.0 {
		return p * 100
	}
	return p
}
