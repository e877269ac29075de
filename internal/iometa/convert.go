package iometa

import (
	"strconv"
)

// The service delivers JSON with inconsistent scalar types: numbers arrive
// as float64, but identifiers and flags are sometimes quoted strings.
// These helpers coerce tabular values without guessing beyond that.

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case string:
		i, err := strconv.Atoi(x)
		return i, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// toBoolPtr converts the service's 0/1/null flag encoding. nil means the
// flag was not reported.
func toBoolPtr(v any) *bool {
	if v == nil {
		return nil
	}
	var b bool
	switch x := v.(type) {
	case bool:
		b = x
	case float64:
		b = x == 1
	case string:
		if x == "" {
			return nil
		}
		b = x == "1" || x == "true"
	default:
		return nil
	}
	return &b
}

func toBool(v any) bool {
	b := toBoolPtr(v)
	return b != nil && *b
}
