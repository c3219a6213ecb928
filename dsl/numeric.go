package dsl

import (
	"encoding/json"
	"reflect"
	"strconv"

	sieve "github.com/sievelabs/sieve"
	"github.com/sievelabs/sieve/i18n"
)

func minCheck(v any, min float64) error {
	f, ok := asFloat(v)
	if !ok || f >= min {
		return nil
	}
	data := map[string]string{"min": ftoa(min)}
	return sieve.Issues{{Code: sieve.CodeTooSmall, Message: i18n.T(sieve.CodeTooSmall, data), Params: map[string]any{"min": min, "got": v}}}
}

func maxCheck(v any, max float64) error {
	f, ok := asFloat(v)
	if !ok || f <= max {
		return nil
	}
	data := map[string]string{"max": ftoa(max)}
	return sieve.Issues{{Code: sieve.CodeTooBig, Message: i18n.T(sieve.CodeTooBig, data), Params: map[string]any{"max": max, "got": v}}}
}

// asFloat widens supported numeric representations for bound checks.
// Non-numeric values are ignored here; type errors are produced elsewhere.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func itoa(n int) string { return strconv.Itoa(n) }
