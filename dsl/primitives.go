package dsl

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	sieve "github.com/sievelabs/sieve"
	"github.com/sievelabs/sieve/i18n"
)

// vd backs the format leaves (Email, URL). validator.Var is safe for
// concurrent use and caches compiled tag pipelines internally.
var vd = validator.New()

func typeIssue(expected string) error {
	data := map[string]string{"expected": expected}
	return sieve.Issues{{Code: sieve.CodeInvalidType, Message: i18n.T(sieve.CodeInvalidType, data), Params: map[string]any{"expected": expected}}}
}

func formatIssue(format string, cause error) error {
	data := map[string]string{"format": format}
	return sieve.Issues{{Code: sieve.CodeInvalidFormat, Message: i18n.T(sieve.CodeInvalidFormat, data), Cause: cause, Params: map[string]any{"format": format}}}
}

// String accepts string values as-is.
func String() FieldSpec {
	return Field(Map(func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, typeIssue("string")
		}
		return s, nil
	})).Hint("string")
}

// TrimmedString is String with surrounding whitespace removed.
func TrimmedString() FieldSpec {
	return Extend(String(), Transform(func(v any) any {
		return strings.TrimSpace(v.(string))
	})).Hint("string")
}

// Int accepts integers, coercing from strings and integral floats. The
// cleaned value is always int64.
func Int() FieldSpec {
	return Field(Map(func(v any) (any, error) {
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, typeIssue("integer")
			}
			return i, nil
		case float64:
			if n != float64(int64(n)) {
				return nil, typeIssue("integer")
			}
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err != nil {
				return nil, typeIssue("integer")
			}
			return i, nil
		}
		return nil, typeIssue("integer")
	})).Hint("integer")
}

// Float accepts numeric values; the cleaned value is always float64.
func Float() FieldSpec {
	return Field(Map(func(v any) (any, error) {
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, typeIssue("number")
			}
			return f, nil
		}
		return nil, typeIssue("number")
	})).Hint("number")
}

// Bool accepts boolean values only.
func Bool() FieldSpec {
	return Field(Map(func(v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, typeIssue("boolean")
		}
		return b, nil
	})).Hint("boolean")
}

// DateTime parses an RFC3339 string into time.Time. A time.Time input passes
// through unchanged.
func DateTime() FieldSpec {
	return Field(Map(func(v any) (any, error) {
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			ts, err := time.Parse(time.RFC3339, t)
			if err != nil {
				return nil, formatIssue("RFC3339 datetime", err)
			}
			return ts, nil
		}
		return nil, typeIssue("string")
	})).Hint("string")
}

// Regex is String constrained to match the given pattern. The pattern is a
// schema-definition input; a bad pattern panics at construction time.
func Regex(pattern string) FieldSpec {
	re := regexp.MustCompile(pattern)
	return Extend(String(), Map(func(v any) (any, error) {
		s := v.(string)
		if !re.MatchString(s) {
			data := map[string]string{"pattern": pattern}
			return nil, sieve.Issues{{Code: sieve.CodePattern, Message: i18n.T(sieve.CodePattern, data), Params: map[string]any{"pattern": pattern}}}
		}
		return s, nil
	})).Hint("string")
}

// Email is a trimmed string validated as an email address, capped at the
// 254-octet mailbox limit.
func Email() FieldSpec {
	return Extend(TrimmedString(), Map(func(v any) (any, error) {
		s := v.(string)
		if len(s) > 254 {
			data := map[string]string{"max": "254"}
			return nil, sieve.Issues{{Code: sieve.CodeTooLong, Message: i18n.T(sieve.CodeTooLong, data), Params: map[string]any{"max": 254, "got": len(s)}}}
		}
		if err := vd.Var(s, "email"); err != nil {
			return nil, formatIssue("email address", err)
		}
		return s, nil
	})).Hint("string")
}

// URL is a string validated as an absolute URL.
func URL() FieldSpec {
	return Extend(String(), Map(func(v any) (any, error) {
		s := v.(string)
		if err := vd.Var(s, "url"); err != nil {
			return nil, formatIssue("URL", err)
		}
		return s, nil
	})).Hint("string")
}

// UUID parses a string into a uuid.UUID, accepting the usual hex-and-dash
// and raw hex encodings.
func UUID() FieldSpec {
	return Extend(String(), Map(func(v any) (any, error) {
		id, err := uuid.Parse(v.(string))
		if err != nil {
			return nil, formatIssue("UUID", err)
		}
		return id, nil
	})).Hint("string")
}

// Enum is a string restricted to the given choices.
func Enum(choices ...string) FieldSpec {
	set := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		set[c] = struct{}{}
	}
	return Extend(String(), Map(func(v any) (any, error) {
		s := v.(string)
		if _, ok := set[s]; !ok {
			data := map[string]string{"choices": strings.Join(choices, ", ")}
			return nil, sieve.Issues{{Code: sieve.CodeInvalidEnum, Message: i18n.T(sieve.CodeInvalidEnum, data), Params: map[string]any{"choices": choices}}}
		}
		return s, nil
	})).Hint("string")
}

// List validates each element of a sequence with the inner field's chain.
// Element errors are collected across the whole list (not short-circuited)
// and attributed by index, e.g. tags.0. The inner chain's dependency and
// context requirements propagate to the outer field.
func List(inner FieldSpec) FieldSpec {
	st := Step{
		deps:      inner.DependsOn(),
		needsCtx:  inner.needsContext(),
		usesValue: true,
		run: func(sc StepCtx, v any) (any, error) {
			items, ok := v.([]any)
			if !ok {
				return nil, typeIssue("list")
			}
			out := make([]any, 0, len(items))
			var iss sieve.Issues
			for i, el := range items {
				cv, elIss, fatal := runChain(indexField(i), inner, el, sc)
				if fatal != nil {
					return nil, fatal
				}
				if len(elIss) > 0 {
					iss = sieve.AppendIssues(iss, elIss...)
					continue
				}
				out = append(out, cv)
			}
			if len(iss) > 0 {
				return nil, iss
			}
			return out, nil
		},
	}
	return Field(st).Hint("array")
}

// Nested cleans a sub-mapping with its own schema. The caller context and
// fail-fast intent are forwarded; sub-field errors are attributed with dotted
// segments under the parent field. Configuration errors in the sub-schema
// abort the whole pass.
func Nested(s sieve.Schema) FieldSpec {
	return Field(Step{
		usesValue: true,
		needsCtx:  false,
		run: func(sc StepCtx, v any) (any, error) {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, typeIssue("object")
			}
			sub, err := s.Clean(sc.Ctx, m, sieve.CleanOpt{Context: sc.Context})
			if err != nil {
				return nil, err
			}
			return sub, nil
		},
	}).Hint("object")
}
