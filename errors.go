package sieve

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeNullNotAllowed = "null_not_allowed"
	CodeUnknownKey     = "unknown_key"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodePattern        = "pattern"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidFormat  = "invalid_format"
	CodeParseError     = "parse_error"
	CodeCustom         = "custom"
)

// Issue represents a single field-attributed validation entry.
// Field is the schema field name; nested and list entries use dotted segments
// (for example: items.2 or address.city). An empty Field denotes a
// schema-level entry that is not attributed to any one field.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message,omitempty"`
	Cause   error  `json:"-"` // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Field == "" {
			b.WriteString(it.Code)
			continue
		}
		// e.g. required at email
		fmt.Fprintf(b, "%s at %s", it.Code, it.Field)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ByField derives the grouped view from the flat list. Schema-level entries
// (empty Field) land under the empty key. The flat list remains the single
// source of truth; this allocates a fresh map on every call.
func (iss Issues) ByField() map[string][]Issue {
	out := make(map[string][]Issue, len(iss))
	for _, it := range iss {
		out[it.Field] = append(out[it.Field], it)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ConfigError reports a defect in the schema definition itself: a dependency
// cycle, a dependency on an undeclared field, a duplicate field name, or a
// context-requiring chain evaluated without a context. It signals a
// programmer error and is never merged into the per-field Issues of a clean
// pass.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "sieve: schema configuration: " + e.Msg }

// AsConfigError extracts a *ConfigError from an error using errors.As.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
