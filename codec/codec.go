// Package codec provides bidirectional wire/domain conversions usable as
// field chains via dsl.Coded. Decode maps a wire value to its domain form
// during cleaning; Encode maps it back during serialization.
package codec

import (
	"time"

	sieve "github.com/sievelabs/sieve"
	"github.com/sievelabs/sieve/i18n"
)

// Codec converts between a wire representation W and a domain value D.
// Implementations must be stateless; one codec value may serve concurrent
// clean passes.
type Codec[W, D any] interface {
	Decode(w W) (D, error)
	Encode(d D) (W, error)
}

// Identity returns a Codec[T,T] whose both directions are passthroughs.
func Identity[T any]() Codec[T, T] { return identity[T]{} }

type identity[T any] struct{}

func (identity[T]) Decode(v T) (T, error) { return v, nil }
func (identity[T]) Encode(v T) (T, error) { return v, nil }

// TimeRFC3339 converts between RFC3339 strings and time.Time. Encode renders
// the canonical UTC form.
func TimeRFC3339() Codec[string, time.Time] { return rfc3339{} }

type rfc3339 struct{}

func (rfc3339) Decode(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		data := map[string]string{"format": "RFC3339 datetime"}
		return time.Time{}, sieve.Issues{{
			Code:    sieve.CodeInvalidFormat,
			Message: i18n.T(sieve.CodeInvalidFormat, data),
			Cause:   err,
			Params:  map[string]any{"format": "RFC3339 datetime"},
		}}
	}
	return t, nil
}

func (rfc3339) Encode(t time.Time) (string, error) {
	return t.UTC().Format(time.RFC3339Nano), nil
}
