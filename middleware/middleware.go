// Package middleware adapts schema cleaning to HTTP JSON boundaries.
package middleware

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	sieve "github.com/sievelabs/sieve"
)

type ctxKeyCleaned struct{}

// ContextWithCleaned attaches a cleaned result to the context.
func ContextWithCleaned(ctx context.Context, m sieve.Cleaned) context.Context {
	return context.WithValue(ctx, ctxKeyCleaned{}, m)
}

// CleanedFromContext retrieves the cleaned result stored by the JSON
// middleware for the current request.
func CleanedFromContext(ctx context.Context) (sieve.Cleaned, bool) {
	m, ok := ctx.Value(ctxKeyCleaned{}).(sieve.Cleaned)
	return m, ok
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues sieve.Issues) map[string]any {
	return map[string]any{"issues": issues}
}

// JSON returns middleware that decodes the request body against s and stores
// the cleaned result in the request context. Malformed bodies answer 400,
// validation failures 422 with an ErrorPayload, schema configuration defects
// 500.
func JSON(s sieve.Schema, opts ...sieve.CleanOpt) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out, err := sieve.CleanFrom(r.Context(), s, sieve.JSONReader(r.Body), opts...)
			if err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithCleaned(r.Context(), out)))
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	iss, ok := sieve.AsIssues(err)
	if !ok {
		http.Error(w, "schema configuration error", http.StatusInternalServerError)
		return
	}
	status := http.StatusUnprocessableEntity
	for _, it := range iss {
		// decode-level failures precede validation and map to a client syntax error
		if it.Field == "" && (it.Code == sieve.CodeParseError || it.Code == sieve.CodeInvalidType) {
			status = http.StatusBadRequest
			break
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorPayload(iss))
}
