package sieve

import "context"

// Cleaned is the success result of a clean pass: field name -> cleaned value.
// Optional fields that were omitted (and carry no default) are absent.
type Cleaned map[string]any

// Schema is a validatable shape: an ordered set of fields plus their
// interdependencies. Implementations are built once (see the dsl package) and
// are safe for concurrent Clean calls; a clean pass reads the definition and
// writes only per-invocation state.
type Schema interface {
	// Clean runs a full validation pass over raw input. It returns either a
	// complete Cleaned result or a complete error: Issues when input data was
	// rejected, *ConfigError when the schema definition itself is defective
	// (dependency cycle, undeclared dependency). Never a partial mix.
	Clean(ctx context.Context, data map[string]any, opts ...CleanOpt) (Cleaned, error)

	// Serialize renders cleaned values back into an external mapping,
	// honoring per-field rename and transform settings. Omitted values are
	// dropped.
	Serialize(values Cleaned) map[string]any

	// FieldNames returns the field names in declaration order.
	FieldNames() []string
}

// Clean is a thin wrapper around Schema.Clean for symmetry with CleanFrom.
func Clean(ctx context.Context, s Schema, data map[string]any, opts ...CleanOpt) (Cleaned, error) {
	if s == nil {
		return nil, &ConfigError{Msg: "nil schema"}
	}
	return s.Clean(ctx, data, opts...)
}

// CleanFrom decodes raw bytes/stream via the Source and cleans the result.
func CleanFrom(ctx context.Context, s Schema, src Source, opts ...CleanOpt) (Cleaned, error) {
	if s == nil {
		return nil, &ConfigError{Msg: "nil schema"}
	}
	data, err := src.Decode()
	if err != nil {
		return nil, err
	}
	return s.Clean(ctx, data, opts...)
}

// ---- Clean-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast cleaning behavior.
// It is set by Schema.Clean based on CleanOpt and consumed by nested schemas.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current clean pass should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
