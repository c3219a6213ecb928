package dsl

import (
	"context"

	sieve "github.com/sievelabs/sieve"
	"github.com/sievelabs/sieve/i18n"
)

// StepCtx carries the per-invocation inputs a validator step may consult.
type StepCtx struct {
	// Ctx is the Go context of the clean pass.
	Ctx context.Context
	// Context is the opaque caller-supplied value from CleanOpt.Context. The
	// engine forwards it verbatim and never inspects it.
	Context any
	// Deps maps declared dependency names to their cleaned values. A
	// dependency that was optional and omitted appears as sieve.Omitted.
	Deps map[string]any
}

// Step is one link of a field's validator chain. Steps are created through
// the constructors below; the zero value is not usable.
type Step struct {
	deps     []string
	needsCtx bool
	// usesValue marks steps that consume the raw/chained value. A chain with
	// no value-using steps is a derived field: it runs even when the input
	// key is absent, receiving sieve.Omitted as the incoming value.
	usesValue bool
	run       func(sc StepCtx, v any) (any, error)
}

// Transform adds a pure value transform.
func Transform(fn func(v any) any) Step {
	return Step{usesValue: true, run: func(_ StepCtx, v any) (any, error) { return fn(v), nil }}
}

// Map adds a fallible transform. Returning an error halts the chain; the
// error becomes the field's issue.
func Map(fn func(v any) (any, error)) Step {
	return Step{usesValue: true, run: func(_ StepCtx, v any) (any, error) { return fn(v) }}
}

// Check adds a fallible predicate; the value passes through unchanged.
func Check(fn func(v any) error) Step {
	return Step{usesValue: true, run: func(_ StepCtx, v any) (any, error) {
		if err := fn(v); err != nil {
			return nil, err
		}
		return v, nil
	}}
}

// WithContext adds a step that receives the opaque caller context. Evaluating
// a chain containing such a step without supplying CleanOpt.Context is a
// configuration error, not a validation error.
func WithContext(fn func(cc any, v any) (any, error)) Step {
	return Step{usesValue: true, needsCtx: true, run: func(sc StepCtx, v any) (any, error) {
		return fn(sc.Context, v)
	}}
}

// WithDeps adds a step computed from the cleaned values of sibling fields.
// It declares the field's dependencies; the dependency resolver guarantees
// the named fields are cleaned first. The incoming value is forwarded as v
// (sieve.Omitted when the field's own key was absent), so the step does not
// by itself make the field's presence in input mandatory.
func WithDeps(names []string, fn func(deps map[string]any, v any) (any, error)) Step {
	return Step{deps: names, run: func(sc StepCtx, v any) (any, error) {
		return fn(sc.Deps, v)
	}}
}

// FieldSpec is an immutable declaration of one schema attribute: its chain of
// validator/transformer steps, nullability policy, accepted input keys,
// default, and serialization settings. All builder-style methods return a
// modified copy; shared parents are never mutated.
type FieldSpec struct {
	steps        []Step
	accepts      []string
	optional     bool
	allowNull    bool
	defaultVal   any
	hasDefault   bool
	cleanDefault bool
	serializeTo  string
	serializeFn  func(any) any
	hint         string
}

// Field declares a field from a chain of steps. Fields default to
// Required-NonNull, accepting input from their schema name only.
func Field(steps ...Step) FieldSpec {
	return FieldSpec{steps: steps}
}

// Extend builds a new field from a parent's validator chain with extra steps
// appended. Only the chain is inherited; nullability, accepts, default and
// serialization settings start from their defaults.
func Extend(parent FieldSpec, extra ...Step) FieldSpec {
	return Compose(parent, Field(extra...))
}

// Compose concatenates the validator chains of several parents, in order.
// Parents' steps run before later parents' steps; no parent is mutated.
func Compose(parents ...FieldSpec) FieldSpec {
	var steps []Step
	for _, p := range parents {
		steps = append(steps, p.steps...)
	}
	return FieldSpec{steps: steps}
}

// Accepts sets the external input keys this field reads from, in precedence
// order. Defaults to the field's schema name.
func (f FieldSpec) Accepts(keys ...string) FieldSpec {
	f.accepts = append([]string(nil), keys...)
	return f
}

// Optional permits the input key to be absent.
func (f FieldSpec) Optional() FieldSpec {
	f.optional = true
	return f
}

// Required makes the input key mandatory again (the default).
func (f FieldSpec) Required() FieldSpec {
	f.optional = false
	return f
}

// Nullable permits an explicit null value. Null skips the validator chain.
func (f FieldSpec) Nullable() FieldSpec {
	f.allowNull = true
	return f
}

// Default sets the value substituted when the key is omitted. The chain is
// skipped for the default unless CleanDefault is set.
func (f FieldSpec) Default(v any) FieldSpec {
	f.defaultVal = v
	f.hasDefault = true
	f.optional = true
	return f
}

// CleanDefault runs the validator chain on the substituted default instead of
// storing it verbatim.
func (f FieldSpec) CleanDefault() FieldSpec {
	f.cleanDefault = true
	return f
}

// SerializeTo overrides the key name used by Schema.Serialize.
func (f FieldSpec) SerializeTo(name string) FieldSpec {
	f.serializeTo = name
	return f
}

// SerializeFunc sets the transform applied by Schema.Serialize. Defaults to a
// passthrough.
func (f FieldSpec) SerializeFunc(fn func(any) any) FieldSpec {
	f.serializeFn = fn
	return f
}

// Hint records the JSON type name ("string", "integer", "object", ...) this
// field produces. It is advisory metadata consumed by the jsonschema export;
// cleaning never reads it.
func (f FieldSpec) Hint(t string) FieldSpec {
	f.hint = t
	return f
}

// DependsOn returns the union of the dependencies declared by the chain's
// steps, first-mention order, deduplicated.
func (f FieldSpec) DependsOn() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, st := range f.steps {
		for _, d := range st.deps {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

func (f FieldSpec) needsContext() bool {
	for _, st := range f.steps {
		if st.needsCtx {
			return true
		}
	}
	return false
}

func (f FieldSpec) usesValue() bool {
	for _, st := range f.steps {
		if st.usesValue {
			return true
		}
	}
	return false
}

// ---- chain refinement shorthands ----

// Min appends an inclusive numeric lower bound.
func (f FieldSpec) Min(n float64) FieldSpec {
	f.steps = appendStep(f.steps, Check(func(v any) error { return minCheck(v, n) }))
	return f
}

// Max appends an inclusive numeric upper bound.
func (f FieldSpec) Max(n float64) FieldSpec {
	f.steps = appendStep(f.steps, Check(func(v any) error { return maxCheck(v, n) }))
	return f
}

// MinLen appends a minimum length check for strings and slices.
func (f FieldSpec) MinLen(n int) FieldSpec {
	f.steps = appendStep(f.steps, Check(func(v any) error {
		if l, ok := lengthOf(v); ok && l < n {
			data := map[string]string{"min": itoa(n)}
			return sieve.Issues{{Code: sieve.CodeTooShort, Message: i18n.T(sieve.CodeTooShort, data), Params: map[string]any{"min": n, "got": l}}}
		}
		return nil
	}))
	return f
}

// MaxLen appends a maximum length check for strings and slices.
func (f FieldSpec) MaxLen(n int) FieldSpec {
	f.steps = appendStep(f.steps, Check(func(v any) error {
		if l, ok := lengthOf(v); ok && l > n {
			data := map[string]string{"max": itoa(n)}
			return sieve.Issues{{Code: sieve.CodeTooLong, Message: i18n.T(sieve.CodeTooLong, data), Params: map[string]any{"max": n, "got": l}}}
		}
		return nil
	}))
	return f
}

// appendStep copies the chain so shared parents are never mutated through an
// aliased backing array.
func appendStep(steps []Step, st Step) []Step {
	out := make([]Step, 0, len(steps)+1)
	out = append(out, steps...)
	return append(out, st)
}

func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return len([]rune(t)), true
	case []any:
		return len(t), true
	}
	return 0, false
}
