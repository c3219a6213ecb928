package dsl

import (
	"context"
	"sort"

	sieve "github.com/sievelabs/sieve"
	"github.com/sievelabs/sieve/i18n"
)

// objectSchema is the built, immutable form of an object declaration. A clean
// pass reads it and writes only per-invocation state, so concurrent Clean
// calls on one schema are safe without locking.
type objectSchema struct {
	names   []string // declaration order
	fields  map[string]FieldSpec
	unknown sieve.UnknownPolicy
}

var _ sieve.Schema = (*objectSchema)(nil)

func (o *objectSchema) FieldNames() []string {
	return append([]string(nil), o.names...)
}

// RequiredFields returns, in declaration order, the fields whose input key is
// mandatory. Derived fields (chains with no value-consuming step) never
// require their key and are excluded.
func (o *objectSchema) RequiredFields() []string {
	var out []string
	for _, n := range o.names {
		f := o.fields[n]
		if !f.optional && f.usesValue() {
			out = append(out, n)
		}
	}
	return out
}

// FieldHints returns the advisory type hints declared via FieldSpec.Hint,
// keyed by field name. Fields without a hint are absent.
func (o *objectSchema) FieldHints() map[string]string {
	out := make(map[string]string)
	for _, n := range o.names {
		if h := o.fields[n].hint; h != "" {
			out[n] = h
		}
	}
	return out
}

// UnknownPolicy returns the schema's policy for unrecognized input keys.
func (o *objectSchema) UnknownPolicy() sieve.UnknownPolicy {
	return o.unknown
}

func (o *objectSchema) Clean(ctx context.Context, data map[string]any, opts ...sieve.CleanOpt) (sieve.Cleaned, error) {
	var opt sieve.CleanOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.FailFast {
		ctx = sieve.WithFailFast(ctx, true)
	}
	failFast := sieve.IsFailFast(ctx)

	deps := make(map[string][]string, len(o.names))
	for _, n := range o.names {
		deps[n] = o.fields[n].DependsOn()
	}
	order, cerr := resolveOrder(o.names, deps)
	if cerr != nil {
		return nil, cerr
	}

	results := make(map[string]any, len(o.names))
	fieldIssues := make(map[string]sieve.Issues)
	// unmet covers both errored fields and fields skipped because a
	// dependency errored; dependents of either are skipped without a
	// duplicate report.
	unmet := make(map[string]bool)

eval:
	for _, name := range order {
		f := o.fields[name]
		for _, d := range deps[name] {
			if unmet[d] {
				unmet[name] = true
				continue eval
			}
		}

		raw, present := o.lookup(name, f, data)
		sc := StepCtx{Ctx: ctx, Context: opt.Context, Deps: o.depValues(deps[name], results)}
		v, iss, fatal := evaluate(name, f, raw, present, sc)
		if fatal != nil {
			return nil, fatal
		}
		if len(iss) > 0 {
			fieldIssues[name] = iss
			unmet[name] = true
			if failFast {
				break
			}
			continue
		}
		results[name] = v
	}

	var all sieve.Issues
	// report in declaration order regardless of evaluation order
	for _, name := range o.names {
		if iss, ok := fieldIssues[name]; ok {
			all = sieve.AppendIssues(all, iss...)
		}
	}
	if !(failFast && len(all) > 0) {
		uks := o.unknownIssues(data)
		if failFast && len(uks) > 1 {
			uks = uks[:1]
		}
		all = sieve.AppendIssues(all, uks...)
	}
	if len(all) > 0 {
		return nil, all
	}

	out := make(sieve.Cleaned, len(results))
	for name, v := range results {
		if sieve.IsOmitted(v) {
			continue
		}
		out[name] = v
	}
	return out, nil
}

// lookup reads the raw value through the field's accepted keys, first present
// key wins. An explicit null counts as present.
func (o *objectSchema) lookup(name string, f FieldSpec, data map[string]any) (any, bool) {
	accepts := f.accepts
	if len(accepts) == 0 {
		accepts = []string{name}
	}
	for _, k := range accepts {
		if v, ok := data[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func (o *objectSchema) depValues(names []string, results map[string]any) map[string]any {
	if len(names) == 0 {
		return nil
	}
	dv := make(map[string]any, len(names))
	for _, d := range names {
		dv[d] = results[d]
	}
	return dv
}

// unknownIssues flags input keys no field accepts, as schema-level entries in
// key-sorted order. Under UnknownIgnore it reports nothing.
func (o *objectSchema) unknownIssues(data map[string]any) sieve.Issues {
	if o.unknown != sieve.UnknownStrict {
		return nil
	}
	accepted := make(map[string]struct{}, len(o.names))
	for _, n := range o.names {
		accepted[n] = struct{}{}
		for _, k := range o.fields[n].accepts {
			accepted[k] = struct{}{}
		}
	}
	var uks []string
	for k := range data {
		if _, ok := accepted[k]; !ok {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss sieve.Issues
	for _, k := range uks {
		md := map[string]string{"key": k}
		iss = sieve.AppendIssues(iss, sieve.Issue{Code: sieve.CodeUnknownKey, Message: i18n.T(sieve.CodeUnknownKey, md), Params: map[string]any{"key": k}})
	}
	return iss
}

func (o *objectSchema) Serialize(values sieve.Cleaned) map[string]any {
	out := make(map[string]any, len(values))
	for _, name := range o.names {
		v, ok := values[name]
		if !ok || sieve.IsOmitted(v) {
			continue
		}
		f := o.fields[name]
		key := name
		if f.serializeTo != "" {
			key = f.serializeTo
		}
		if f.serializeFn != nil {
			v = f.serializeFn(v)
			if sieve.IsOmitted(v) {
				continue
			}
		}
		out[key] = v
	}
	return out
}
