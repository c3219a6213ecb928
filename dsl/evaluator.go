package dsl

import (
	"strconv"

	sieve "github.com/sievelabs/sieve"
	"github.com/sievelabs/sieve/i18n"
)

// evaluate runs one field's validator chain against a raw value. It returns
// the cleaned value (possibly sieve.Omitted), the field-attributed issues, or
// a fatal configuration error. It never mutates shared state; sc is built
// fresh by the cleaner for every field.
func evaluate(name string, f FieldSpec, raw any, present bool, sc StepCtx) (any, sieve.Issues, error) {
	// Nullability policy applies only when some step consumes the value; a
	// chain of pure derivation steps runs even on omission, receiving
	// sieve.Omitted as its incoming value.
	if (!present || raw == nil) && f.usesValue() {
		if present && raw == nil {
			if f.allowNull {
				return nil, nil, nil
			}
			return nil, sieve.Issues{{Field: name, Code: sieve.CodeNullNotAllowed, Message: i18n.T(sieve.CodeNullNotAllowed, nil)}}, nil
		}
		// key absent
		if f.hasDefault {
			if f.cleanDefault {
				return runChain(name, f, f.defaultVal, sc)
			}
			return f.defaultVal, nil, nil
		}
		if !f.optional {
			return nil, sieve.Issues{{Field: name, Code: sieve.CodeRequired, Message: i18n.T(sieve.CodeRequired, nil)}}, nil
		}
		return sieve.Omitted, nil, nil
	}

	v := raw
	if !present {
		v = sieve.Omitted
	}
	return runChain(name, f, v, sc)
}

func runChain(name string, f FieldSpec, v any, sc StepCtx) (any, sieve.Issues, error) {
	if f.needsContext() && sc.Context == nil {
		return nil, nil, &sieve.ConfigError{Msg: "context is required for evaluating field " + name}
	}
	cur := v
	for _, st := range f.steps {
		next, err := st.run(sc, cur)
		if err != nil {
			if _, fatal := sieve.AsConfigError(err); fatal {
				return nil, nil, err
			}
			return nil, attributeIssues(name, err), nil
		}
		cur = next
	}
	return cur, nil, nil
}

// attributeIssues rebases step errors under the field name. Child issues that
// already carry segments (list elements, nested schemas) are prefixed with
// dotted notation, e.g. items.2 or address.city.
func attributeIssues(name string, err error) sieve.Issues {
	if iss, ok := sieve.AsIssues(err); ok {
		out := make(sieve.Issues, 0, len(iss))
		for _, it := range iss {
			f := name
			if it.Field != "" {
				f = name + "." + it.Field
			}
			out = append(out, sieve.Issue{Field: f, Code: it.Code, Message: it.Message, Cause: it.Cause, Params: it.Params})
		}
		return out
	}
	return sieve.Issues{{Field: name, Code: sieve.CodeCustom, Message: err.Error(), Cause: err}}
}

// indexField renders a list element segment for error attribution.
func indexField(i int) string { return strconv.Itoa(i) }
