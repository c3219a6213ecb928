// Package rules provides cross-field presence rules expressed as derived
// fields. A rule is registered under its own field name; it depends on the
// fields it constrains, runs after them, and contributes nothing to the
// cleaned result. Rule violations are attributed to the rule's field name.
//
// The constrained fields should be declared Optional; an explicit null that
// the field allows counts as provided. A rule is skipped when one of its
// fields failed its own validation, so it never piles onto a field error.
package rules

import (
	"strings"

	sieve "github.com/sievelabs/sieve"
	g "github.com/sievelabs/sieve/dsl"
)

// RequiredTogether requires all-or-none: either every named field is provided
// or none is.
func RequiredTogether(fields ...string) g.FieldSpec {
	return rule(fields, func(set []string) *sieve.Issue {
		if len(set) == 0 || len(set) == len(fields) {
			return nil
		}
		return violation("fields "+list(fields)+" must be provided together", fields, set)
	})
}

// MutuallyExclusive permits at most one of the named fields.
func MutuallyExclusive(fields ...string) g.FieldSpec {
	return rule(fields, func(set []string) *sieve.Issue {
		if len(set) <= 1 {
			return nil
		}
		return violation("fields "+list(fields)+" are mutually exclusive", fields, set)
	})
}

// AtLeastOne requires that one or more of the named fields is provided.
func AtLeastOne(fields ...string) g.FieldSpec {
	return rule(fields, func(set []string) *sieve.Issue {
		if len(set) >= 1 {
			return nil
		}
		return violation("at least one of "+list(fields)+" must be provided", fields, set)
	})
}

// ExactlyOne requires that precisely one of the named fields is provided.
func ExactlyOne(fields ...string) g.FieldSpec {
	return rule(fields, func(set []string) *sieve.Issue {
		if len(set) == 1 {
			return nil
		}
		return violation("exactly one of "+list(fields)+" must be provided", fields, set)
	})
}

func rule(fields []string, check func(set []string) *sieve.Issue) g.FieldSpec {
	return g.Field(g.WithDeps(fields, func(deps map[string]any, _ any) (any, error) {
		var set []string
		for _, f := range fields {
			if v, ok := deps[f]; ok && !sieve.IsOmitted(v) {
				set = append(set, f)
			}
		}
		if it := check(set); it != nil {
			return nil, sieve.Issues{*it}
		}
		return sieve.Omitted, nil
	}))
}

func violation(msg string, fields, set []string) *sieve.Issue {
	return &sieve.Issue{
		Code:    sieve.CodeCustom,
		Message: msg,
		Params:  map[string]any{"fields": fields, "provided": set},
	}
}

func list(fields []string) string { return strings.Join(fields, ", ") }
