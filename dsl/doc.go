// Package dsl declares sieve schemas.
//
// A schema is built field by field:
//
//	s := dsl.Object().
//		Field("email", dsl.Email()).
//		Field("score", dsl.Int().Min(0).Max(100)).
//		Field("note", dsl.String().Optional().Nullable()).
//		MustBuild()
//
// Each field carries a chain of steps (Transform, Map, Check, WithContext,
// WithDeps) run in order; the first error halts the chain and becomes the
// field's issue. Chains compose: Extend and Compose concatenate parent chains
// without mutating them, so a reusable base field can be specialized freely.
//
// Fields may depend on the cleaned values of sibling fields via WithDeps. The
// cleaner orders evaluation so dependencies are cleaned first (declaration
// order breaks ties), skips dependents whose dependencies failed, and reports
// all issues in declaration order. A chain consisting only of derivation
// steps runs even when the field's key is absent from input.
package dsl
