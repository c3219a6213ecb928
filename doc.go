// Package sieve is a declarative data-validation and transformation engine.
//
// A schema is an ordered set of named fields, each carrying a chain of
// validator/transformer steps, a nullability policy, optional dependencies on
// the cleaned values of sibling fields, and the external input key(s) it
// accepts from. Cleaning a raw mapping against a schema yields either a fully
// validated result or a complete, field-attributed collection of issues;
// a partial mix of the two is never returned.
//
// The root package holds the contracts: the Issue/Issues error model, the
// Schema interface, input Sources (JSON via goccy/go-json, YAML), and typed
// binding with CleanInto. Schemas are declared with the dsl package:
//
//	upper := dsl.Extend(dsl.String(), dsl.Transform(func(v any) any {
//		return strings.ToUpper(v.(string))
//	}))
//	s := dsl.Object().
//		Field("a", dsl.String()).
//		Field("b", upper).
//		Field("ab", dsl.Field(dsl.WithDeps([]string{"a", "b"},
//			func(deps map[string]any, _ any) (any, error) {
//				return deps["a"].(string) + "::" + deps["b"].(string), nil
//			}))).
//		MustBuild()
//	out, err := s.Clean(ctx, map[string]any{"a": "x", "b": "y"})
//
// Validation failures are returned as Issues; defects in the schema
// definition itself (a dependency cycle, an undeclared dependency) are
// returned as *ConfigError and are never merged into the per-field list.
package sieve
