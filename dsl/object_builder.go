package dsl

import (
	sieve "github.com/sievelabs/sieve"
)

// ObjectBuilder declares an object schema field by field. Declaration order
// is preserved: it is the tie-break for evaluation order and the order of the
// error report.
type ObjectBuilder struct {
	names   []string
	fields  map[string]FieldSpec
	unknown sieve.UnknownPolicy
	dups    []string
}

// Object creates a new object builder with safe defaults (UnknownIgnore, the
// policy of the original engine; switch with UnknownStrict).
func Object() *ObjectBuilder {
	return &ObjectBuilder{fields: map[string]FieldSpec{}}
}

// Field registers a field under its schema name. Registering the same name
// twice is a configuration error reported by Build.
func (b *ObjectBuilder) Field(name string, f FieldSpec) *ObjectBuilder {
	if _, ok := b.fields[name]; ok {
		b.dups = append(b.dups, name)
		return b
	}
	b.names = append(b.names, name)
	b.fields[name] = f
	return b
}

// UnknownStrict flags unrecognized input keys with a schema-level issue.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder {
	b.unknown = sieve.UnknownStrict
	return b
}

// UnknownIgnore silently drops unrecognized input keys (the default).
func (b *ObjectBuilder) UnknownIgnore() *ObjectBuilder {
	b.unknown = sieve.UnknownIgnore
	return b
}

// Build validates the declaration and returns the immutable Schema. Dependency
// cycles are deliberately not checked here: a schema with a cycle can be
// defined, and every Clean of it fails with a *sieve.ConfigError.
func (b *ObjectBuilder) Build() (sieve.Schema, error) {
	if len(b.dups) > 0 {
		return nil, &sieve.ConfigError{Msg: "duplicate field name: " + b.dups[0]}
	}
	names := append([]string(nil), b.names...)
	fields := make(map[string]FieldSpec, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	return &objectSchema{names: names, fields: fields, unknown: b.unknown}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() sieve.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
