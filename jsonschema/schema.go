// Package jsonschema exports a schema declaration as a minimal JSON Schema
// document. Field chains are opaque functions, so per-field detail is limited
// to the advisory type hints the dsl primitives declare; structural facts
// (field set, required keys, unknown-key policy) are exported faithfully.
package jsonschema

import (
	sieve "github.com/sievelabs/sieve"
)

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
}

// introspector is the optional surface a schema implementation exposes for
// export. The dsl object schema implements it.
type introspector interface {
	sieve.Schema
	RequiredFields() []string
	FieldHints() map[string]string
	UnknownPolicy() sieve.UnknownPolicy
}

// FromSchema renders s as a JSON Schema object. Schemas that expose no
// introspection surface export as a bare object.
func FromSchema(s sieve.Schema) *Schema {
	out := &Schema{Type: "object"}
	in, ok := s.(introspector)
	if !ok {
		return out
	}
	hints := in.FieldHints()
	props := make(map[string]*Schema)
	for _, n := range in.FieldNames() {
		p := &Schema{}
		if h, ok := hints[n]; ok {
			p.Type = h
		}
		props[n] = p
	}
	if len(props) > 0 {
		out.Properties = props
	}
	out.Required = in.RequiredFields()
	if in.UnknownPolicy() == sieve.UnknownStrict {
		out.AdditionalProperties = false
	}
	return out
}
