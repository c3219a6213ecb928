package sieve

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source decodes an external payload into the raw input mapping consumed by
// Schema.Clean. Decoding is lazy; errors surface as Issues with a parse_error
// code so callers handle malformed input and invalid input uniformly.
type Source interface {
	Decode() (map[string]any, error)
}

// JSONBytes wraps a JSON document. Numbers decode as json.Number so leaf
// fields can coerce without float64 precision loss.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader wraps a JSON stream.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

type jsonSource struct{ r io.Reader }

func (s jsonSource) Decode() (map[string]any, error) {
	dec := j.NewDecoder(s.r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{{Code: CodeInvalidType, Message: "expected a JSON object"}}
	}
	return m, nil
}

// YAMLBytes wraps a YAML document (config-style payloads).
func YAMLBytes(b []byte) Source { return yamlSource{b: b} }

type yamlSource struct{ b []byte }

func (s yamlSource) Decode() (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(s.b, &m); err != nil {
		return nil, Issues{{Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	if m == nil {
		return nil, Issues{{Code: CodeInvalidType, Message: "expected a YAML mapping"}}
	}
	return m, nil
}
