package dsl

import (
	"reflect"

	"github.com/sievelabs/sieve/codec"
)

// Coded builds a field around a wire/domain codec: the chain decodes the wire
// value into its domain form, and Serialize encodes it back. An input that is
// not of the codec's wire type is an invalid_type issue; Encode failures fall
// back to serializing the domain value as-is.
func Coded[W, D any](c codec.Codec[W, D]) FieldSpec {
	wname := reflect.TypeOf((*W)(nil)).Elem().String()
	f := Field(Map(func(v any) (any, error) {
		w, ok := v.(W)
		if !ok {
			return nil, typeIssue(wname)
		}
		return c.Decode(w)
	}))
	return f.SerializeFunc(func(v any) any {
		d, ok := v.(D)
		if !ok {
			return v
		}
		w, err := c.Encode(d)
		if err != nil {
			return v
		}
		return w
	})
}
