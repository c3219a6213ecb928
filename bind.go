package sieve

import (
	"context"
	"reflect"
)

// CleanInto cleans data against s and assembles the result into struct type T
// using key resolution (see ResolveStructKey). Fields of T with no matching
// schema field keep their zero value; omitted optional fields likewise.
func CleanInto[T any](ctx context.Context, s Schema, data map[string]any, opts ...CleanOpt) (T, error) {
	var zero T
	m, err := Clean(ctx, s, data, opts...)
	if err != nil {
		return zero, err
	}
	return bindStruct[T](m)
}

// CleanFromInto is CleanInto over a Source.
func CleanFromInto[T any](ctx context.Context, s Schema, src Source, opts ...CleanOpt) (T, error) {
	var zero T
	m, err := CleanFrom(ctx, s, src, opts...)
	if err != nil {
		return zero, err
	}
	return bindStruct[T](m)
}

func bindStruct[T any](m Cleaned) (T, error) {
	var zero T
	rt := reflect.TypeOf(zero)
	isPtr := rt != nil && rt.Kind() == reflect.Pointer
	if isPtr {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return zero, &ConfigError{Msg: "CleanInto requires struct T"}
	}
	rv := reflect.New(rt).Elem()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" || key == "" {
			continue
		}
		val, ok := m[key]
		if !ok {
			continue
		}
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}
		// Gracefully handle nulls for nillable fields
		if val == nil {
			switch fv.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
				fv.Set(reflect.Zero(fv.Type()))
			default:
				// leave zero value for non-nillable fields
			}
			continue
		}
		vv := reflect.ValueOf(val)
		if vv.Type().AssignableTo(fv.Type()) {
			fv.Set(vv)
		} else if vv.Type().ConvertibleTo(fv.Type()) {
			fv.Set(vv.Convert(fv.Type()))
		} else {
			return zero, Issues{{Field: key, Code: CodeInvalidType, Message: "field type mismatch"}}
		}
	}
	iv := rv.Interface()
	if isPtr {
		iv = rv.Addr().Interface()
	}
	out, ok := iv.(T)
	if !ok {
		return zero, &ConfigError{Msg: "CleanInto requires struct T"}
	}
	return out, nil
}
