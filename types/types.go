// Package types answers shape questions about loosely typed values and coerces
// them into the handful of shapes the validator registry works with: strings,
// string-keyed mappings, sequences, pattern matchers and handler functions.
//
// Every function is deterministic and free of side effects.
package types

import (
	"fmt"
	"math"
	"reflect"
)

// IsString reports whether v is a string (or a type whose underlying type is string).
func IsString(v any) bool {
	if v == nil {
		return false
	}

	if _, ok := v.(string); ok {
		return true
	}

	return reflect.TypeOf(v).Kind() == reflect.String
}

// NotString is the negation of IsString.
func NotString(v any) bool {
	return !IsString(v)
}

// IsObject reports whether v is a plain mapping: a non-nil map with string keys.
func IsObject(v any) bool {
	if IsNilish(v) {
		return false
	}

	t := reflect.TypeOf(v)

	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// NotObject is the negation of IsObject.
func NotObject(v any) bool {
	return !IsObject(v)
}

// IsArray reports whether v is a sequence: a slice or an array. Byte slices
// are treated as text, not as sequences.
func IsArray(v any) bool {
	if v == nil {
		return false
	}

	if _, ok := v.([]byte); ok {
		return false
	}

	switch reflect.TypeOf(v).Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// NotArray is the negation of IsArray.
func NotArray(v any) bool {
	return !IsArray(v)
}

// Truthy reports whether v would count as true in a loose boolean context.
// nil, false, numeric zero, NaN, the empty string and nil pointers, maps,
// slices, funcs and channels are falsy; everything else is truthy.
func Truthy(v any) bool {
	if IsNilish(v) {
		return false
	}

	val := reflect.ValueOf(v)

	switch val.Kind() { //nolint:exhaustive
	case reflect.Bool:
		return val.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return val.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := val.Float()

		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return val.Len() > 0
	default:
		return true
	}
}

// Textual returns the text of v when v is a string, a byte slice or a
// non-nil fmt.Stringer.
func Textual(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case fmt.Stringer:
		if IsNilish(t) {
			return "", false
		}

		return t.String(), true
	}

	if IsString(v) {
		return reflect.ValueOf(v).String(), true
	}

	return "", false
}
