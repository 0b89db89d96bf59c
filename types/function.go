package types

import "reflect"

// ForceFunction coerces v into a function of type F. v is returned when it
// already is an F, or when it is a function whose type converts to F (an
// unnamed func(error) converts to a named handler type, for example).
// Nil functions and anything else yield fallback.
//
// F is expected to be a func type; other types simply round-trip through the
// type assertion.
func ForceFunction[F any](v any, fallback F) F {
	if IsNilish(v) {
		return fallback
	}

	if f, ok := v.(F); ok {
		return f
	}

	target := reflect.TypeFor[F]()
	val := reflect.ValueOf(v)

	if target.Kind() != reflect.Func || val.Kind() != reflect.Func {
		return fallback
	}

	if !val.Type().ConvertibleTo(target) {
		return fallback
	}

	f, ok := val.Convert(target).Interface().(F)
	if !ok {
		return fallback
	}

	return f
}
