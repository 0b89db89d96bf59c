package types

import "reflect"

// Comparable is a generic interface for types that can compare themselves for equality.
// A rule value implementing Comparable[any] decides for itself what it equals.
type Comparable[T any] interface {
	Equals(other T) bool
}

// StrictEqual compares two values without any coercion: values of different
// dynamic types are never equal ("1" is not 1). Comparable types use ==, maps,
// slices, funcs and channels compare by identity.
func StrictEqual(a, b any) bool {
	if c, ok := a.(Comparable[any]); ok {
		return c.Equals(b)
	}

	if c, ok := b.(Comparable[any]); ok {
		return c.Equals(a)
	}

	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	if ta.Comparable() {
		return sameComparable(a, b)
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)

	switch va.Kind() { //nolint:exhaustive
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

// sameComparable uses == but guards against structs or arrays whose type is
// comparable while holding an interface field with an incomparable value.
func sameComparable(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()

	return a == b
}
