package types

import "regexp"

// Pattern is anything that can test whether a string conforms to it.
// *regexp.Regexp satisfies it.
type Pattern interface {
	MatchString(s string) bool
	String() string
}

// Compile-time check that *regexp.Regexp is a Pattern.
var _ Pattern = (*regexp.Regexp)(nil)

// nothing matches no input at all: the class excludes every code point.
var nothing = regexp.MustCompile(`[^\x00-\x{10FFFF}]`) //nolint:gochecknoglobals

// Nothing returns the pattern that never matches. ForceRegExp falls back to it.
func Nothing() Pattern {
	return nothing
}

// IsRegExp reports whether v is a usable pattern matcher.
func IsRegExp(v any) bool {
	if IsNilish(v) {
		return false
	}

	_, ok := v.(Pattern)

	return ok
}

// NotRegExp is the negation of IsRegExp.
func NotRegExp(v any) bool {
	return !IsRegExp(v)
}

// ForceRegExp coerces v into a Pattern. Patterns are returned unchanged,
// strings and byte slices are compiled as regular expressions. Anything else,
// including an expression that fails to compile, yields Nothing().
func ForceRegExp(v any) Pattern {
	if IsRegExp(v) {
		return v.(Pattern) //nolint:forcetypeassert
	}

	var expr string

	switch t := v.(type) {
	case string:
		expr = t
	case []byte:
		expr = string(t)
	default:
		return Nothing()
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Nothing()
	}

	return re
}
