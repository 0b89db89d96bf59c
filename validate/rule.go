package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"github.com/phazelift/batch-validator/types"
)

// Kind tells how a Rule matches.
type Kind int

const (
	// KindExact rules match by strict equality.
	KindExact Kind = iota
	// KindPattern rules match text against a pattern.
	KindPattern
)

func (k Kind) String() string {
	if k == KindPattern {
		return "pattern"
	}

	return "exact"
}

// Rule is the stored criterion of a key: an exact value or a pattern.
// The zero Rule is an exact rule for nil.
type Rule struct {
	kind    Kind
	value   any
	pattern types.Pattern
}

// Exact returns a rule that only accepts values strictly equal to v.
// Strings are exact values too; use Pattern for textual patterns.
func Exact(v any) Rule {
	return Rule{kind: KindExact, value: v}
}

// Matching returns a pattern rule for p.
func Matching(p types.Pattern) Rule {
	return Rule{kind: KindPattern, pattern: types.ForceRegExp(p)}
}

// Pattern compiles expr as a regular expression rule.
func Pattern(expr string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}

	return Matching(re), nil
}

// MustPattern is like Pattern but panics if expr does not compile.
// It is meant for package-level rule tables.
func MustPattern(expr string) Rule {
	rule, err := Pattern(expr)
	if err != nil {
		panic(err)
	}

	return rule
}

// resolveRule turns whatever was handed to a registration call into a Rule.
// Pattern matchers are stored as pattern rules, a Rule is kept as is, and
// every other value is an exact rule.
func resolveRule(rule any) Rule {
	switch r := rule.(type) {
	case Rule:
		return r
	case *Rule:
		if r != nil {
			return *r
		}
	}

	if types.IsRegExp(rule) {
		return Matching(types.ForceRegExp(rule))
	}

	return Exact(rule)
}

// Kind returns how the rule matches.
func (r Rule) Kind() Kind {
	return r.kind
}

// IsPattern reports whether the rule is a pattern rule.
func (r Rule) IsPattern() bool {
	return r.kind == KindPattern
}

// Value returns the exact value, or the pattern for pattern rules.
func (r Rule) Value() any {
	if r.kind == KindPattern {
		return r.pattern
	}

	return r.value
}

// String renders pattern rules as /expr/ and exact rules with %v.
func (r Rule) String() string {
	if r.kind == KindPattern {
		return "/" + r.pattern.String() + "/"
	}

	return fmt.Sprintf("%v", r.value)
}

// Match reports whether value satisfies the rule.
func (r Rule) Match(value any) bool {
	return r.match(value, nil)
}

func (r Rule) match(value any, normalize func(string) string) bool {
	if r.kind == KindPattern {
		text, ok := patternInput(value)
		if !ok {
			return false
		}

		if normalize != nil {
			text = normalize(text)
		}

		return r.pattern.MatchString(text)
	}

	if normalize != nil {
		a, aok := r.value.(string)
		b, bok := value.(string)

		if aok && bok {
			return normalize(a) == normalize(b)
		}
	}

	return types.StrictEqual(r.value, value)
}

// patternInput renders value as the text a pattern is tested against.
// Text is used as is; booleans and numbers use their canonical form. Nil and
// composite values have no text and never match.
func patternInput(value any) (string, bool) {
	if text, ok := types.Textual(value); ok {
		return text, true
	}

	if types.IsNilish(value) {
		return "", false
	}

	val := reflect.ValueOf(value)

	switch val.Kind() { //nolint:exhaustive
	case reflect.Bool:
		return strconv.FormatBool(val.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(val.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(val.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(val.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(val.Float(), 'g', -1, 64), true
	default:
		return "", false
	}
}
