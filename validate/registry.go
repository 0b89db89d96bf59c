package validate

import (
	"context"
	"reflect"

	"facette.io/natsort"
	"github.com/google/uuid"
	"github.com/phazelift/batch-validator/errors"
	"github.com/phazelift/batch-validator/logger"
	"github.com/phazelift/batch-validator/types"
)

// Registry maps keys to rules. Keys are unique and rules are immutable once
// registered; there is no removal.
type Registry struct {
	id        uuid.UUID
	rules     map[string]Rule
	order     []string
	handler   ErrorHandler
	normalize func(string) string
	metrics   bool
}

// Rules is the batch shape accepted by Add and RegisterMany.
type Rules map[string]any

// New returns an empty registry. Without options it discards diagnostics.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:      uuid.New(),
		rules:   make(map[string]Rule),
		handler: NopHandler,
		metrics: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ID identifies the registry in log lines.
func (r *Registry) ID() uuid.UUID {
	return r.id
}

// SetErrorHandler replaces the error handler and returns the registry for
// chaining. handler may be an ErrorHandler, any func(error) or a Reporter;
// anything else, nil included, installs NopHandler.
//
// Handlers run synchronously inside the registry call that produced the
// diagnostic. A panic in a handler is not recovered and reaches the caller
// of that registry method.
func (r *Registry) SetErrorHandler(handler any) *Registry {
	r.handler = coerceHandler(handler)

	return r
}

// LogErrors installs LogHandler, tagging every line with the registry ID.
func (r *Registry) LogErrors(ctx context.Context) *Registry {
	return r.SetErrorHandler(LogHandler(logger.With(ctx, "registry_id", r.id.String())))
}

// HasKey reports whether key is registered.
func (r *Registry) HasKey(key string) bool {
	_, ok := r.rules[key]

	return ok
}

// Lookup returns the rule registered under key.
func (r *Registry) Lookup(key string) (Rule, bool) {
	rule, ok := r.rules[key]

	return rule, ok
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) report(diag *errors.Diagnostic) {
	r.handler.Report(diag)
}

// AddOne registers rule under key. It fails, reporting a diagnostic, when key
// is not a non-empty string or is already registered. See Register for how
// rule is interpreted.
func (r *Registry) AddOne(key any, rule any) bool {
	k, ok := stringKey(key)
	if !ok || k == "" {
		r.observeRegistration(outcomeWrongType)

		format := "key: %v is not of type string, cannot add validation!"
		if ok {
			format = "key: %v is empty, cannot add validation!"
		}

		diag := errors.NewDiagnostic(errors.ErrWrongType, format, displayKey(key))
		diag.Key = key
		r.report(diag)

		return false
	}

	if existing, found := r.rules[k]; found {
		r.observeRegistration(outcomeDuplicate)

		diag := errors.NewDiagnostic(errors.ErrDuplicateKey,
			"key: %s already exists with regexp: %s cannot add!", k, existing)
		diag.Key = k
		diag.Rule = existing
		r.report(diag)

		return false
	}

	r.rules[k] = resolveRule(rule)
	r.order = append(r.order, k)
	r.observeRegistration(outcomeOK)

	return true
}

// Register is the typed form of AddOne. Pattern matchers (*regexp.Regexp or
// any types.Pattern) become pattern rules, a Rule is stored as is, and every
// other value, strings included, becomes an exact rule.
func (r *Registry) Register(key string, rule any) bool {
	return r.AddOne(key, rule)
}

// RegisterMany registers every entry of rules, in natural order of the keys.
// It does not stop at a failing entry; the result is true only when every
// entry was registered.
func (r *Registry) RegisterMany(rules map[string]any) bool {
	keys := make([]string, 0, len(rules))
	for key := range rules {
		keys = append(keys, key)
	}

	natsort.Sort(keys)

	ok := true

	for _, key := range keys {
		if !r.AddOne(key, rules[key]) {
			ok = false
		}
	}

	return ok
}

// Add registers either a whole mapping of rules or a single one.
// When source is a string-keyed map the entries are registered with
// RegisterMany and rule is ignored; otherwise source is the key of a single
// registration.
func (r *Registry) Add(source any, rule any) bool {
	switch s := source.(type) {
	case Rules:
		return r.RegisterMany(s)
	case map[string]any:
		return r.RegisterMany(s)
	}

	if types.IsObject(source) {
		return r.RegisterMany(toRuleMap(source))
	}

	return r.AddOne(source, rule)
}

// toRuleMap copies any string-keyed map into a map[string]any.
func toRuleMap(source any) map[string]any {
	val := reflect.ValueOf(source)
	out := make(map[string]any, val.Len())

	iter := val.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out
}

// stringKey accepts strings and named string types.
func stringKey(key any) (string, bool) {
	if s, ok := key.(string); ok {
		return s, true
	}

	if types.IsString(key) {
		return reflect.ValueOf(key).String(), true
	}

	return "", false
}

func displayKey(key any) string {
	if s, ok := stringKey(key); ok {
		return `"` + s + `"`
	}

	if key == nil {
		return "<nil>"
	}

	return reflect.ValueOf(key).Type().String() + "(" + displayValue(key) + ")"
}
