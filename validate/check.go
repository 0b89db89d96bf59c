package validate

import (
	"fmt"
	"reflect"

	"facette.io/natsort"
	"github.com/phazelift/batch-validator/errors"
	"github.com/phazelift/batch-validator/types"
)

// Check is one key/value pair of a batch.
type Check struct {
	Key   string
	Value any
}

// Batch is an ordered list of checks.
type Batch []Check

// BatchReport is the outcome of Report.
type BatchReport struct {
	Result Result
	// Evaluated is the number of checks that were looked at before the
	// batch finished, stopped or was aborted.
	Evaluated int
	// Err joins every diagnostic reported while the batch ran, or is nil.
	Err error
}

// ValidateOne checks value against the rule registered under key.
//
// It returns Unevaluated, after reporting an ErrUnknownKey diagnostic, when
// key is not registered. Exact rules compare with types.StrictEqual; pattern
// rules test the text of value. A failed match reports an ErrValidation
// diagnostic carrying the key, the value and the rule, and returns Invalid.
func (r *Registry) ValidateOne(key any, value any) Result {
	k, isString := stringKey(key)

	rule, found := r.rules[k]
	if !isString || !found {
		r.observeValidation(ruleKindNone, Unevaluated)

		diag := errors.NewDiagnostic(errors.ErrUnknownKey, "cannot validate non-existing key: %v", key)
		diag.Key = key
		r.report(diag)

		return Unevaluated
	}

	if rule.match(value, r.normalize) {
		r.observeValidation(rule.Kind().String(), Valid)

		return Valid
	}

	r.observeValidation(rule.Kind().String(), Invalid)

	r.report(&errors.Diagnostic{
		Kind:  errors.ErrValidation,
		Key:   k,
		Value: value,
		Rule:  rule,
		Msg:   fmt.Sprintf("value: %s did not pass %s!", displayValue(value), k),
	})

	return Invalid
}

// ValidateBatch checks every entry of batch in order. A check that is not
// Valid, unknown keys included, makes the whole batch Invalid and stops the
// iteration unless ContinueOnFailure is given. An empty batch is Valid.
func (r *Registry) ValidateBatch(batch Batch, opts ...BatchOption) Result {
	result, _ := r.runBatch(len(batch), func(i int) (Check, bool) {
		return batch[i], true
	}, newBatchConfig(opts))

	return result
}

// Validate checks a single value or a whole batch.
//
// When validations is not a sequence it is the key of a single check of
// value, and the result of ValidateOne is returned unchanged.
//
// Otherwise validations is a batch: a Batch, a []Check, or a sequence whose
// elements are one-entry mappings {key: value}. In the batch form the second
// argument keeps its legacy meaning: when truthy, evaluation continues past
// failures exactly as with ContinueOnFailure. An element that is not a
// mapping reports an ErrMalformedEntry diagnostic and aborts the batch with
// Unevaluated. Of a mapping with several entries only the first key, in
// natural order, is checked; an empty mapping checks no key and fails as an
// unknown key.
func (r *Registry) Validate(validations any, value any, opts ...BatchOption) Result {
	if types.NotArray(validations) {
		return r.ValidateOne(validations, value)
	}

	cfg := newBatchConfig(opts)
	cfg.continueOnFailure = cfg.continueOnFailure || types.Truthy(value)

	switch v := validations.(type) {
	case Batch:
		result, _ := r.runBatch(len(v), func(i int) (Check, bool) { return v[i], true }, cfg)

		return result
	case []Check:
		result, _ := r.runBatch(len(v), func(i int) (Check, bool) { return v[i], true }, cfg)

		return result
	}

	seq := reflect.ValueOf(validations)

	result, _ := r.runBatch(seq.Len(), func(i int) (Check, bool) {
		return checkFrom(seq.Index(i).Interface())
	}, cfg)

	return result
}

// Report runs ValidateBatch and also gathers every diagnostic produced along
// the way. The registry's own handler still receives them.
func (r *Registry) Report(batch Batch, opts ...BatchOption) BatchReport {
	var collected errors.Collection

	saved := r.handler
	r.handler = Chain(saved, CollectHandler(&collected))

	defer func() { r.handler = saved }()

	result, evaluated := r.runBatch(len(batch), func(i int) (Check, bool) {
		return batch[i], true
	}, newBatchConfig(opts))

	return BatchReport{
		Result:    result,
		Evaluated: evaluated,
		Err:       collected.GetError(),
	}
}

// runBatch evaluates n checks produced by at. at returns false for a
// malformed element, which aborts the batch.
func (r *Registry) runBatch(n int, at func(int) (Check, bool), cfg batchConfig) (result Result, evaluated int) {
	defer func() { r.observeBatch(evaluated) }()

	result = Valid

	for i := range n {
		check, ok := at(i)
		if !ok {
			r.report(errors.NewDiagnostic(errors.ErrMalformedEntry,
				"invalid or non-object type encountered in validations!"))

			return Unevaluated, evaluated
		}

		evaluated++

		if r.ValidateOne(check.Key, check.Value) != Valid {
			result = Invalid

			if !cfg.continueOnFailure {
				break
			}
		}
	}

	return result, evaluated
}

// checkFrom reads a batch element: a Check, or a string-keyed mapping.
func checkFrom(elem any) (Check, bool) {
	switch e := elem.(type) {
	case Check:
		return e, true
	case *Check:
		if e != nil {
			return *e, true
		}

		return Check{}, false
	}

	if types.NotObject(elem) {
		return Check{}, false
	}

	m := reflect.ValueOf(elem)
	if m.Len() == 0 {
		return Check{}, true
	}

	keys := make([]string, 0, m.Len())
	values := make(map[string]reflect.Value, m.Len())

	iter := m.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		keys = append(keys, key)
		values[key] = iter.Value()
	}

	natsort.Sort(keys)

	return Check{Key: keys[0], Value: values[keys[0]].Interface()}, true
}

// displayValue quotes strings and prints everything else with %v.
func displayValue(v any) string {
	if s, ok := stringKey(v); ok {
		return `"` + s + `"`
	}

	return fmt.Sprintf("%v", v)
}
