package validate

import (
	"regexp"
	"testing"

	"github.com/phazelift/batch-validator/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func newCheckRegistry(t *testing.T, opts ...Option) (*Registry, *recorder) {
	t.Helper()

	rec := &recorder{}

	r := New(append([]Option{WithErrorHandler(rec), WithMetrics(false)}, opts...)...)
	require.True(t, r.Add(Rules{
		"age":  regexp.MustCompile("^[0-9]+$"),
		"mode": "strict",
	}, nil))

	return r, rec
}

func TestValidateOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   any
		value any
		want  Result
		kind  error
	}{
		{name: "pattern match", key: "age", value: "42", want: Valid},
		{name: "pattern match on number", key: "age", value: 42, want: Valid},
		{name: "pattern mismatch", key: "age", value: "abc", want: Invalid, kind: errors.ErrValidation},
		{name: "pattern mismatch on negative number", key: "age", value: -1, want: Invalid, kind: errors.ErrValidation},
		{name: "pattern never matches nil", key: "age", value: nil, want: Invalid, kind: errors.ErrValidation},
		{name: "exact match", key: "mode", value: "strict", want: Valid},
		{name: "exact mismatch", key: "mode", value: "loose", want: Invalid, kind: errors.ErrValidation},
		{name: "exact is case sensitive", key: "mode", value: "STRICT", want: Invalid, kind: errors.ErrValidation},
		{name: "unknown key", key: "port", value: 80, want: Unevaluated, kind: errors.ErrUnknownKey},
		{name: "non-string key", key: 1, value: 80, want: Unevaluated, kind: errors.ErrUnknownKey},
		{name: "named string key", key: fieldName("mode"), value: "strict", want: Valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, rec := newCheckRegistry(t)

			assert.Equal(t, tt.want, r.ValidateOne(tt.key, tt.value))

			if tt.kind == nil {
				assert.Empty(t, rec.errs)

				return
			}

			require.Len(t, rec.errs, 1)
			require.ErrorIs(t, rec.errs[0], tt.kind)
		})
	}
}

func TestValidateOneDiagnostic(t *testing.T) {
	t.Parallel()

	r, rec := newCheckRegistry(t)

	require.Equal(t, Invalid, r.ValidateOne("age", "abc"))

	diag := rec.diagnostic(t, 0)
	assert.Equal(t, "age", diag.Key)
	assert.Equal(t, "abc", diag.Value)
	assert.Equal(t, "/^[0-9]+$/", diag.Rule.(Rule).String()) //nolint:forcetypeassert
	assert.Equal(t, `value: "abc" did not pass age!`, diag.Error())

	require.Equal(t, Unevaluated, r.ValidateOne("port", 80))

	diag = rec.diagnostic(t, 1)
	assert.Equal(t, "cannot validate non-existing key: port", diag.Error())
	assert.Equal(t, "port", diag.Key)
}

func TestValidateOneIsIdempotent(t *testing.T) {
	t.Parallel()

	r, rec := newCheckRegistry(t)

	for range 3 {
		assert.Equal(t, Valid, r.ValidateOne("age", "42"))
		assert.Equal(t, Invalid, r.ValidateOne("age", "abc"))
	}

	assert.Len(t, rec.errs, 3)
	assert.Equal(t, []string{"age", "mode"}, r.Keys())
}

func TestValidateSingleForm(t *testing.T) {
	t.Parallel()

	r, _ := newCheckRegistry(t)

	assert.Equal(t, Valid, r.Validate("age", "42"))
	assert.Equal(t, Invalid, r.Validate("mode", "loose"))
	assert.Equal(t, Unevaluated, r.Validate("port", 1))
	assert.Equal(t, Unevaluated, r.Validate(nil, 1))
	assert.Equal(t, Unevaluated, r.Validate(map[string]any{"age": "42"}, nil), "a mapping is not a batch")
}

func TestValidateBatchForm(t *testing.T) {
	t.Parallel()

	t.Run("all valid", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		result := r.Validate([]map[string]any{{"age": "42"}, {"mode": "strict"}}, nil)
		assert.Equal(t, Valid, result)
		assert.Empty(t, rec.errs)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		result := r.Validate([]any{
			map[string]any{"age": "x"},
			map[string]any{"mode": "loose"},
		}, false)
		assert.Equal(t, Invalid, result)
		require.Len(t, rec.errs, 1)
		assert.Equal(t, "age", rec.diagnostic(t, 0).Key)
	})

	t.Run("truthy flag continues", func(t *testing.T) {
		t.Parallel()

		for _, flag := range []any{true, 1, "yes"} {
			r, rec := newCheckRegistry(t)

			result := r.Validate([]any{
				map[string]any{"age": "x"},
				map[string]any{"mode": "loose"},
			}, flag)
			assert.Equal(t, Invalid, result)
			assert.Len(t, rec.errs, 2, "flag %#v", flag)
		}
	})

	t.Run("falsy flag stops", func(t *testing.T) {
		t.Parallel()

		for _, flag := range []any{nil, false, 0, ""} {
			r, rec := newCheckRegistry(t)

			r.Validate([]map[string]string{{"age": "x"}, {"mode": "loose"}}, flag)
			assert.Len(t, rec.errs, 1, "flag %#v", flag)
		}
	})

	t.Run("option continues too", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		r.Validate([]map[string]string{{"age": "x"}, {"mode": "loose"}}, nil, ContinueOnFailure())
		assert.Len(t, rec.errs, 2)
	})

	t.Run("failure is not undone by later successes", func(t *testing.T) {
		t.Parallel()

		r, _ := newCheckRegistry(t)

		result := r.Validate([]any{
			map[string]any{"mode": "loose"},
			map[string]any{"age": "42"},
		}, true)
		assert.Equal(t, Invalid, result)
	})

	t.Run("unknown key fails the batch", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		result := r.Validate([]any{map[string]any{"age": "42"}, map[string]any{"port": 80}}, nil)
		assert.Equal(t, Invalid, result)
		require.Len(t, rec.errs, 1)
		require.ErrorIs(t, rec.errs[0], errors.ErrUnknownKey)
	})

	t.Run("empty batch is valid", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		assert.Equal(t, Valid, r.Validate([]any{}, nil))
		assert.Equal(t, Valid, r.Validate(Batch{}, true))
		assert.Empty(t, rec.errs)
	})

	t.Run("typed checks", func(t *testing.T) {
		t.Parallel()

		r, _ := newCheckRegistry(t)

		assert.Equal(t, Valid, r.Validate(Batch{{Key: "age", Value: "7"}}, nil))
		assert.Equal(t, Invalid, r.Validate([]Check{{Key: "mode", Value: "x"}}, nil))
		assert.Equal(t, Valid, r.Validate([]*Check{{Key: "mode", Value: "strict"}}, nil))
		assert.Equal(t, Valid, r.Validate([2]any{Check{Key: "age", Value: 1}, map[string]int{"age": 2}}, nil))
	})
}

func TestValidateMalformedEntries(t *testing.T) {
	t.Parallel()

	t.Run("aborts with unevaluated", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		result := r.Validate([]any{map[string]any{"age": "42"}, "age", map[string]any{"mode": "loose"}}, true)
		assert.Equal(t, Unevaluated, result)
		require.Len(t, rec.errs, 1)
		require.ErrorIs(t, rec.errs[0], errors.ErrMalformedEntry)
		assert.Equal(t, "invalid or non-object type encountered in validations!", rec.errs[0].Error())
	})

	t.Run("abort wins over earlier failures", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		result := r.Validate([]any{map[string]any{"age": "x"}, 42}, true)
		assert.Equal(t, Unevaluated, result)
		assert.Len(t, rec.errs, 2)
	})

	t.Run("never reached after a stopping failure", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		result := r.Validate([]any{map[string]any{"age": "x"}, 42}, nil)
		assert.Equal(t, Invalid, result)
		require.Len(t, rec.errs, 1)
		require.ErrorIs(t, rec.errs[0], errors.ErrValidation)
	})

	t.Run("nil elements", func(t *testing.T) {
		t.Parallel()

		r, _ := newCheckRegistry(t)

		assert.Equal(t, Unevaluated, r.Validate([]any{nil}, nil))
		assert.Equal(t, Unevaluated, r.Validate([]*Check{nil}, nil))
		assert.Equal(t, Unevaluated, r.Validate([]map[string]any{nil}, nil))
	})
}

func TestValidateMappingEntries(t *testing.T) {
	t.Parallel()

	t.Run("empty mapping is an unknown key", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		assert.Equal(t, Invalid, r.Validate([]any{map[string]any{}}, nil))
		require.Len(t, rec.errs, 1)
		require.ErrorIs(t, rec.errs[0], errors.ErrUnknownKey)
	})

	t.Run("first key in natural order wins", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		result := r.Validate([]any{map[string]any{"mode": "loose", "age": "42"}}, nil)
		assert.Equal(t, Valid, result)
		assert.Empty(t, rec.errs)
	})
}

func TestReport(t *testing.T) {
	t.Parallel()

	t.Run("stopping batch", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		report := r.Report(Batch{
			{Key: "age", Value: "42"},
			{Key: "age", Value: "x"},
			{Key: "mode", Value: "loose"},
		})

		assert.Equal(t, Invalid, report.Result)
		assert.Equal(t, 2, report.Evaluated)
		require.ErrorIs(t, report.Err, errors.ErrValidation)
		assert.Len(t, rec.errs, 1, "registry handler still called")
	})

	t.Run("continuing batch joins every diagnostic", func(t *testing.T) {
		t.Parallel()

		r, _ := newCheckRegistry(t)

		report := r.Report(Batch{
			{Key: "age", Value: "x"},
			{Key: "port", Value: 80},
		}, ContinueOnFailure())

		assert.Equal(t, Invalid, report.Result)
		assert.Equal(t, 2, report.Evaluated)
		require.ErrorIs(t, report.Err, errors.ErrValidation)
		require.ErrorIs(t, report.Err, errors.ErrUnknownKey)
	})

	t.Run("valid batch", func(t *testing.T) {
		t.Parallel()

		r, _ := newCheckRegistry(t)

		report := r.Report(Batch{{Key: "mode", Value: "strict"}})
		assert.Equal(t, Valid, report.Result)
		assert.Equal(t, 1, report.Evaluated)
		assert.NoError(t, report.Err)
	})

	t.Run("restores the handler", func(t *testing.T) {
		t.Parallel()

		r, rec := newCheckRegistry(t)

		r.Report(Batch{{Key: "age", Value: "x"}})
		r.ValidateOne("age", "y")

		assert.Len(t, rec.errs, 2)
	})
}

func TestValidateBatch(t *testing.T) {
	t.Parallel()

	r, rec := newCheckRegistry(t)

	batch := Batch{{Key: "mode", Value: "x"}, {Key: "age", Value: "x"}}

	assert.Equal(t, Invalid, r.ValidateBatch(batch))
	assert.Len(t, rec.errs, 1)

	assert.Equal(t, Invalid, r.ValidateBatch(batch, ContinueIf(false), ContinueIf(true)))
	assert.Len(t, rec.errs, 3)

	assert.Equal(t, Valid, r.ValidateBatch(nil))
}

func TestNormalization(t *testing.T) {
	t.Parallel()

	const (
		composed   = "caf\u00e9"
		decomposed = "cafe\u0301"
	)

	plain := New(WithMetrics(false))
	require.True(t, plain.Add(Rules{"word": composed, "pattern": MustPattern("^caf\u00e9$")}, nil))

	assert.Equal(t, Invalid, plain.ValidateOne("word", decomposed))
	assert.Equal(t, Invalid, plain.ValidateOne("pattern", decomposed))

	normalized := New(WithMetrics(false), WithNormalization(norm.NFC))
	require.True(t, normalized.Add(Rules{"word": composed, "pattern": MustPattern("^caf\u00e9$")}, nil))

	assert.Equal(t, Valid, normalized.ValidateOne("word", decomposed))
	assert.Equal(t, Valid, normalized.ValidateOne("pattern", decomposed))
}
