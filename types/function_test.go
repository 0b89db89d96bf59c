package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handler func(err error)

func TestForceFunction(t *testing.T) {
	t.Parallel()

	var calls []string

	fallback := handler(func(error) { calls = append(calls, "fallback") })

	t.Run("same type is returned", func(t *testing.T) {
		h := ForceFunction[handler](handler(func(error) { calls = append(calls, "named") }), fallback)
		h(nil)

		assert.Contains(t, calls, "named")
	})

	t.Run("convertible func is converted", func(t *testing.T) {
		var got error

		h := ForceFunction[handler](func(err error) { got = err }, fallback)
		require.NotNil(t, h)

		h(errors.ErrUnsupported)
		assert.Equal(t, errors.ErrUnsupported, got)
	})

	t.Run("nil func yields fallback", func(t *testing.T) {
		var nilHandler func(error)

		before := len(calls)
		ForceFunction[handler](nilHandler, fallback)(nil)
		ForceFunction[handler](nil, fallback)(nil)

		assert.Equal(t, []string{"fallback", "fallback"}, calls[before:])
	})

	t.Run("incompatible values yield fallback", func(t *testing.T) {
		before := len(calls)

		ForceFunction[handler]("not a function", fallback)(nil)
		ForceFunction[handler](func(string) {}, fallback)(nil)
		ForceFunction[handler](42, fallback)(nil)

		assert.Equal(t, []string{"fallback", "fallback", "fallback"}, calls[before:])
	})
}
