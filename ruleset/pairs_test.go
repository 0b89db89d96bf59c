package ruleset

import (
	"testing"

	"github.com/phazelift/batch-validator/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want any
	}{
		{text: "8080", want: 8080},
		{text: "true", want: true},
		{text: "1.5", want: 1.5},
		{text: "strict", want: "strict"},
		{text: `"8080"`, want: "8080"},
		{text: "'yes'", want: "yes"},
		{text: "", want: ""},
		{text: "~", want: nil},
		{text: "[1, 2]", want: "[1, 2]"},
		{text: "a: b", want: "a: b"},
		{text: "[", want: "["},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValue(tt.text), "text %q", tt.text)
	}
}

func TestParsePair(t *testing.T) {
	t.Parallel()

	check, err := ParsePair("port=8080")
	require.NoError(t, err)
	assert.Equal(t, validate.Check{Key: "port", Value: 8080}, check)

	check, err = ParsePair("expr=a=b")
	require.NoError(t, err)
	assert.Equal(t, validate.Check{Key: "expr", Value: "a=b"}, check)

	check, err = ParsePair(" mode =strict")
	require.NoError(t, err)
	assert.Equal(t, "mode", check.Key)

	for _, arg := range []string{"mode", "=x", " =x", ""} {
		_, err = ParsePair(arg)
		require.ErrorIs(t, err, ErrInvalidPair, arg)
	}
}

func TestParsePairs(t *testing.T) {
	t.Parallel()

	batch, err := ParsePairs([]string{"age=42", "mode=strict"})
	require.NoError(t, err)
	assert.Equal(t, validate.Batch{{Key: "age", Value: 42}, {Key: "mode", Value: "strict"}}, batch)

	_, err = ParsePairs([]string{"age=42", "oops"})
	require.ErrorIs(t, err, ErrInvalidPair)

	batch, err = ParsePairs(nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}
