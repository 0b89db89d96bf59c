package ruleset

import (
	"fmt"
	"strings"

	"github.com/phazelift/batch-validator/errors"
	"github.com/phazelift/batch-validator/validate"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPair is returned by ParsePair for text without a key.
var ErrInvalidPair = errors.New("expected key=value")

// ParseValue reads text the way a scalar in a rule set file is read, so
// "8080" is an int, "true" a bool and "strict" a string. Quote the text to
// keep it a string. Text that is not a YAML scalar is returned unchanged.
func ParseValue(text string) any {
	var node yaml.Node

	if err := yaml.Unmarshal([]byte(text), &node); err != nil || len(node.Content) == 0 {
		return text
	}

	scalar := node.Content[0]
	if scalar.Kind != yaml.ScalarNode {
		return text
	}

	var value any
	if err := scalar.Decode(&value); err != nil {
		return text
	}

	return value
}

// ParsePair splits a key=value argument into a check. The value goes
// through ParseValue.
func ParsePair(arg string) (validate.Check, error) {
	key, value, found := strings.Cut(arg, "=")

	key = strings.TrimSpace(key)
	if !found || key == "" {
		return validate.Check{}, fmt.Errorf("%w: %q", ErrInvalidPair, arg)
	}

	return validate.Check{Key: key, Value: ParseValue(value)}, nil
}

// ParsePairs parses every argument with ParsePair.
func ParsePairs(args []string) (validate.Batch, error) {
	batch := make(validate.Batch, 0, len(args))

	for _, arg := range args {
		check, err := ParsePair(arg)
		if err != nil {
			return nil, err
		}

		batch = append(batch, check)
	}

	return batch, nil
}
