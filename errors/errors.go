// Package errors holds the sentinel errors reported by the validator registry
// and a few helpers for carrying and accumulating them.
package errors

import "errors"

var (
	// ErrWrongType is reported when a registration key is not a string.
	ErrWrongType = errors.New("wrong type")

	// ErrDuplicateKey is reported when a key is registered a second time.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownKey is reported when a value is validated against a key
	// that was never registered.
	ErrUnknownKey = errors.New("unknown key")

	// ErrValidation is reported when a candidate value does not satisfy its rule.
	ErrValidation = errors.New("validation failed")

	// ErrMalformedEntry is reported when a batch element is not a key/value mapping.
	ErrMalformedEntry = errors.New("malformed batch entry")
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It provides methods to add errors, check for errors, and retrieve them as a single combined error.
// Use this when you need to collect errors from multiple operations and return them together.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are automatically ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection, resetting it to an empty state.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// Errors returns a copy of the collected errors, in insertion order.
func (c *Collection) Errors() []error {
	out := make([]error, len(c.errors))
	copy(out, c.errors)

	return out
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only one,
// or a joined error (using errors.Join) if there are multiple errors.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}

// Is reports whether any error in err's tree matches target. It is re-exported
// so callers importing this package under the name "errors" keep access to it.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text) //nolint:err113
}
