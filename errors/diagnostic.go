package errors

import "fmt"

// Diagnostic is the error value handed to a registry's error handler.
// Kind is one of the sentinel errors of this package; the other fields are
// filled in when they apply to the failure.
type Diagnostic struct {
	Kind  error
	Key   any
	Value any
	Rule  any
	Msg   string
}

// Compile-time check that Diagnostic implements error.
var _ error = (*Diagnostic)(nil)

// Error returns the human readable message of the diagnostic.
func (d *Diagnostic) Error() string {
	if d.Msg != "" {
		return d.Msg
	}

	if d.Kind != nil {
		return d.Kind.Error()
	}

	return "diagnostic"
}

// Unwrap returns the sentinel kind so errors.Is works against it.
func (d *Diagnostic) Unwrap() error {
	return d.Kind
}

// Attrs returns the populated fields as slog-style key/value pairs.
func (d *Diagnostic) Attrs() []any {
	attrs := []any{"kind", kindName(d.Kind)}

	if d.Key != nil {
		attrs = append(attrs, "key", d.Key)
	}

	if d.Value != nil {
		attrs = append(attrs, "value", d.Value)
	}

	if d.Rule != nil {
		attrs = append(attrs, "rule", fmt.Sprint(d.Rule))
	}

	return attrs
}

func kindName(kind error) string {
	if kind == nil {
		return "unknown"
	}

	return kind.Error()
}

// NewDiagnostic builds a Diagnostic of the given kind with a formatted message.
func NewDiagnostic(kind error, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}
