package validate

// Result is the outcome of a validation.
type Result int

const (
	// Unevaluated means the value could not be checked at all: the key was
	// unknown or a batch was malformed. It is the zero value.
	Unevaluated Result = iota
	// Valid means every checked value satisfied its rule.
	Valid
	// Invalid means at least one checked value failed its rule.
	Invalid
)

// Bool reports whether the result is Valid.
func (r Result) Bool() bool {
	return r == Valid
}

// Evaluated reports whether a verdict was reached.
func (r Result) Evaluated() bool {
	return r == Valid || r == Invalid
}

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Unevaluated:
		return "unevaluated"
	default:
		return "unknown"
	}
}
