// Package validate provides a small in-memory registry that maps string keys
// to validation rules and checks candidate values against them.
//
// A rule is either an exact value, compared by strict equality, or a pattern
// matcher such as a *regexp.Regexp. Failures never panic and are never
// returned as Go errors: the registry reports them to its error handler as an
// *errors.Diagnostic and returns a Result (Valid, Invalid or Unevaluated).
//
// A Registry is not safe for concurrent use. Callers sharing one across
// goroutines must synchronize access themselves.
package validate
