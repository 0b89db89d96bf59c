package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// AnnotateError wraps an error with structured logging attributes (slog key-value pairs).
// When the returned error is logged through a handler built by NewHandler,
// the attributes are included in the log output next to the error.
//
// Returns nil if err is nil.
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	return &slogError{
		err:   err,
		attrs: toAttrs(args),
	}
}

// attributed is implemented by errors that describe themselves as slog
// key-value pairs, such as validation diagnostics.
type attributed interface {
	Attrs() []any
}

// ErrorAttrs returns the attributes attached to err by AnnotateError, or
// reported by err itself through an Attrs() []any method. Wrapped errors are
// searched; the outermost source wins.
func ErrorAttrs(err error) []slog.Attr {
	var se *slogError
	if errors.As(err, &se) {
		return se.attrs
	}

	var at attributed
	if errors.As(err, &at) {
		return toAttrs(at.Attrs())
	}

	return nil
}

func toAttrs(args []any) []slog.Attr {
	r := slog.NewRecord(time.Time{}, slog.LevelDebug, "", 0)
	r.Add(args...)

	attrs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)

		return true
	})

	return attrs
}

// slogError wraps an error with structured logging attributes.
type slogError struct {
	err   error
	attrs []slog.Attr
}

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

// Compile-time check that slogError implements error interface.
var _ error = (*slogError)(nil)

// slogErrorLogger is a slog.Handler decorator that expands the attributes of
// logged errors (see ErrorAttrs) into the record.
type slogErrorLogger struct {
	inner slog.Handler
}

// Compile-time check that slogErrorLogger implements slog.Handler interface.
var _ slog.Handler = (*slogErrorLogger)(nil)

func (s *slogErrorLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

// Handle replaces each annotated error attribute by the plain error and
// appends the error's own attributes after the record's attributes.
func (s *slogErrorLogger) Handle(ctx context.Context, record slog.Record) error {
	var (
		baseAttrs []slog.Attr
		errAttrs  []slog.Attr
	)

	record.Attrs(func(attr slog.Attr) bool {
		err, ok := attr.Value.Any().(error)
		if !ok {
			baseAttrs = append(baseAttrs, attr)

			return true
		}

		var se *slogError
		if errors.As(err, &se) {
			err = se.err
		}

		baseAttrs = append(baseAttrs, slog.Attr{Key: attr.Key, Value: slog.AnyValue(err)})
		errAttrs = append(errAttrs, ErrorAttrs(attr.Value.Any().(error))...) //nolint:forcetypeassert

		return true
	})

	if len(errAttrs) == 0 {
		return s.inner.Handle(ctx, record)
	}

	r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	r.AddAttrs(baseAttrs...)
	r.AddAttrs(errAttrs...)

	return s.inner.Handle(ctx, r)
}

func (s *slogErrorLogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithAttrs(attrs)}
}

func (s *slogErrorLogger) WithGroup(name string) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithGroup(name)}
}
