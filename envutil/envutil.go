// Package envutil reads typed configuration from environment variables.
// Values can be overridden per context with WithEnvOverride, which keeps
// tests parallel-safe.
package envutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidChoice   = errors.New("invalid choice")
)

type envContextKey string

// WithEnvOverride returns a context in which key reads as value,
// regardless of the process environment.
func WithEnvOverride(ctx context.Context, key string, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, envContextKey(key), value)
}

func getEnvOverride(ctx context.Context, key string) (string, bool) {
	if ctx == nil {
		return "", false
	}

	val, ok := ctx.Value(envContextKey(key)).(string)

	return val, ok
}

// get returns a Reader for the given environment variable key.
func get(ctx context.Context, key string) Reader[string] {
	if val, ok := getEnvOverride(ctx, key); ok {
		return Reader[string]{key: key, present: true, value: val}
	}

	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String returns a Reader for the given environment variable key.
func String(ctx context.Context, key string, opts ...Option[string]) Reader[string] {
	return apply(get(ctx, key), opts)
}

// Bool returns a Reader that parses the variable with strconv.ParseBool.
func Bool(ctx context.Context, key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(ctx, key), strconv.ParseBool), opts)
}

// SlogLevel returns a Reader that parses debug, info, warn or error
// (case-insensitive, surrounding space ignored).
func SlogLevel(ctx context.Context, key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(Map(get(ctx, key), parseSlogLevel), opts)
}

// OneOf returns a Reader whose value must be one of choices.
func OneOf(ctx context.Context, key string, choices []string, opts ...Option[string]) Reader[string] {
	rdr := Map(get(ctx, key), func(value string) (string, error) {
		value = strings.TrimSpace(value)
		if !slices.Contains(choices, value) {
			return value, fmt.Errorf("%w: %q (want one of %s)", ErrInvalidChoice, value, strings.Join(choices, ", "))
		}

		return value, nil
	})

	return apply(rdr, opts)
}

func parseSlogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, value)
	}
}
