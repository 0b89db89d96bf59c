package validate

import (
	"context"

	"github.com/phazelift/batch-validator/errors"
	"github.com/phazelift/batch-validator/logger"
	"github.com/phazelift/batch-validator/types"
)

// ErrorHandler receives every diagnostic a Registry produces. The error is
// always an *errors.Diagnostic. Its return has no effect on validation.
type ErrorHandler func(err error)

// Reporter is implemented by anything that can take over the error handler slot.
type Reporter interface {
	Report(err error)
}

// Report calls the handler, tolerating a nil handler.
func (h ErrorHandler) Report(err error) {
	if h != nil {
		h(err)
	}
}

// Compile-time check that ErrorHandler implements Reporter.
var _ Reporter = ErrorHandler(nil)

// NopHandler discards diagnostics. It is the default handler of a Registry.
func NopHandler(error) {}

// LogHandler logs each diagnostic at warn level through the logger of ctx.
// The diagnostic's key, value and rule are logged as attributes.
func LogHandler(ctx context.Context) ErrorHandler {
	return func(err error) {
		logger.Get(ctx).Warn(err.Error(), "error", err)
	}
}

// CollectHandler appends every diagnostic to c.
func CollectHandler(c *errors.Collection) ErrorHandler {
	return c.Add
}

// Chain returns a handler calling each of handlers in order.
func Chain(handlers ...ErrorHandler) ErrorHandler {
	return func(err error) {
		for _, h := range handlers {
			h.Report(err)
		}
	}
}

// coerceHandler accepts an ErrorHandler, any func(error), or a Reporter.
// Anything else, nil included, becomes NopHandler.
func coerceHandler(h any) ErrorHandler {
	if types.IsNilish(h) {
		return NopHandler
	}

	if eh, ok := h.(ErrorHandler); ok {
		return eh
	}

	if rep, ok := h.(Reporter); ok {
		return rep.Report
	}

	return types.ForceFunction[ErrorHandler](h, NopHandler)
}
