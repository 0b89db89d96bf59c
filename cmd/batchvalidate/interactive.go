package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/phazelift/batch-validator/logger"
	"github.com/phazelift/batch-validator/ruleset"
	"github.com/phazelift/batch-validator/validate"
)

// questioner is the part of cli.Prompter the interactive session uses.
type questioner interface {
	Select(label string, choices []string) (string, error)
	StringEmptyOk(label string) (string, error)
	Confirm(label string) (bool, error)
}

// interactive prompts for key/value checks until the user stops. Values are
// read like rule set scalars. Interrupting a prompt ends the session.
func interactive(ctx context.Context, q questioner, r *validate.Registry, out io.Writer) (validate.Result, error) {
	result := validate.Valid

	for ctx.Err() == nil {
		key, err := q.Select("Key", r.Keys())
		if stopped(err) {
			break
		} else if err != nil {
			return validate.Unevaluated, err
		}

		text, err := q.StringEmptyOk("Value for " + key)
		if stopped(err) {
			break
		} else if err != nil {
			return validate.Unevaluated, err
		}

		res := r.ValidateOne(key, ruleset.ParseValue(text))
		result = worst(result, res)

		_, _ = fmt.Fprintf(out, "%s: %s\n", key, res)

		more, err := q.Confirm("Check another value")
		if stopped(err) || (err == nil && !more) {
			break
		} else if err != nil {
			return validate.Unevaluated, err
		}
	}

	logger.Get(ctx).Debug("interactive session ended", "result", result.String())

	return result, nil
}

func stopped(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
