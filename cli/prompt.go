// Package cli holds the terminal prompts of the batchvalidate tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrEmptyInput is returned by the validator of prompts that need an answer.
var ErrEmptyInput = errors.New("you must enter something")

// Prompter asks questions on a terminal. The zero value uses the process's
// standard input and output.
type Prompter struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (p Prompter) stdin() io.ReadCloser {
	if p.Stdin == nil {
		return os.Stdin
	}

	return p.Stdin
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Stdout == nil {
		return os.Stdout
	}

	return p.Stdout
}

// Confirm asks a yes/no question. Answering no, or aborting, is false
// without an error.
func (p Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// String asks for a non-empty answer.
func (p Prompter) String(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: nonEmpty,
		Stdin:    p.stdin(),
		Stdout:   p.stdout(),
	}

	return prompt.Run()
}

// StringEmptyOk asks for an answer that may be empty.
func (p Prompter) StringEmptyOk(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}

	return prompt.Run()
}

// Select asks to pick one of choices. Typing filters the list by prefix.
func (p Prompter) Select(label string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("%s: %w", label, ErrNoChoices)
	}

	sel := &promptui.Select{
		Label:    label,
		Items:    choices,
		Searcher: prefixSearcher(choices),
		Stdin:    p.stdin(),
		Stdout:   p.stdout(),
	}

	_, value, err := sel.Run()
	if err != nil {
		return "", err
	}

	return value, nil
}

// ErrNoChoices is returned by Select when there is nothing to pick.
var ErrNoChoices = errors.New("nothing to choose from")

func nonEmpty(s string) error {
	if len(s) == 0 {
		return ErrEmptyInput
	}

	return nil
}

func prefixSearcher(choices []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if len(input) == 0 {
			return true
		}

		return strings.HasPrefix(choices[index], input)
	}
}
