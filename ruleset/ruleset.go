// Package ruleset reads rule sets and check batches from YAML files.
//
// A file looks like:
//
//	rules:
//	  age:  { pattern: "^[0-9]+$" }
//	  mode: { exact: strict }
//	  port: { exact: 8080 }
//	checks:
//	  - age: "42"
//	  - mode: strict
//	continue_on_failure: false
//
// Every section is optional. Rules and checks keep the order of the file.
package ruleset

import (
	"context"
	"fmt"
	"os"

	"github.com/phazelift/batch-validator/errors"
	"github.com/phazelift/batch-validator/logger"
	"github.com/phazelift/batch-validator/validate"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidFile is returned when a file is not a well-formed rule set.
	ErrInvalidFile = errors.New("invalid rule set file")

	// ErrInvalidRule is returned when a rule does not have exactly one of
	// pattern or exact, or its pattern does not compile.
	ErrInvalidRule = errors.New("invalid rule")
)

// Entry is a named rule of a file.
type Entry struct {
	Key  string
	Rule validate.Rule
}

// File is a parsed rule set.
type File struct {
	Rules             []Entry
	Checks            validate.Batch
	ContinueOnFailure bool
}

// Load reads and parses the file at path.
func Load(ctx context.Context, path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("reading rule set: %w", err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, logger.AnnotateError(fmt.Errorf("%s: %w", path, err), "path", path)
	}

	logger.Get(ctx).Debug("loaded rule set",
		"path", path,
		"rules", len(file.Rules),
		"checks", len(file.Checks))

	return file, nil
}

// Parse parses a rule set document.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	file := &File{}

	if len(doc.Content) == 0 {
		return file, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: top level must be a mapping", ErrInvalidFile, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]

		var err error

		switch key.Value {
		case "rules":
			file.Rules, err = parseRules(val)
		case "checks":
			file.Checks, err = parseChecks(val)
		case "continue_on_failure":
			if err = val.Decode(&file.ContinueOnFailure); err != nil {
				err = fmt.Errorf("%w: line %d: continue_on_failure: %w", ErrInvalidFile, val.Line, err)
			}
		default:
			err = fmt.Errorf("%w: line %d: unknown field %q", ErrInvalidFile, key.Line, key.Value)
		}

		if err != nil {
			return nil, err
		}
	}

	return file, nil
}

func parseRules(node *yaml.Node) ([]Entry, error) {
	if isNull(node) {
		return nil, nil
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: rules must be a mapping", ErrInvalidFile, node.Line)
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		if _, dup := seen[key.Value]; dup {
			return nil, fmt.Errorf("%w: line %d: rule %q defined twice", ErrInvalidFile, key.Line, key.Value)
		}

		seen[key.Value] = struct{}{}

		rule, err := parseRule(val)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", key.Value, err)
		}

		entries = append(entries, Entry{Key: key.Value, Rule: rule})
	}

	return entries, nil
}

func parseRule(node *yaml.Node) (validate.Rule, error) {
	if node.Kind != yaml.MappingNode {
		return validate.Rule{}, fmt.Errorf("%w: line %d: expected a mapping with pattern or exact", ErrInvalidRule, node.Line)
	}

	var (
		pattern, exact *yaml.Node
	)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		switch key.Value {
		case "pattern":
			pattern = val
		case "exact":
			exact = val
		default:
			return validate.Rule{}, fmt.Errorf("%w: line %d: unknown field %q", ErrInvalidRule, key.Line, key.Value)
		}
	}

	switch {
	case pattern != nil && exact != nil:
		return validate.Rule{}, fmt.Errorf("%w: line %d: both pattern and exact given", ErrInvalidRule, node.Line)
	case pattern != nil:
		if pattern.Kind != yaml.ScalarNode {
			return validate.Rule{}, fmt.Errorf("%w: line %d: pattern must be a string", ErrInvalidRule, pattern.Line)
		}

		rule, err := validate.Pattern(pattern.Value)
		if err != nil {
			return validate.Rule{}, fmt.Errorf("%w: line %d: %w", ErrInvalidRule, pattern.Line, err)
		}

		return rule, nil
	case exact != nil:
		if exact.Kind != yaml.ScalarNode {
			return validate.Rule{}, fmt.Errorf("%w: line %d: exact must be a scalar", ErrInvalidRule, exact.Line)
		}

		var value any
		if err := exact.Decode(&value); err != nil {
			return validate.Rule{}, fmt.Errorf("%w: line %d: %w", ErrInvalidRule, exact.Line, err)
		}

		return validate.Exact(value), nil
	default:
		return validate.Rule{}, fmt.Errorf("%w: line %d: one of pattern or exact is required", ErrInvalidRule, node.Line)
	}
}

func parseChecks(node *yaml.Node) (validate.Batch, error) {
	if isNull(node) {
		return nil, nil
	}

	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: checks must be a list", ErrInvalidFile, node.Line)
	}

	batch := make(validate.Batch, 0, len(node.Content))

	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, fmt.Errorf("%w: line %d: a check is a single key: value pair", ErrInvalidFile, item.Line)
		}

		var value any
		if err := item.Content[1].Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidFile, item.Line, err)
		}

		batch = append(batch, validate.Check{Key: item.Content[0].Value, Value: value})
	}

	return batch, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

// Apply registers every rule of the file on r, in file order. Like
// RegisterMany it does not stop at a failing rule; the result is true only
// when every rule was registered.
func (f *File) Apply(r *validate.Registry) bool {
	ok := true

	for _, entry := range f.Rules {
		if !r.Register(entry.Key, entry.Rule) {
			ok = false
		}
	}

	return ok
}

// Keys returns the rule keys in file order.
func (f *File) Keys() []string {
	keys := make([]string, len(f.Rules))
	for i, entry := range f.Rules {
		keys[i] = entry.Key
	}

	return keys
}

// Batch returns a copy of the file's checks.
func (f *File) Batch() validate.Batch {
	if f.Checks == nil {
		return nil
	}

	out := make(validate.Batch, len(f.Checks))
	copy(out, f.Checks)

	return out
}

// BatchOptions returns the batch options the file asks for.
func (f *File) BatchOptions() []validate.BatchOption {
	return []validate.BatchOption{validate.ContinueIf(f.ContinueOnFailure)}
}
