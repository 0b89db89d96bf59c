// Command batchvalidate checks values against a YAML rule set.
//
//	batchvalidate -rules rules.yaml [-checks checks.yaml] [-continue] [-interactive] [-env-file .env] [key=value ...]
//	batchvalidate -version
//
// The checks of the rule set file, of the -checks file and of the key=value
// arguments are validated as one batch. The exit code is 0 when every check
// passes, 1 when one fails and 2 when the batch could not be evaluated or
// the command line or a file is wrong.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/phazelift/batch-validator/build"
	"github.com/phazelift/batch-validator/cli"
	"github.com/phazelift/batch-validator/envutil"
	"github.com/phazelift/batch-validator/logger"
	"github.com/phazelift/batch-validator/ruleset"
	"github.com/phazelift/batch-validator/validate"
)

const (
	exitValid       = 0
	exitInvalid     = 1
	exitUnevaluated = 2
)

const app = "batchvalidate"

var (
	errMissingRules      = errors.New("-rules is required")
	errNothingToValidate = errors.New("nothing to validate: give checks in a file, as key=value arguments, or use -interactive")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, cli.Prompter{})

	stop()
	os.Exit(code)
}

type options struct {
	rules       string
	checks      string
	continueOn  bool
	interactive bool
	envFile     string
	version     bool
	pairs       []string
}

func parseFlags(ctx context.Context, args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet(app, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.rules, "rules", "", "rule set file (required)")
	fs.StringVar(&opts.checks, "checks", "", "file with more checks, in rule set format")
	fs.BoolVar(&opts.continueOn, "continue", false, "keep validating after a failure (default from BATCHVALIDATE_CONTINUE)")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for more checks")
	fs.StringVar(&opts.envFile, "env-file", "", "load environment variables from a .env or YAML file")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.pairs = fs.Args()

	if opts.version {
		return opts, nil
	}

	if opts.rules == "" {
		fs.Usage()

		return opts, errMissingRules
	}

	if opts.envFile != "" {
		if err := envutil.Apply(opts.envFile); err != nil {
			return opts, err
		}
	}

	continueSet := false

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "continue" {
			continueSet = true
		}
	})

	if !continueSet {
		cont, err := envutil.Bool(ctx, "BATCHVALIDATE_CONTINUE", envutil.Default(false)).Value()
		if err != nil {
			return opts, err
		}

		opts.continueOn = cont
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, prompter questioner) int {
	opts, err := parseFlags(ctx, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitValid
		}

		_, _ = fmt.Fprintln(stderr, err)

		return exitUnevaluated
	}

	if opts.version {
		_, _ = fmt.Fprintln(stdout, build.Current())

		return exitValid
	}

	log, err := logger.ConfigureLogging(ctx, app, logger.WithOutput(stderr))
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return exitUnevaluated
	}

	ctx = logger.WithLogger(ctx, log)

	registry := validate.New().LogErrors(ctx)

	batch, batchOpts, err := load(ctx, registry, opts)
	if err != nil {
		logger.Get(ctx).Error("cannot load checks", "error", err)

		return exitUnevaluated
	}

	if len(batch) == 0 && !opts.interactive {
		logger.Get(ctx).Error(errNothingToValidate.Error())

		return exitUnevaluated
	}

	result := validate.Valid

	if len(batch) > 0 {
		report := registry.Report(batch, batchOpts...)
		result = report.Result

		_, _ = fmt.Fprintf(stdout, "%s (%d of %d checks evaluated)\n", report.Result, report.Evaluated, len(batch))
	}

	if opts.interactive {
		res, err := interactive(ctx, prompter, registry, stdout)
		if err != nil {
			logger.Get(ctx).Error("interactive session failed", "error", err)

			return exitUnevaluated
		}

		result = worst(result, res)
	}

	logger.Get(ctx).Debug("done", slog.String("result", result.String()))

	return exitCode(result)
}

// load registers the rule set on r and gathers every check of the run.
func load(ctx context.Context, r *validate.Registry, opts options) (validate.Batch, []validate.BatchOption, error) {
	rules, err := ruleset.Load(ctx, opts.rules)
	if err != nil {
		return nil, nil, err
	}

	if !rules.Apply(r) {
		return nil, nil, logger.AnnotateError(fmt.Errorf("%w: %s", ruleset.ErrInvalidRule, opts.rules), "path", opts.rules)
	}

	batch := rules.Batch()
	batchOpts := append(rules.BatchOptions(), validate.ContinueIf(opts.continueOn))

	if opts.checks != "" {
		checks, err := ruleset.Load(ctx, opts.checks)
		if err != nil {
			return nil, nil, err
		}

		if len(checks.Rules) > 0 {
			logger.Get(ctx).Warn("rules in a checks file are ignored", "path", opts.checks, "rules", len(checks.Rules))
		}

		batch = append(batch, checks.Batch()...)
		batchOpts = append(batchOpts, checks.BatchOptions()...)
	}

	pairs, err := ruleset.ParsePairs(opts.pairs)
	if err != nil {
		return nil, nil, err
	}

	return append(batch, pairs...), batchOpts, nil
}

// worst combines two results: Unevaluated beats Invalid beats Valid.
func worst(a, b validate.Result) validate.Result {
	switch {
	case a == validate.Unevaluated || b == validate.Unevaluated:
		return validate.Unevaluated
	case a == validate.Invalid || b == validate.Invalid:
		return validate.Invalid
	default:
		return validate.Valid
	}
}

func exitCode(result validate.Result) int {
	switch result {
	case validate.Valid:
		return exitValid
	case validate.Invalid:
		return exitInvalid
	case validate.Unevaluated:
		return exitUnevaluated
	default:
		return exitUnevaluated
	}
}
