package validate_test

import (
	"fmt"
	"regexp"

	"github.com/phazelift/batch-validator/validate"
)

func ExampleRegistry_ValidateOne() {
	r := validate.New(validate.WithMetrics(false)).SetErrorHandler(func(err error) {
		fmt.Println("error:", err)
	})

	r.Add("age", regexp.MustCompile("^[0-9]+$"))
	r.Add("mode", "strict")

	fmt.Println(r.ValidateOne("age", "42"))
	fmt.Println(r.ValidateOne("age", "abc"))
	fmt.Println(r.ValidateOne("mode", "strict"))
	fmt.Println(r.ValidateOne("port", 80))

	// Output:
	// valid
	// error: value: "abc" did not pass age!
	// invalid
	// valid
	// error: cannot validate non-existing key: port
	// unevaluated
}

func ExampleRegistry_Validate() {
	r := validate.New(validate.WithMetrics(false)).SetErrorHandler(func(err error) {
		fmt.Println("error:", err)
	})

	r.Add(validate.Rules{
		"age":  regexp.MustCompile("^[0-9]+$"),
		"mode": "strict",
	}, nil)

	batch := []map[string]any{
		{"age": "x"},
		{"mode": "loose"},
	}

	fmt.Println(r.Validate(batch, false))
	fmt.Println(r.Validate(batch, true))

	// Output:
	// error: value: "x" did not pass age!
	// invalid
	// error: value: "x" did not pass age!
	// error: value: "loose" did not pass mode!
	// invalid
}

func ExampleRegistry_Report() {
	r := validate.New(validate.WithMetrics(false))
	r.Add("mode", "strict")

	report := r.Report(validate.Batch{
		{Key: "mode", Value: "strict"},
		{Key: "mode", Value: "loose"},
	})

	fmt.Println(report.Result, report.Evaluated)
	fmt.Println(report.Err)

	// Output:
	// invalid 2
	// value: "loose" did not pass mode!
}
