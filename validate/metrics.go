package validate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeWrongType = "wrong_type"
	outcomeDuplicate = "duplicate"

	ruleKindNone = "none"
)

var (
	// registrationsTotal counts calls that try to register one rule.
	//
	// Labels:
	//   - outcome: "ok", "wrong_type" (key was not a usable string) or
	//     "duplicate" (key already registered).
	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "batch_validator_registrations_total",
		Help: "The total number of rule registrations, by outcome",
	}, []string{"outcome"})

	// validationsTotal counts single-value validations, including the ones
	// made on behalf of a batch.
	//
	// Labels:
	//   - rule_kind: "exact", "pattern", or "none" when the key was unknown.
	//   - result: "valid", "invalid" or "unevaluated".
	//
	// Useful queries:
	//   - sum(rate(batch_validator_validations_total{result="invalid"}[5m])) - failure rate
	//   - batch_validator_validations_total{rule_kind="none"} - lookups of unknown keys
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "batch_validator_validations_total",
		Help: "The total number of single value validations",
	}, []string{"rule_kind", "result"})

	// batchSize records how many checks a batch evaluated before it finished,
	// stopped at a failure, or was aborted by a malformed entry.
	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "batch_validator_batch_size",
		Help:    "The number of checks evaluated per batch",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
	})
)

// init pre-initializes every label combination so the series exist (at zero)
// before the first registration or validation, keeping rate() queries and
// absence alerts well defined.
func init() {
	for _, outcome := range []string{outcomeOK, outcomeWrongType, outcomeDuplicate} {
		registrationsTotal.WithLabelValues(outcome).Add(0)
	}

	for _, kind := range []string{KindExact.String(), KindPattern.String(), ruleKindNone} {
		for _, result := range []Result{Valid, Invalid, Unevaluated} {
			validationsTotal.WithLabelValues(kind, result.String()).Add(0)
		}
	}
}

func (r *Registry) observeRegistration(outcome string) {
	if r.metrics {
		registrationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (r *Registry) observeValidation(kind string, result Result) {
	if r.metrics {
		validationsTotal.WithLabelValues(kind, result.String()).Inc()
	}
}

func (r *Registry) observeBatch(evaluated int) {
	if r.metrics {
		batchSize.Observe(float64(evaluated))
	}
}
