package rules

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tessera-platform/tessera/internal/workspace"
)

var (
	validationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tessera_rules_validations_total",
			Help: "Total number of full validation passes.",
		},
	)
	violationsLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tessera_rules_violations_last_run",
			Help: "Number of violations observed in the last validation pass, by severity.",
		},
		[]string{"severity"},
	)
)

func init() {
	prometheus.MustRegister(
		validationsTotal,
		violationsLastRun,
	)
}

func countBySeverity(violations []workspace.Violation) {
	counts := map[workspace.Severity]int{
		workspace.SeverityInfo:     0,
		workspace.SeverityWarning:  0,
		workspace.SeverityCritical: 0,
	}
	for _, v := range violations {
		counts[v.Severity]++
	}
	for severity, n := range counts {
		violationsLastRun.WithLabelValues(string(severity)).Set(float64(n))
	}
}
