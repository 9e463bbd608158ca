package version

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	updatesAppliedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tessera_version_updates_applied_total",
			Help: "Total number of version updates applied by the coordinator.",
		},
	)
	updatesRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_version_updates_rejected_total",
			Help: "Number of rejected version updates by rejection reason.",
		},
		[]string{"reason"},
	)
	plansBuiltTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tessera_version_plans_built_total",
			Help: "Total number of update plans built.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		updatesAppliedTotal,
		updatesRejectedTotal,
		plansBuiltTotal,
	)
}
