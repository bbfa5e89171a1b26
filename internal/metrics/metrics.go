// Package metrics : счётчики Prometheus для операций над версиями
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "docversions"

var (
	VersionsAppended = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "versions_appended_total", Help: "Number of appended versions by bump kind."},
		[]string{"bump"},
	)
	AppendConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "append_conflicts_total", Help: "Number of tag conflicts retried during append."},
	)
	Restores = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "restores_total", Help: "Number of restored versions."},
	)
	Deletions = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "versions_deleted_total", Help: "Number of deleted versions."},
	)
	Comparisons = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "comparisons_total", Help: "Number of comparisons by content diff status."},
		[]string{"status"},
	)
	DiffDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Name: "diff_duration_seconds", Help: "Duration of version comparisons.", Buckets: prometheus.DefBuckets},
	)
	SharesIssued = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "share_tokens_issued_total", Help: "Number of issued share tokens."},
	)
	ShareValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "share_validations_total", Help: "Number of share token validations by result."},
		[]string{"result"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(VersionsAppended)
	reg.MustRegister(AppendConflicts)
	reg.MustRegister(Restores)
	reg.MustRegister(Deletions)
	reg.MustRegister(Comparisons)
	reg.MustRegister(DiffDuration)
	reg.MustRegister(SharesIssued)
	reg.MustRegister(ShareValidations)
	reg.MustRegister(RateLimitRejected)
}
