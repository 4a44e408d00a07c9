package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Binding results recorded by BindingsTotal.
const (
	ResultAttached = "attached"
	ResultReplaced = "replaced"
	ResultFailed   = "failed"
)

var (
	BindingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pivot_bindings_total",
			Help: "Total number of entity bindings processed by registration, by result",
		},
		[]string{"entity", "result"},
	)

	InvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pivot_invocations_total",
			Help: "Total number of access point invocations",
		},
		[]string{"entity", "function"},
	)

	InvocationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pivot_invocation_errors_total",
			Help: "Total number of access point invocations that returned an error",
		},
		[]string{"entity", "function"},
	)

	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pivot_provider_calls_total",
			Help: "Total number of calls made to underlying query providers",
		},
		[]string{"entity", "function"},
	)

	InvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pivot_invocation_duration_seconds",
			Help:    "Time taken by access point invocations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity", "function"},
	)
)
