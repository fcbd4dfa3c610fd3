// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// SubscriptionsTotal tracks subscribe attempts by outcome.
	SubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriptions_total",
			Help: "Subscribe attempts by outcome",
		},
		[]string{"outcome"},
	)

	// MessagesTotal tracks chat messages by role.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Chat messages appended",
		},
		[]string{"role"},
	)

	// IntentTotal tracks classified reply kinds.
	IntentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_intent_total",
			Help: "Classified reply kinds",
		},
		[]string{"kind"},
	)

	// SessionsActive tracks live chat sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Number of live chat sessions",
		},
	)

	// InvoicesTotal tracks issued Early-Bird invoices.
	InvoicesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "invoices_total",
			Help: "Early-Bird invoices issued",
		},
	)

	// PaymentsConfirmedTotal tracks confirmed payments.
	PaymentsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_confirmed_total",
			Help: "Early-Bird payments confirmed",
		},
	)

	// LLMCompletionsTotal tracks model-backed replies by provider.
	LLMCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_completions_total",
			Help: "Model-backed chat completions",
		},
		[]string{"provider"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}
