package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/protocol"
)

const namespace = "mcpgate"

// OutcomeOK labels requests and invocations that ended without a failure.
const OutcomeOK = "ok"

// MethodUnknown is the method label of every request outside the dispatch set.
const MethodUnknown = "unknown"

// Metrics holds the gateway collectors.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ActiveRequests  prometheus.Gauge
	Invocations     *prometheus.CounterVec
	ToolErrors      *prometheus.CounterVec
	ToolDuration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of sealed requests by method and outcome",
		}, []string{"method", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of request handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "Number of requests currently being handled",
		}),
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_invocations_total",
			Help:      "Total number of outbound tool invocations",
		}, []string{"tool"}),
		ToolErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_errors_total",
			Help:      "Total number of failed tool invocations by failure kind",
		}, []string{"tool", "kind"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "Duration of outbound tool invocations",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"tool"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.RequestDuration, m.ActiveRequests, m.Invocations, m.ToolErrors, m.ToolDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRequestReceived: func(_ context.Context, _ *domain.RequestEvent) {
			m.ActiveRequests.Inc()
		},
		OnRequestSealed: func(_ context.Context, e *domain.RequestEvent) {
			m.ActiveRequests.Dec()
			outcome := OutcomeOK
			if e.Failure != nil {
				outcome = string(e.Failure.Kind)
			}
			method := methodLabel(e.Method)
			m.Requests.WithLabelValues(method, outcome).Inc()
			m.RequestDuration.WithLabelValues(method).Observe(e.Duration.Seconds())
		},
		OnToolCall: func(_ context.Context, e *domain.ToolEvent) {
			m.Invocations.WithLabelValues(e.ToolName).Inc()
		},
		OnToolReturn: func(_ context.Context, e *domain.ToolEvent) {
			m.ToolDuration.WithLabelValues(e.ToolName).Observe(e.Duration.Seconds())
			if e.IsError {
				m.ToolErrors.WithLabelValues(e.ToolName, string(e.Kind)).Inc()
			}
		},
	}
}

// methodLabel keeps client-chosen method strings out of label values.
func methodLabel(method string) string {
	if protocol.KnownMethod(method) {
		return method
	}
	return MethodUnknown
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
