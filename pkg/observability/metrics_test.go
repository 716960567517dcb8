package observability_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/observability"
	"github.com/aretw0/mcpgate/pkg/protocol"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRequestReceived(ctx, &domain.RequestEvent{Method: "tools/call"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveRequests))

	hooks.OnToolCall(ctx, &domain.ToolEvent{ToolName: "get_weather"})
	hooks.OnToolReturn(ctx, &domain.ToolEvent{ToolName: "get_weather", IsError: true, Kind: domain.KindTransportFailure, Duration: time.Second})
	hooks.OnRequestSealed(ctx, &domain.RequestEvent{
		Method:   "tools/call",
		Failure:  domain.TransportFailure(domain.ReasonTimeout, "slow", nil),
		Duration: time.Second,
	})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveRequests))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("get_weather")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolErrors.WithLabelValues("get_weather", "transport_failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("tools/call", "transport_failure")))

	hooks.OnRequestReceived(ctx, &domain.RequestEvent{Method: "tools/list"})
	hooks.OnRequestSealed(ctx, &domain.RequestEvent{Method: "tools/list"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("tools/list", observability.OutcomeOK)))
}

func TestMetrics_UnknownMethodsShareOneSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	failure := domain.ContractViolation(domain.ReasonMethodNotFound, "no such method", nil)
	for i := range 50 {
		method := fmt.Sprintf("bogus/%d", i)
		hooks.OnRequestReceived(ctx, &domain.RequestEvent{Method: method})
		hooks.OnRequestSealed(ctx, &domain.RequestEvent{Method: method, Failure: failure})
	}
	hooks.OnRequestSealed(ctx, &domain.RequestEvent{Method: protocol.MethodInitialize})

	assert.Equal(t, 2, testutil.CollectAndCount(m.Requests))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.Requests.WithLabelValues(observability.MethodUnknown, "contract_violation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("initialize", observability.OutcomeOK)))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	m.Invocations.WithLabelValues("get_post").Inc()

	rec := httptest.NewRecorder()
	observability.Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `mcpgate_tool_invocations_total{tool="get_post"} 1`)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LogHooks(logging.NewWriter(&buf, slog.LevelDebug, logging.FormatText))
	ctx := context.Background()

	hooks.OnRequestSealed(ctx, &domain.RequestEvent{
		EventBase: domain.EventBase{RequestID: "7", CorrelationID: "abc"},
		Method:    "tools/call",
		Failure:   domain.ContractViolation(domain.ReasonInvalidParams, "bad", nil),
	})
	hooks.OnToolReturn(ctx, &domain.ToolEvent{ToolName: "get_post"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "request failed")
	assert.Contains(t, lines[0], "correlation_id=abc")
	assert.Contains(t, lines[0], "kind=contract_violation")
	assert.Contains(t, lines[0], "err=")
	assert.Contains(t, lines[1], "tool=get_post")
}
