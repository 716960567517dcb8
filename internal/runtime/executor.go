package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/execution"
	"github.com/aretw0/mcpgate/pkg/ports"
	"github.com/aretw0/mcpgate/pkg/registry"
)

// Failure modes reported in data.failureMode of transport failures.
const (
	ModeTimeout    = "timeout"
	ModeCanceled   = "canceled"
	ModeConnection = "connection"
)

// Executor performs the outbound call of a bound context and classifies the result.
// It does not validate and does not apply policy: reaching it with an unbound context or
// an operation missing from the catalog is a programming error and panics.
type Executor struct {
	catalog   *registry.Catalog
	transport ports.Transport
	timeout   time.Duration
	logger    *slog.Logger
}

// NewExecutor creates an executor. timeout bounds every outbound call.
func NewExecutor(catalog *registry.Catalog, transport ports.Transport, timeout time.Duration, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{catalog: catalog, transport: transport, timeout: timeout, logger: logger}
}

// Timeout returns the per-call timeout.
func (e *Executor) Timeout() time.Duration { return e.timeout }

// Execute runs the bound operation once. Success, upstream failure and transport failure
// are all reported as outcomes; nothing is retried.
func (e *Executor) Execute(ctx context.Context, c execution.Context) domain.OutcomeRecord {
	binding, ok := c.Binding()
	if !ok {
		panic(fmt.Sprintf("runtime: execute called on unbound context %s", c))
	}
	d, ok := e.catalog.Lookup(binding.Operation)
	if !ok {
		panic(fmt.Sprintf("runtime: bound operation %q is not in the catalog", binding.Operation))
	}

	req, err := BuildRequest(d, binding.Arguments)
	if err != nil {
		panic(fmt.Sprintf("runtime: %v", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	resp, err := e.transport.Do(callCtx, req)
	elapsed := time.Since(started)

	e.logger.Debug("outbound call",
		"tool", d.Name, "verb", req.Verb, "url", req.URL,
		"status", resp.Status, "duration", elapsed, "error", err)

	if err != nil {
		return domain.FailedOutcome(d.Name, e.transportFailure(ctx, callCtx, d.Name, err), domain.Payload{}, elapsed)
	}

	payload := domain.Payload{Status: resp.Status, ContentType: resp.ContentType, Body: resp.Body}
	if resp.Status >= 400 {
		f := domain.UpstreamFailure(fmt.Sprintf("%s returned HTTP %d", d.Name, resp.Status), map[string]any{
			domain.KeyTool:   d.Name,
			domain.KeyStatus: resp.Status,
		})
		return domain.FailedOutcome(d.Name, f, payload, elapsed)
	}
	return domain.SucceededOutcome(d.Name, payload, elapsed)
}

func (e *Executor) transportFailure(parent, call context.Context, tool string, err error) *domain.Failure {
	detail := map[string]any{domain.KeyTool: tool}

	switch {
	case parent.Err() != nil:
		detail[domain.KeyFailureMode] = ModeCanceled
		f := domain.TransportFailure(domain.ReasonCanceled, fmt.Sprintf("%s was canceled by the caller", tool), detail)
		f.Cause = err
		return f

	case errors.Is(err, ports.ErrTimeout), errors.Is(err, context.DeadlineExceeded), call.Err() != nil:
		detail[domain.KeyFailureMode] = ModeTimeout
		detail[domain.KeyTimeoutSeconds] = e.timeout.Seconds()
		f := domain.TransportFailure(domain.ReasonTimeout,
			fmt.Sprintf("%s did not respond within %s", tool, e.timeout), detail)
		f.Cause = err
		return f

	default:
		detail[domain.KeyFailureMode] = ModeConnection
		detail[domain.KeyError] = err.Error()
		f := domain.TransportFailure(domain.ReasonConnection, fmt.Sprintf("%s could not be reached", tool), detail)
		f.Cause = err
		return f
	}
}
