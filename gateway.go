package mcpgate

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/internal/runner"
	"github.com/aretw0/mcpgate/internal/runtime"
	"github.com/aretw0/mcpgate/pkg/adapters/rest"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/execution"
	"github.com/aretw0/mcpgate/pkg/ports"
	"github.com/aretw0/mcpgate/pkg/protocol"
	"github.com/aretw0/mcpgate/pkg/registry"
)

// Gateway is the single entry point of the request core. It is safe for concurrent use:
// every call to Handle owns its execution context, and the catalog is read-only.
type Gateway struct {
	catalog      *registry.Catalog
	orchestrator *runner.Orchestrator

	transport     ports.Transport
	timeout       time.Duration
	guard         ports.Guard
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	serverName    string
	serverVersion string
}

// New builds a gateway over an already validated catalog.
// It fails with a ConfigurationError when the catalog is missing or the timeout is not positive.
func New(catalog *registry.Catalog, opts ...Option) (*Gateway, error) {
	g := &Gateway{
		catalog:       catalog,
		timeout:       DefaultTimeout,
		serverName:    ServerName,
		serverVersion: strings.TrimSpace(Version),
	}
	for _, opt := range opts {
		opt(g)
	}

	if catalog == nil {
		return nil, domain.ConfigurationError(domain.ReasonInvalidCatalog, "operation catalog is required", nil)
	}
	if g.timeout <= 0 {
		return nil, domain.ConfigurationError(domain.ReasonInvalidConfig,
			fmt.Sprintf("outbound timeout must be positive, got %s", g.timeout), nil)
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	if g.transport == nil {
		g.transport = rest.New(rest.WithUserAgent(g.serverName + "/" + g.serverVersion))
	}

	executor := runtime.NewExecutor(catalog, g.transport, g.timeout, g.logger)
	g.orchestrator = runner.New(catalog, executor,
		runner.WithGuard(g.guard),
		runner.WithHooks(g.hooks),
		runner.WithLogger(g.logger),
	)
	return g, nil
}

// Catalog returns the read-only operation catalog.
func (g *Gateway) Catalog() *registry.Catalog { return g.catalog }

// Timeout returns the per-call timeout.
func (g *Gateway) Timeout() time.Duration { return g.timeout }

// Handle processes one decoded envelope and returns the sealed context with the response.
//
// The context is sealed on every path, panics included. The only exception is a request
// whose id or method is empty: no context can be created for it, so the zero Sealed
// (Valid() == false) is returned with a -32600 error.
func (g *Gateway) Handle(ctx context.Context, req protocol.Request) (sealed execution.Sealed, resp protocol.Response) {
	started := time.Now()
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	base := domain.EventBase{
		Timestamp:     started,
		Type:          domain.EventRequestReceived,
		RequestID:     req.ID.String(),
		CorrelationID: logging.CorrelationID(ctx),
	}
	if g.hooks.OnRequestReceived != nil {
		g.hooks.OnRequestReceived(ctx, &domain.RequestEvent{EventBase: base, Method: req.Method})
	}

	var failure *domain.Failure
	defer func() {
		if g.hooks.OnRequestSealed == nil {
			return
		}
		ev := &domain.RequestEvent{EventBase: base, Method: req.Method, Failure: failure, Duration: time.Since(started)}
		ev.Timestamp = time.Now()
		ev.Type = domain.EventRequestSealed
		g.hooks.OnRequestSealed(ctx, ev)
	}()

	c, err := execution.New(req.ID.String(), req.Method)
	if err != nil {
		failure = domain.Classify(err)
		return execution.Sealed{}, protocol.ErrorResponse(req.ID, failure)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		failure = domain.Wrap(domain.KindContractViolation, domain.ReasonInternal,
			fmt.Errorf("panic: %v", r), "internal error")
		g.logger.Error("request handler panicked",
			"correlation_id", base.CorrelationID, "request_id", base.RequestID, "method", req.Method,
			"panic", r, "stack", string(debug.Stack()))
		sealed, _ = c.Latest().Seal()
		resp = protocol.ErrorResponse(req.ID, failure)
	}()

	last, result, err := g.dispatch(ctx, c, req)

	sealed, sealErr := last.Latest().Seal()
	if err == nil {
		err = sealErr
	}
	if err != nil {
		// The single point where unclassified errors become ContractViolation/internal.
		failure = domain.Classify(err)
		return sealed, protocol.ErrorResponse(req.ID, failure)
	}
	return sealed, protocol.ResultResponse(req.ID, result)
}

func (g *Gateway) dispatch(ctx context.Context, c execution.Context, req protocol.Request) (execution.Context, any, error) {
	r, err := parseRequest(req)
	if err != nil {
		return c, nil, err
	}

	switch r := r.(type) {
	case handshakeRequest:
		return c, protocol.NewInitializeResult(g.serverName, g.serverVersion), nil
	case listRequest:
		return c, protocol.NewListToolsResult(g.catalog.All()), nil
	case callRequest:
		return g.call(ctx, c, r)
	default:
		panic(fmt.Sprintf("mcpgate: unhandled request type %T", r))
	}
}

func (g *Gateway) call(ctx context.Context, c execution.Context, r callRequest) (execution.Context, any, error) {
	c, err := g.orchestrator.Invoke(ctx, c, r.params.Name, domain.Arguments(r.params.Arguments))
	if err != nil {
		return c, nil, err
	}

	results := c.Results()
	outcome := results[len(results)-1]
	switch {
	case outcome.Succeeded:
		return c, protocol.TextResult(renderPayload(outcome.Payload), false), nil
	case !outcome.Failure.Fatal():
		return c, protocol.TextResult(renderUpstreamFailure(outcome), true), nil
	default:
		return c, nil, outcome.Failure
	}
}
