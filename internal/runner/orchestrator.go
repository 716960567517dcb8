// Package runner is the orchestration layer of a tools/call request: it decides whether
// and how an invocation may run, binds the context, and delegates the outbound call.
// It never touches the network itself.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/internal/runtime"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/execution"
	"github.com/aretw0/mcpgate/pkg/ports"
	"github.com/aretw0/mcpgate/pkg/registry"
)

// Executor performs the outbound call of a bound context.
type Executor interface {
	Execute(ctx context.Context, c execution.Context) domain.OutcomeRecord
}

// Orchestrator validates, guards, binds and delegates tools/call invocations.
type Orchestrator struct {
	catalog  *registry.Catalog
	executor Executor
	guard    ports.Guard
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithGuard sets the policy consulted before sensitive operations. Nil keeps AllowAll.
func WithGuard(g ports.Guard) Option {
	return func(o *Orchestrator) {
		if g != nil {
			o.guard = g
		}
	}
}

// WithHooks sets the lifecycle hooks fired around the outbound call.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an orchestrator.
func New(catalog *registry.Catalog, executor Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog:  catalog,
		executor: executor,
		guard:    ports.AllowAll(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Invoke runs one invocation against c and returns the most advanced context.
//
// A non-nil error means the invocation was refused before binding (unknown tool, argument
// mismatch, policy denial) or a lifecycle transition failed. Once the call was delegated,
// its outcome is appended to the returned context whatever it is, and the error is nil.
func (o *Orchestrator) Invoke(ctx context.Context, c execution.Context, name string, args domain.Arguments) (execution.Context, error) {
	d, ok := o.catalog.Lookup(name)
	if !ok {
		return c, domain.ContractViolation(domain.ReasonInvalidParams,
			fmt.Sprintf("unknown tool: %s", name),
			map[string]any{domain.KeyTool: name})
	}

	if err := Validate(d, args); err != nil {
		return c, err
	}

	if d.Sensitive {
		if err := o.checkGuard(ctx, d, args); err != nil {
			return c, err
		}
	}

	bound, err := c.Bind(d.Name, args)
	if err != nil {
		return c, err
	}

	event := &domain.ToolEvent{
		EventBase: domain.EventBase{
			Timestamp:     time.Now(),
			Type:          domain.EventToolCall,
			RequestID:     c.RequestID(),
			CorrelationID: logging.CorrelationID(ctx),
		},
		ToolName: d.Name,
	}
	if o.hooks.OnToolCall != nil {
		o.hooks.OnToolCall(ctx, event)
	}

	outcome := o.executor.Execute(ctx, bound)

	if o.hooks.OnToolReturn != nil {
		ret := *event
		ret.Timestamp = time.Now()
		ret.Type = domain.EventToolReturn
		ret.IsError = !outcome.Succeeded
		ret.Duration = outcome.Duration
		if outcome.Failure != nil {
			ret.Kind = outcome.Failure.Kind
		}
		o.hooks.OnToolReturn(ctx, &ret)
	}

	o.logger.Debug("tool executed", "tool", d.Name, "succeeded", outcome.Succeeded, "duration", outcome.Duration)

	appended, err := bound.Append(outcome)
	if err != nil {
		return bound, err
	}
	return appended, nil
}

func (o *Orchestrator) checkGuard(ctx context.Context, d domain.OperationDescriptor, args domain.Arguments) error {
	allowed, reason, err := o.guard(ctx, ports.GuardRequest{Operation: d.Clone(), Arguments: args.Clone()})
	if err != nil {
		f := domain.Wrap(domain.KindContractViolation, domain.ReasonInternal, err, "guard failed")
		f.Detail[domain.KeyTool] = d.Name
		return f
	}
	if !allowed {
		if reason == "" {
			reason = "denied by policy"
		}
		o.logger.Info("sensitive operation denied", "tool", d.Name, "reason", reason)
		return domain.ContractViolation(domain.ReasonPolicyDenied,
			fmt.Sprintf("%s: %s", d.Name, reason),
			map[string]any{domain.KeyTool: d.Name})
	}
	return nil
}

// Validate matches args against d closed-world and reports every problem at once:
// missing required names, names outside required ∪ optional, empty path parameters,
// and non-scalar values where a path or query string needs text.
func Validate(d domain.OperationDescriptor, args domain.Arguments) error {
	var missing, unknown, empty, invalid []string

	for _, p := range d.Required {
		if v, ok := args[p]; !ok || v == nil {
			missing = append(missing, p)
		}
	}

	for _, name := range args.Names() {
		v := args[name]
		if !d.Accepts(name) {
			unknown = append(unknown, name)
			continue
		}
		if v == nil {
			continue
		}
		placed := d.IsPathParam(name) || !d.Verb.HasBody()
		if placed && !runtime.IsScalar(v) {
			invalid = append(invalid, name)
			continue
		}
		if d.IsPathParam(name) && strings.TrimSpace(runtime.Scalar(v)) == "" {
			empty = append(empty, name)
		}
	}

	if len(missing)+len(unknown)+len(empty)+len(invalid) == 0 {
		return nil
	}

	detail := map[string]any{domain.KeyTool: d.Name}
	var parts []string
	add := func(key, label string, names []string) {
		if len(names) == 0 {
			return
		}
		slices.Sort(names)
		detail[key] = names
		parts = append(parts, fmt.Sprintf("%s: %s", label, strings.Join(names, ", ")))
	}
	add(domain.KeyMissing, "missing required arguments", missing)
	add(domain.KeyUnknown, "unknown arguments", unknown)
	add(domain.KeyEmpty, "empty path parameters", empty)
	add(domain.KeyInvalid, "arguments must be scalar", invalid)

	return domain.ContractViolation(domain.ReasonInvalidParams,
		fmt.Sprintf("invalid arguments for %s (%s)", d.Name, strings.Join(parts, "; ")),
		detail)
}
