/*
Package execution holds the per-request state container of the gateway.

A request starts as an open Context created by New. The open value can be bound to one
operation, can accumulate outcomes, and ends when Seal turns it into a Sealed value, which
exposes no mutators at all.

Every transition returns a new value. All values derived from the same New call share a
lineage, so an older handle cannot be used to rebind, to append out of order, or to mutate
after the request was sealed: those calls fail with a ContractViolation instead of being
silently accepted.
*/
package execution

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// lineage is shared by every value derived from one New call.
// A context is owned by a single request goroutine, so it needs no locking.
type lineage struct {
	createdAt time.Time
	bound     bool
	sealed    bool
	version   int
	latest    Context
}

// Binding is the one-time association of a context with an operation and its arguments.
type Binding struct {
	Operation string
	Arguments domain.Arguments
}

// Context is the open (mutable through transitions) state of one request.
// The zero value is not usable; every transition on it fails.
type Context struct {
	requestID string
	method    string
	binding   *Binding
	results   []domain.OutcomeRecord
	version   int
	line      *lineage
}

// New creates the context of a request. Both requestID and method must be non-blank.
func New(requestID, method string) (Context, error) {
	var missing []string
	if strings.TrimSpace(requestID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(method) == "" {
		missing = append(missing, "method")
	}
	if len(missing) > 0 {
		return Context{}, domain.ContractViolation(domain.ReasonInvalidRequest,
			"request id and method must be non-empty",
			map[string]any{domain.KeyMissing: missing})
	}

	c := Context{
		requestID: requestID,
		method:    method,
		line:      &lineage{createdAt: time.Now()},
	}
	c.line.latest = c
	return c, nil
}

// Bind associates the context with an operation. It succeeds at most once per lineage.
func (c Context) Bind(operation string, args domain.Arguments) (Context, error) {
	if err := c.usable("bind"); err != nil {
		return Context{}, err
	}
	if c.line.bound {
		return Context{}, violation("bind", "operation already bound", c.boundName())
	}
	if strings.TrimSpace(operation) == "" {
		return Context{}, violation("bind", "operation name is empty", "")
	}
	if err := c.latest("bind"); err != nil {
		return Context{}, err
	}

	c.line.bound = true
	c.binding = &Binding{Operation: operation, Arguments: cloneArgs(args)}
	return c.advance(), nil
}

// Append records the outcome of the bound operation.
func (c Context) Append(outcome domain.OutcomeRecord) (Context, error) {
	if err := c.usable("append"); err != nil {
		return Context{}, err
	}
	if c.binding == nil {
		return Context{}, violation("append", "no operation bound", "")
	}
	if err := c.latest("append"); err != nil {
		return Context{}, err
	}

	results := make([]domain.OutcomeRecord, len(c.results), len(c.results)+1)
	copy(results, c.results)
	c.results = append(results, outcome.Clone())
	return c.advance(), nil
}

// Seal ends the lifecycle. A second Seal on any handle of the lineage fails.
func (c Context) Seal() (Sealed, error) {
	if err := c.usable("seal"); err != nil {
		return Sealed{}, err
	}
	if err := c.latest("seal"); err != nil {
		return Sealed{}, err
	}

	c.line.sealed = true
	return Sealed{ctx: c, sealedAt: time.Now()}, nil
}

func (c Context) usable(op string) error {
	if c.line == nil {
		return violation(op, "context was not created with New", "")
	}
	if c.line.sealed {
		return violation(op, "context is sealed", c.boundName())
	}
	return nil
}

// latest rejects handles that predate the most recent transition of the lineage.
func (c Context) latest(op string) error {
	if c.version != c.line.version {
		return violation(op, "stale context handle", c.boundName())
	}
	return nil
}

func (c Context) advance() Context {
	c.line.version++
	c.version = c.line.version
	c.line.latest = c
	return c
}

// Latest returns the most advanced handle of c's lineage. The owner of a request uses it
// to seal after an abnormal exit left it holding an older handle.
func (c Context) Latest() Context {
	if c.line == nil {
		return c
	}
	return c.line.latest
}

func (c Context) boundName() string {
	if c.binding == nil {
		return ""
	}
	return c.binding.Operation
}

func violation(op, msg, tool string) *domain.Failure {
	f := domain.ContractViolation(domain.ReasonLifecycle, fmt.Sprintf("%s: %s", op, msg),
		map[string]any{domain.KeyOperation: op})
	if tool != "" {
		f.Detail[domain.KeyTool] = tool
	}
	return f
}

// RequestID returns the opaque rendering of the envelope id.
func (c Context) RequestID() string { return c.requestID }

// Method returns the dispatched protocol method.
func (c Context) Method() string { return c.method }

// Binding returns a copy of the binding, if any.
func (c Context) Binding() (Binding, bool) {
	if c.binding == nil {
		return Binding{}, false
	}
	return Binding{Operation: c.binding.Operation, Arguments: cloneArgs(c.binding.Arguments)}, true
}

// Results returns a copy of the recorded outcomes in invocation order.
func (c Context) Results() []domain.OutcomeRecord {
	out := make([]domain.OutcomeRecord, len(c.results))
	for i, r := range c.results {
		out[i] = r.Clone()
	}
	return out
}

// IsSealed reports whether the lineage has been sealed through any handle.
func (c Context) IsSealed() bool {
	return c.line != nil && c.line.sealed
}

// CreatedAt returns the creation time of the lineage.
func (c Context) CreatedAt() time.Time {
	if c.line == nil {
		return time.Time{}
	}
	return c.line.createdAt
}

func (c Context) String() string {
	return fmt.Sprintf("Context(id=%s, method=%s, bound=%q, results=%d, sealed=%t)",
		c.requestID, c.method, c.boundName(), len(c.results), c.IsSealed())
}

func cloneArgs(args domain.Arguments) domain.Arguments {
	if args == nil {
		return domain.Arguments{}
	}
	out := make(domain.Arguments, len(args))
	for k, v := range args {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies the JSON containers of v. Scalars are immutable and shared.
func cloneValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
