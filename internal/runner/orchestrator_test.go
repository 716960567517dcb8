package runner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcpgate/internal/runner"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/execution"
	"github.com/aretw0/mcpgate/pkg/ports"
	"github.com/aretw0/mcpgate/pkg/registry"
	"github.com/aretw0/mcpgate/pkg/registry/domains"
)

type stubExecutor struct {
	calls   int
	outcome domain.OutcomeRecord
}

func (s *stubExecutor) Execute(_ context.Context, c execution.Context) domain.OutcomeRecord {
	s.calls++
	b, _ := c.Binding()
	out := s.outcome
	out.Operation = b.Operation
	return out
}

func setup(t *testing.T, opts ...runner.Option) (*runner.Orchestrator, *stubExecutor) {
	t.Helper()
	catalog, err := domains.Default()
	require.NoError(t, err)
	exec := &stubExecutor{outcome: domain.SucceededOutcome("", domain.Payload{Status: 200, Body: []byte(`{"id":1}`)}, 0)}
	return runner.New(catalog, exec, opts...), exec
}

func newContext(t *testing.T) execution.Context {
	t.Helper()
	c, err := execution.New("1", "tools/call")
	require.NoError(t, err)
	return c
}

func requireInvalidParams(t *testing.T, err error) *domain.Failure {
	t.Helper()
	require.Error(t, err)
	f := domain.Classify(err)
	assert.Equal(t, domain.KindContractViolation, f.Kind)
	assert.Equal(t, domain.ReasonInvalidParams, f.Reason)
	return f
}

func TestInvoke_Success(t *testing.T) {
	o, exec := setup(t)
	c, err := o.Invoke(context.Background(), newContext(t), "get_post", domain.Arguments{"id": "1"})
	require.NoError(t, err)

	assert.Equal(t, 1, exec.calls)
	binding, ok := c.Binding()
	require.True(t, ok)
	assert.Equal(t, "get_post", binding.Operation)

	results := c.Results()
	require.Len(t, results, 1)
	assert.True(t, results[0].Succeeded)
}

func TestInvoke_UnknownTool(t *testing.T) {
	o, exec := setup(t)
	c, err := o.Invoke(context.Background(), newContext(t), "get_nothing", domain.Arguments{})

	f := requireInvalidParams(t, err)
	assert.Equal(t, "get_nothing", f.Detail[domain.KeyTool])
	assert.Zero(t, exec.calls)
	_, bound := c.Binding()
	assert.False(t, bound)
}

func TestInvoke_MissingArgument(t *testing.T) {
	o, exec := setup(t)
	c, err := o.Invoke(context.Background(), newContext(t), "get_post", domain.Arguments{})

	f := requireInvalidParams(t, err)
	assert.Equal(t, []string{"id"}, f.Detail[domain.KeyMissing])
	assert.Zero(t, exec.calls)
	_, bound := c.Binding()
	assert.False(t, bound)
}

func TestInvoke_UnknownArgumentRejectedEvenWhenRequiredPresent(t *testing.T) {
	o, exec := setup(t)
	c, err := o.Invoke(context.Background(), newContext(t), "get_post", domain.Arguments{"id": 1, "foo": "bar"})

	f := requireInvalidParams(t, err)
	assert.Equal(t, []string{"foo"}, f.Detail[domain.KeyUnknown])
	assert.NotContains(t, f.Detail, domain.KeyMissing)
	assert.Zero(t, exec.calls)

	// The context is still bindable: a rejected call leaves nothing behind.
	_, err = c.Bind("get_post", domain.Arguments{"id": 1})
	assert.NoError(t, err)
}

func TestInvoke_CollectsEveryProblem(t *testing.T) {
	o, _ := setup(t)
	_, err := o.Invoke(context.Background(), newContext(t), "get_comments", domain.Arguments{"postId": " ", "x": 1, "y": 2})

	f := requireInvalidParams(t, err)
	assert.Equal(t, []string{"x", "y"}, f.Detail[domain.KeyUnknown])
	assert.Equal(t, []string{"postId"}, f.Detail[domain.KeyEmpty])
	assert.Contains(t, f.Message, "unknown arguments: x, y")
}

func TestInvoke_NonScalarQueryValue(t *testing.T) {
	o, _ := setup(t)
	_, err := o.Invoke(context.Background(), newContext(t), "get_weather", domain.Arguments{
		"latitude":  map[string]any{"deg": 40},
		"longitude": "-74.0",
	})
	f := requireInvalidParams(t, err)
	assert.Equal(t, []string{"latitude"}, f.Detail[domain.KeyInvalid])
}

func TestInvoke_NullCountsAsMissing(t *testing.T) {
	o, _ := setup(t)
	_, err := o.Invoke(context.Background(), newContext(t), "get_post", domain.Arguments{"id": nil})
	f := requireInvalidParams(t, err)
	assert.Equal(t, []string{"id"}, f.Detail[domain.KeyMissing])
}

func TestInvoke_BodyValuesMayBeStructured(t *testing.T) {
	o, exec := setup(t)
	_, err := o.Invoke(context.Background(), newContext(t), "create_post", domain.Arguments{
		"title":  "t",
		"body":   map[string]any{"rich": true},
		"userId": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, exec.calls)
}

func TestInvoke_GuardOnlyForSensitiveOperations(t *testing.T) {
	var guarded []string
	guard := func(_ context.Context, req ports.GuardRequest) (bool, string, error) {
		guarded = append(guarded, req.Operation.Name)
		return true, "", nil
	}
	o, _ := setup(t, runner.WithGuard(guard))

	_, err := o.Invoke(context.Background(), newContext(t), "get_post", domain.Arguments{"id": "1"})
	require.NoError(t, err)
	_, err = o.Invoke(context.Background(), newContext(t), "delete_post", domain.Arguments{"id": "1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"delete_post"}, guarded)
}

func TestInvoke_DefaultGuardAllowsSensitive(t *testing.T) {
	o, exec := setup(t)
	_, err := o.Invoke(context.Background(), newContext(t), "delete_post", domain.Arguments{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, exec.calls)
}

func TestInvoke_GuardDenialIsDistinctFromMalformed(t *testing.T) {
	o, exec := setup(t, runner.WithGuard(ports.DenySensitive()))
	c, err := o.Invoke(context.Background(), newContext(t), "delete_post", domain.Arguments{"id": "1"})

	require.Error(t, err)
	f := domain.Classify(err)
	assert.Equal(t, domain.KindContractViolation, f.Kind)
	assert.Equal(t, domain.ReasonPolicyDenied, f.Reason)
	assert.Equal(t, "delete_post", f.Detail[domain.KeyTool])
	assert.Zero(t, exec.calls)
	_, bound := c.Binding()
	assert.False(t, bound)

	// Malformed arguments are reported before the guard is consulted.
	_, err = o.Invoke(context.Background(), newContext(t), "delete_post", domain.Arguments{})
	requireInvalidParams(t, err)
}

func TestInvoke_GuardErrorIsInternal(t *testing.T) {
	boom := errors.New("policy backend down")
	o, _ := setup(t, runner.WithGuard(func(context.Context, ports.GuardRequest) (bool, string, error) {
		return false, "", boom
	}))

	_, err := o.Invoke(context.Background(), newContext(t), "update_post", domain.Arguments{
		"id": "1", "title": "t", "body": "b", "userId": "1",
	})
	require.Error(t, err)
	f := domain.Classify(err)
	assert.Equal(t, domain.ReasonInternal, f.Reason)
	assert.ErrorIs(t, err, boom)
}

func TestInvoke_FailedOutcomeIsAppended(t *testing.T) {
	o, exec := setup(t)
	exec.outcome = domain.FailedOutcome("", domain.TransportFailure(domain.ReasonTimeout, "slow", nil), domain.Payload{}, 0)

	c, err := o.Invoke(context.Background(), newContext(t), "get_post", domain.Arguments{"id": "1"})
	require.NoError(t, err)
	results := c.Results()
	require.Len(t, results, 1)
	assert.False(t, results[0].Succeeded)
	assert.Equal(t, domain.KindTransportFailure, results[0].Failure.Kind)
}

func TestInvoke_RebindingFails(t *testing.T) {
	o, _ := setup(t)
	c, err := o.Invoke(context.Background(), newContext(t), "get_post", domain.Arguments{"id": "1"})
	require.NoError(t, err)

	_, err = o.Invoke(context.Background(), c, "get_user", domain.Arguments{"id": "1"})
	require.Error(t, err)
	assert.Equal(t, domain.ReasonLifecycle, domain.Classify(err).Reason)
}

func TestInvoke_FiresHooks(t *testing.T) {
	var events []domain.ToolEvent
	hooks := domain.LifecycleHooks{
		OnToolCall:   func(_ context.Context, e *domain.ToolEvent) { events = append(events, *e) },
		OnToolReturn: func(_ context.Context, e *domain.ToolEvent) { events = append(events, *e) },
	}
	o, _ := setup(t, runner.WithHooks(hooks))

	_, err := o.Invoke(context.Background(), newContext(t), "get_user", domain.Arguments{"id": "2"})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, domain.EventToolCall, events[0].Type)
	assert.Equal(t, domain.EventToolReturn, events[1].Type)
	assert.Equal(t, "get_user", events[1].ToolName)
	assert.False(t, events[1].IsError)
	assert.Equal(t, "1", events[1].RequestID)
}

func TestValidate_EmptyDescriptorAcceptsNothing(t *testing.T) {
	c, err := registry.New(domain.OperationDescriptor{Name: "get_users", BaseURL: "http://h", Template: "/users", Verb: domain.VerbGet})
	require.NoError(t, err)
	d, _ := c.Lookup("get_users")

	assert.NoError(t, runner.Validate(d, nil))
	requireInvalidParams(t, runner.Validate(d, domain.Arguments{"page": "2"}))
}
