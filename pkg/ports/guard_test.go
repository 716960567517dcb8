package ports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/ports"
)

func guardRequest(name string, sensitive bool) ports.GuardRequest {
	return ports.GuardRequest{Operation: domain.OperationDescriptor{Name: name, Sensitive: sensitive}}
}

func TestAllowAll(t *testing.T) {
	allowed, reason, err := ports.AllowAll()(context.Background(), guardRequest("delete_post", true))
	assert.NoError(t, err)
	assert.True(t, allowed)
	assert.Empty(t, reason)
}

func TestDenySensitive(t *testing.T) {
	guard := ports.DenySensitive()

	allowed, reason, err := guard(context.Background(), guardRequest("delete_post", true))
	assert.NoError(t, err)
	assert.False(t, allowed)
	assert.Contains(t, reason, "delete_post")

	allowed, _, err = guard(context.Background(), guardRequest("get_post", false))
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestMultiGuard(t *testing.T) {
	boom := errors.New("policy store unavailable")
	var visited []string
	record := func(name string) ports.Guard {
		return func(context.Context, ports.GuardRequest) (bool, string, error) {
			visited = append(visited, name)
			return true, "", nil
		}
	}

	t.Run("First denial wins", func(t *testing.T) {
		visited = nil
		guard := ports.MultiGuard(record("a"), ports.DenyOperations("update_post"), record("b"))
		allowed, reason, err := guard(context.Background(), guardRequest("update_post", true))
		assert.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, "operation update_post is disabled", reason)
		assert.Equal(t, []string{"a"}, visited)
	})

	t.Run("Errors are not denials", func(t *testing.T) {
		failing := func(context.Context, ports.GuardRequest) (bool, string, error) { return false, "", boom }
		_, _, err := ports.MultiGuard(nil, failing)(context.Background(), guardRequest("delete_post", true))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Empty chain allows", func(t *testing.T) {
		allowed, _, err := ports.MultiGuard()(context.Background(), guardRequest("delete_post", true))
		assert.NoError(t, err)
		assert.True(t, allowed)
	})
}
