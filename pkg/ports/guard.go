package ports

import (
	"context"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// GuardRequest is what a Guard sees: the descriptor and the already validated arguments.
type GuardRequest struct {
	Operation domain.OperationDescriptor
	Arguments domain.Arguments
}

// Guard decides whether a sensitive operation may proceed.
// It returns false with a human readable reason to deny. A non-nil error means the
// guard itself failed, which is not the same as a denial.
type Guard func(ctx context.Context, req GuardRequest) (allowed bool, reason string, err error)

// MultiGuard chains guards. The first denial or error wins.
func MultiGuard(guards ...Guard) Guard {
	return func(ctx context.Context, req GuardRequest) (bool, string, error) {
		for _, guard := range guards {
			if guard == nil {
				continue
			}
			allowed, reason, err := guard(ctx, req)
			if err != nil {
				return false, "", err
			}
			if !allowed {
				return false, reason, nil
			}
		}
		return true, "", nil
	}
}

// AllowAll permits everything. It is the default guard.
func AllowAll() Guard {
	return func(context.Context, GuardRequest) (bool, string, error) {
		return true, "", nil
	}
}

// DenySensitive refuses every operation flagged as sensitive.
func DenySensitive() Guard {
	return func(_ context.Context, req GuardRequest) (bool, string, error) {
		if req.Operation.Sensitive {
			return false, "operation " + req.Operation.Name + " is marked sensitive and sensitive operations are disabled", nil
		}
		return true, "", nil
	}
}

// DenyOperations refuses the named operations.
func DenyOperations(names ...string) Guard {
	deny := make(map[string]struct{}, len(names))
	for _, n := range names {
		deny[n] = struct{}{}
	}
	return func(_ context.Context, req GuardRequest) (bool, string, error) {
		if _, ok := deny[req.Operation.Name]; ok {
			return false, "operation " + req.Operation.Name + " is disabled", nil
		}
		return true, "", nil
	}
}
