package mcpgate

import (
	"log/slog"
	"time"

	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/ports"
)

// DefaultTimeout bounds every outbound call unless WithTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

// Option defines a functional option for configuring the Gateway.
type Option func(*Gateway)

// WithTransport replaces the outbound transport (default: pkg/adapters/rest).
func WithTransport(t ports.Transport) Option {
	return func(g *Gateway) {
		g.transport = t
	}
}

// WithTimeout sets the per-call timeout. It must be positive.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithGuard sets the policy consulted before sensitive operations (default: allow).
func WithGuard(guard ports.Guard) Option {
	return func(g *Gateway) {
		g.guard = guard
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Gateway) {
		g.hooks = hooks
	}
}

// WithServerInfo overrides the name and version announced by initialize.
func WithServerInfo(name, version string) Option {
	return func(g *Gateway) {
		g.serverName = name
		g.serverVersion = version
	}
}
