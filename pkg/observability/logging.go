package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRequestReceived: func(ctx context.Context, e *domain.RequestEvent) {
			logger.DebugContext(ctx, "request received",
				"correlation_id", e.CorrelationID, "request_id", e.RequestID, "method", e.Method)
		},
		OnRequestSealed: func(ctx context.Context, e *domain.RequestEvent) {
			if e.Failure != nil {
				logger.WarnContext(ctx, "request failed",
					"correlation_id", e.CorrelationID, "request_id", e.RequestID, "method", e.Method,
					"kind", e.Failure.Kind, "reason", e.Failure.Reason, "duration", e.Duration, "error", e.Failure)
				return
			}
			logger.InfoContext(ctx, "request handled",
				"correlation_id", e.CorrelationID, "request_id", e.RequestID, "method", e.Method, "duration", e.Duration)
		},
		OnToolCall: func(ctx context.Context, e *domain.ToolEvent) {
			logger.DebugContext(ctx, "tool call", "correlation_id", e.CorrelationID, "tool", e.ToolName)
		},
		OnToolReturn: func(ctx context.Context, e *domain.ToolEvent) {
			logger.InfoContext(ctx, "tool return",
				"correlation_id", e.CorrelationID, "tool", e.ToolName, "is_error", e.IsError, "kind", e.Kind, "duration", e.Duration)
		},
	}
}
