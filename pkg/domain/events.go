package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRequestReceived EventType = "request_received"
	EventRequestSealed   EventType = "request_sealed"
	EventToolCall        EventType = "tool_call"
	EventToolReturn      EventType = "tool_return"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp     time.Time `json:"timestamp"`
	Type          EventType `json:"type"`
	RequestID     string    `json:"request_id"`
	CorrelationID string    `json:"correlation_id"`
}

// RequestEvent represents the arrival or the sealing of one request.
// Failure is set on sealing when the request ended in a protocol-level error.
type RequestEvent struct {
	EventBase
	Method   string        `json:"method"`
	Failure  *Failure      `json:"-"`
	Duration time.Duration `json:"duration,omitempty"`
}

// ToolEvent represents an outbound invocation.
type ToolEvent struct {
	EventBase
	ToolName string        `json:"tool_name"`
	IsError  bool          `json:"is_error,omitempty"`
	Kind     FailureKind   `json:"kind,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for gateway observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnRequestReceived func(context.Context, *RequestEvent)
	OnRequestSealed   func(context.Context, *RequestEvent)
	OnToolCall        func(context.Context, *ToolEvent)
	OnToolReturn      func(context.Context, *ToolEvent)
}

// CombineHooks fans each callback out to every non-nil callback of hooks, in order.
func CombineHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRequestReceived: func(ctx context.Context, e *RequestEvent) {
			for _, h := range hooks {
				if h.OnRequestReceived != nil {
					h.OnRequestReceived(ctx, e)
				}
			}
		},
		OnRequestSealed: func(ctx context.Context, e *RequestEvent) {
			for _, h := range hooks {
				if h.OnRequestSealed != nil {
					h.OnRequestSealed(ctx, e)
				}
			}
		},
		OnToolCall: func(ctx context.Context, e *ToolEvent) {
			for _, h := range hooks {
				if h.OnToolCall != nil {
					h.OnToolCall(ctx, e)
				}
			}
		},
		OnToolReturn: func(ctx context.Context, e *ToolEvent) {
			for _, h := range hooks {
				if h.OnToolReturn != nil {
					h.OnToolReturn(ctx, e)
				}
			}
		},
	}
}
