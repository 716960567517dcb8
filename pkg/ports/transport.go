package ports

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrTimeout is returned (wrapped) by a Transport when the call did not complete in time.
	ErrTimeout = errors.New("outbound call timed out")
	// ErrConnection is returned (wrapped) by a Transport when the target could not be reached.
	ErrConnection = errors.New("outbound connection failed")
)

// OutboundRequest is a fully built call to a target resource.
type OutboundRequest struct {
	Verb    string
	URL     string
	Body    []byte
	Headers http.Header
}

// OutboundResponse is whatever the target answered, error statuses included.
type OutboundResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// Transport performs outbound calls.
// Implementations must honor ctx cancellation, must not retry, and must release the
// underlying connection before returning.
type Transport interface {
	Do(ctx context.Context, req OutboundRequest) (OutboundResponse, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req OutboundRequest) (OutboundResponse, error)

func (f TransportFunc) Do(ctx context.Context, req OutboundRequest) (OutboundResponse, error) {
	return f(ctx, req)
}
