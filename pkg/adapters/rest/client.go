// Package rest implements ports.Transport over net/http.
package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/aretw0/mcpgate/pkg/ports"
)

// DefaultMaxBodyBytes caps how much of a target response is read.
const DefaultMaxBodyBytes int64 = 10 << 20 // 10 MiB

// Client performs outbound calls. It never retries; the call deadline comes from ctx.
type Client struct {
	http      *http.Client
	userAgent string
	maxBody   int64
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header of every call.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodyBytes caps the size of response bodies.
func WithMaxBodyBytes(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New creates a client.
func New(opts ...ClientOption) *Client {
	c := &Client{
		http:      &http.Client{},
		userAgent: "mcpgate",
		maxBody:   DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs the call. Error statuses are returned as responses, not errors.
// Failures wrap ports.ErrTimeout, ports.ErrConnection or the caller's context.Canceled.
func (c *Client) Do(ctx context.Context, req ports.OutboundRequest) (ports.OutboundResponse, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Verb, req.URL, body)
	if err != nil {
		return ports.OutboundResponse{}, fmt.Errorf("%w: invalid request %s %s: %w", ports.ErrConnection, req.Verb, req.URL, err)
	}
	for k, vs := range req.Headers {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	if hreq.Header.Get("Accept") == "" {
		hreq.Header.Set("Accept", "application/json")
	}
	if c.userAgent != "" {
		hreq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(hreq)
	if err != nil {
		return ports.OutboundResponse{}, classify(ctx, req, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return ports.OutboundResponse{}, classify(ctx, req, err)
	}
	if int64(len(data)) > c.maxBody {
		return ports.OutboundResponse{}, fmt.Errorf("%w: %s %s: response body exceeds %d bytes", ports.ErrConnection, req.Verb, req.URL, c.maxBody)
	}

	return ports.OutboundResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

var _ ports.Transport = (*Client)(nil)

func classify(ctx context.Context, req ports.OutboundRequest, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s %s: %w", req.Verb, req.URL, context.Canceled)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s %s: %w", ports.ErrTimeout, req.Verb, req.URL, err)
	}
	return fmt.Errorf("%w: %s %s: %w", ports.ErrConnection, req.Verb, req.URL, err)
}
