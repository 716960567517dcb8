package testutils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcpgate"
	"github.com/aretw0/mcpgate/pkg/ports"
	"github.com/aretw0/mcpgate/pkg/registry"
	"github.com/aretw0/mcpgate/pkg/registry/domains"
)

// Upstream is a fake target server that counts the requests it receives.
type Upstream struct {
	*httptest.Server
	hits atomic.Int32
}

// NewUpstream starts a fake target serving h. It is closed when the test ends.
func NewUpstream(t *testing.T, h http.Handler) *Upstream {
	t.Helper()
	u := &Upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

// Hits returns the number of requests received so far.
func (u *Upstream) Hits() int { return int(u.hits.Load()) }

// Canned returns a transport that answers every call with status and body.
func Canned(status int, body string) ports.Transport {
	return ports.TransportFunc(func(context.Context, ports.OutboundRequest) (ports.OutboundResponse, error) {
		return ports.OutboundResponse{Status: status, ContentType: "application/json", Body: []byte(body)}, nil
	})
}

// NewGateway builds a gateway over the built-in catalog with both services pointed at
// baseURL. It fails the test immediately on error.
func NewGateway(t *testing.T, baseURL string, opts ...mcpgate.Option) *mcpgate.Gateway {
	t.Helper()
	catalog, err := registry.New(domains.Builtin(domains.BaseURLs{JSONPlaceholder: baseURL, OpenMeteo: baseURL})...)
	require.NoError(t, err, "Failed to build catalog")
	gw, err := mcpgate.New(catalog, opts...)
	require.NoError(t, err, "Failed to build gateway")
	return gw
}
