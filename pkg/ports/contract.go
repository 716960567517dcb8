package ports

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTransportContract runs a suite of tests to verify that a Transport implementation
// adheres to the interface contract. newTransport receives the per-call timeout the
// transport should enforce on its own, when it supports one.
func RunTransportContract(t *testing.T, newTransport func(timeout time.Duration) Transport) {
	t.Helper()

	t.Run("Passes status and body through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"method":"` + r.Method + `","echo":` + string(body) + `}`))
		}))
		defer srv.Close()

		resp, err := newTransport(time.Second).Do(context.Background(), OutboundRequest{
			Verb: http.MethodPost,
			URL:  srv.URL + "/posts",
			Body: []byte(`{"title":"x"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.Contains(t, resp.ContentType, "application/json")
		assert.JSONEq(t, `{"method":"POST","echo":{"title":"x"}}`, string(resp.Body))
	})

	t.Run("Error status is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		resp, err := newTransport(time.Second).Do(context.Background(), OutboundRequest{Verb: http.MethodGet, URL: srv.URL})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})

	t.Run("Deadline surfaces as ErrTimeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := newTransport(time.Second).Do(ctx, OutboundRequest{Verb: http.MethodGet, URL: srv.URL})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("Refused connection surfaces as ErrConnection", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := l.Addr().String()
		require.NoError(t, l.Close())

		_, err = newTransport(time.Second).Do(context.Background(), OutboundRequest{Verb: http.MethodGet, URL: "http://" + addr})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConnection)
		assert.False(t, errors.Is(err, ErrTimeout))
	})

	t.Run("Caller cancellation is not a timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := newTransport(time.Second).Do(ctx, OutboundRequest{Verb: http.MethodGet, URL: srv.URL})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, errors.Is(err, ErrTimeout))
	})
}
