// Package stdio serves the gateway over line-delimited JSON-RPC on a pair of streams,
// typically the process stdin and stdout.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/execution"
	"github.com/aretw0/mcpgate/pkg/protocol"
)

// MaxLineBytes is the largest envelope accepted on one line.
const MaxLineBytes = 1 << 20

// Gateway is the request core served over the streams.
type Gateway interface {
	Handle(ctx context.Context, req protocol.Request) (execution.Sealed, protocol.Response)
}

// Server reads one envelope per line and writes one response per line.
// Notifications are processed without an answer.
type Server struct {
	gateway Gateway
	logger  *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. It must not write to the output stream.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a stdio server for gw.
func New(gw Gateway, opts ...Option) *Server {
	s := &Server{gateway: gw, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve processes lines from r until EOF, a read error, or ctx cancellation.
// EOF is a clean shutdown and returns nil.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.mu.Lock()
	s.enc = json.NewEncoder(w)
	s.mu.Unlock()

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
		for scanner.Scan() {
			line := bytes.Clone(scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read envelope: %w", err)
					}
				default:
				}
				return ctx.Err()
			}
			if err := s.handleLine(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) error {
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}

	req, err := protocol.Decode(line)
	if err != nil {
		f := domain.Classify(err)
		s.logger.Debug("rejected envelope", "reason", f.Reason, "err", f)
		return s.write(protocol.ErrorResponse(req.ID, f))
	}
	if req.IsNotification() {
		s.logger.Debug("notification", "method", req.Method)
		return nil
	}

	_, resp := s.gateway.Handle(ctx, req)
	return s.write(resp)
}

func (s *Server) write(resp protocol.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
