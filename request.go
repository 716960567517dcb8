package mcpgate

import (
	"fmt"

	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/protocol"
)

// request is the closed set of dispatchable methods. Only this file creates values of it,
// and dispatch switches over every implementation.
type request interface {
	method() string
}

type handshakeRequest struct{}

type listRequest struct{}

type callRequest struct {
	params protocol.CallParams
}

func (handshakeRequest) method() string { return protocol.MethodInitialize }
func (listRequest) method() string      { return protocol.MethodToolsList }
func (callRequest) method() string      { return protocol.MethodToolsCall }

func parseRequest(req protocol.Request) (request, error) {
	switch req.Method {
	case protocol.MethodInitialize:
		return handshakeRequest{}, nil
	case protocol.MethodToolsList:
		return listRequest{}, nil
	case protocol.MethodToolsCall:
		params, err := protocol.DecodeCallParams(req.Params)
		if err != nil {
			return nil, err
		}
		return callRequest{params: params}, nil
	default:
		return nil, domain.ContractViolation(domain.ReasonMethodNotFound,
			fmt.Sprintf("method not found: %s", req.Method),
			map[string]any{domain.KeyMethod: req.Method})
	}
}
