package protocol

import (
	"encoding/json"
	"maps"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// Error is the error member of a response envelope.
type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Response is an outbound envelope. Exactly one of Result and Error is rendered.
type Response struct {
	ID     ID
	Result any
	Error  *Error
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			JSONRPC string `json:"jsonrpc"`
			ID      ID     `json:"id"`
			Error   *Error `json:"error"`
		}{Version, r.ID, r.Error})
	}
	result := r.Result
	if result == nil {
		result = struct{}{}
	}
	return json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		ID      ID     `json:"id"`
		Result  any    `json:"result"`
	}{Version, r.ID, result})
}

// IsError reports whether the envelope carries an error object.
func (r Response) IsError() bool { return r.Error != nil }

// ResultResponse wraps a successful result.
func ResultResponse(id ID, result any) Response {
	return Response{ID: id, Result: result}
}

// ErrorResponse renders a failure as an error envelope.
func ErrorResponse(id ID, f *domain.Failure) Response {
	data := maps.Clone(f.Detail)
	if data == nil {
		data = make(map[string]any)
	}
	data[domain.KeyFailureKind] = string(f.Kind)
	data[domain.KeyReason] = string(f.Reason)
	return Response{ID: id, Error: &Error{Code: CodeFor(f), Message: f.Message, Data: data}}
}

// CodeFor maps a failure onto its JSON-RPC error code.
func CodeFor(f *domain.Failure) int {
	if f.Kind != domain.KindContractViolation {
		return mcp.INTERNAL_ERROR
	}
	switch f.Reason {
	case domain.ReasonParse:
		return mcp.PARSE_ERROR
	case domain.ReasonInvalidRequest:
		return mcp.INVALID_REQUEST
	case domain.ReasonMethodNotFound:
		return mcp.METHOD_NOT_FOUND
	case domain.ReasonInvalidParams, domain.ReasonPolicyDenied:
		return mcp.INVALID_PARAMS
	default:
		return mcp.INTERNAL_ERROR
	}
}
