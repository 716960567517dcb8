package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// Version is the only accepted value of the "jsonrpc" member.
const Version = mcp.JSONRPC_VERSION

// ID is a request id: a JSON string, a JSON number, or null.
// The zero value is null.
type ID struct {
	raw json.RawMessage
}

// StringID returns a string id.
func StringID(s string) ID {
	raw, _ := json.Marshal(s)
	return ID{raw: raw}
}

// NumberID returns a numeric id.
func NumberID(n int64) ID {
	return ID{raw: json.RawMessage(fmt.Sprint(n))}
}

// IsNull reports whether the id is absent or null.
func (id ID) IsNull() bool {
	return len(id.raw) == 0 || string(id.raw) == "null"
}

// String is the opaque rendering used as request identifier: the unquoted string or the
// number literal. Null renders as "".
func (id ID) String() string {
	if id.IsNull() {
		return ""
	}
	var s string
	if err := json.Unmarshal(id.raw, &s); err == nil {
		return s
	}
	return string(id.raw)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNull() {
		return []byte("null"), nil
	}
	return id.raw, nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty id")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("invalid id %s", data)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string, a number or null")
		}
	}
	id.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Request is a decoded inbound envelope.
type Request struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      ID             `json:"id"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params,omitempty"`
}

// NewRequest builds a request envelope.
func NewRequest(id ID, method string, params map[string]any) Request {
	return Request{JSONRPC: Version, ID: id, Method: method, Params: params}
}

// IsNotification reports whether the request has no id and a notification method.
// Notifications never get a response.
func (r Request) IsNotification() bool {
	return r.ID.IsNull() && strings.HasPrefix(r.Method, "notifications/")
}

var envelopeMembers = map[string]bool{"jsonrpc": true, "id": true, "method": true, "params": true}

// Decode parses one envelope. On failure it returns a *domain.Failure (parse_error or
// invalid_request) together with whatever id could be recovered, so the error response can
// still be correlated.
func Decode(data []byte) (Request, error) {
	var members map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&members); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Request{}, invalidRequest("envelope must be a JSON object", nil)
		}
		return Request{}, domain.Wrap(domain.KindContractViolation, domain.ReasonParse, err, "parse error")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Request{}, invalidRequest("trailing data after envelope", nil)
	}
	if members == nil {
		return Request{}, invalidRequest("envelope must be a JSON object", nil)
	}

	var req Request
	if raw, ok := members["id"]; ok {
		if err := json.Unmarshal(raw, &req.ID); err != nil {
			return Request{}, invalidRequest(err.Error(), nil)
		}
	}

	var unknown []string
	for k := range members {
		if !envelopeMembers[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return req, invalidRequest("unexpected envelope members", map[string]any{domain.KeyUnknown: unknown})
	}

	if err := json.Unmarshal(members["jsonrpc"], &req.JSONRPC); err != nil || req.JSONRPC != Version {
		return req, invalidRequest(`"jsonrpc" must be "2.0"`, nil)
	}
	if err := json.Unmarshal(members["method"], &req.Method); err != nil || strings.TrimSpace(req.Method) == "" {
		return req, invalidRequest(`"method" must be a non-empty string`, nil)
	}

	if raw, ok := members["params"]; ok && string(bytes.TrimSpace(raw)) != "null" {
		pdec := json.NewDecoder(bytes.NewReader(raw))
		pdec.UseNumber()
		if err := pdec.Decode(&req.Params); err != nil {
			return req, invalidRequest(`"params" must be an object`, nil)
		}
	}
	return req, nil
}

func invalidRequest(msg string, detail map[string]any) *domain.Failure {
	return domain.ContractViolation(domain.ReasonInvalidRequest, msg, detail)
}
