package runtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/ports"
)

// BuildRequest turns a descriptor and its validated arguments into an outbound call.
// Path placeholders are substituted and escaped; the remaining arguments go to the query
// string (GET, DELETE) or to a JSON object body (POST, PUT, PATCH).
func BuildRequest(d domain.OperationDescriptor, args domain.Arguments) (ports.OutboundRequest, error) {
	path := d.Template
	for _, p := range d.PathParams() {
		path = strings.ReplaceAll(path, "{"+p+"}", url.PathEscape(Scalar(args[p])))
	}

	req := ports.OutboundRequest{
		Verb:    string(d.Verb),
		URL:     d.BaseURL + path,
		Headers: http.Header{},
	}

	// A null optional argument means "not supplied".
	rest := make(map[string]any)
	for _, name := range args.Names() {
		if v := args[name]; v != nil && !d.IsPathParam(name) {
			rest[name] = v
		}
	}

	if d.Verb.HasBody() {
		body, err := json.Marshal(rest)
		if err != nil {
			return ports.OutboundRequest{}, fmt.Errorf("encode body of %s: %w", d.Name, err)
		}
		req.Body = body
		req.Headers.Set("Content-Type", "application/json")
		return req, nil
	}

	if len(rest) > 0 {
		q := url.Values{}
		for k, v := range rest {
			q.Set(k, Scalar(v))
		}
		req.URL += "?" + q.Encode()
	}
	return req, nil
}

// Scalar renders a scalar argument value as text.
func Scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// IsScalar reports whether v can be placed in a path or a query string.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, json.Number, bool, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}
