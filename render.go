package mcpgate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// renderPayload re-indents JSON bodies; anything else is returned as is.
func renderPayload(p domain.Payload) string {
	var buf bytes.Buffer
	if json.Valid(p.Body) && json.Indent(&buf, p.Body, "", "  ") == nil {
		return buf.String()
	}
	return string(p.Body)
}

// renderUpstreamFailure is the text of an isError result.
func renderUpstreamFailure(o domain.OutcomeRecord) string {
	head := fmt.Sprintf("%s failed: HTTP %d", o.Operation, o.Payload.Status)
	if len(o.Payload.Body) == 0 {
		return head
	}
	return head + "\n" + renderPayload(o.Payload)
}
