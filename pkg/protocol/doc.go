/*
Package protocol implements the JSON-RPC 2.0 envelope spoken by the gateway (MCP dialect).

Decode turns raw bytes into a structurally valid Request or fails with a classified
ContractViolation before the router ever sees the message. The response side renders either
a result or an error object whose code is derived from the failure reason:

	parse_error        -32700
	invalid_request    -32600
	method_not_found   -32601
	invalid_arguments  -32602
	policy_denied      -32602
	anything else      -32603

Every error object carries data.failureKind and data.reason next to the failure detail.
Protocol constants and tool schemas come from github.com/mark3labs/mcp-go/mcp.
*/
package protocol
