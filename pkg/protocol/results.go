package protocol

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// Method names of the closed dispatch set.
const (
	MethodInitialize = string(mcp.MethodInitialize)
	MethodToolsList  = string(mcp.MethodToolsList)
	MethodToolsCall  = string(mcp.MethodToolsCall)
)

// KnownMethod reports whether method belongs to the closed dispatch set.
func KnownMethod(method string) bool {
	switch method {
	case MethodInitialize, MethodToolsList, MethodToolsCall:
		return true
	}
	return false
}

// ProtocolVersion is the MCP revision announced during the handshake.
const ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION

// InitializeResult answers the capability handshake.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    Capabilities       `json:"capabilities"`
	ServerInfo      mcp.Implementation `json:"serverInfo"`
}

// Capabilities advertises tools only. The catalog is immutable, so there is no listChanged.
type Capabilities struct {
	Tools struct{} `json:"tools"`
}

// NewInitializeResult builds the handshake answer.
func NewInitializeResult(name, version string) InitializeResult {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      mcp.Implementation{Name: name, Version: version},
	}
}

// ListToolsResult answers tools/list.
type ListToolsResult struct {
	Tools []mcp.Tool `json:"tools"`
}

// NewListToolsResult renders every descriptor as a tool, preserving order.
func NewListToolsResult(descriptors []domain.OperationDescriptor) ListToolsResult {
	tools := make([]mcp.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		tools = append(tools, ToolFor(d))
	}
	return ListToolsResult{Tools: tools}
}

// ToolFor derives the tool schema of an operation. Every parameter is typed as a string.
func ToolFor(d domain.OperationDescriptor) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(d.Description),
		mcp.WithReadOnlyHintAnnotation(d.Verb == domain.VerbGet),
		mcp.WithDestructiveHintAnnotation(d.Sensitive),
		mcp.WithOpenWorldHintAnnotation(true),
	}
	for _, p := range d.Required {
		opts = append(opts, mcp.WithString(p, mcp.Required(), mcp.Description(placement(d, p))))
	}
	for _, p := range d.Optional {
		opts = append(opts, mcp.WithString(p, mcp.Description(placement(d, p))))
	}
	return mcp.NewTool(d.Name, opts...)
}

func placement(d domain.OperationDescriptor, param string) string {
	switch {
	case d.IsPathParam(param):
		return fmt.Sprintf("Path parameter: %s", param)
	case d.Verb.HasBody():
		return fmt.Sprintf("Body parameter: %s", param)
	default:
		return fmt.Sprintf("Query parameter: %s", param)
	}
}

// CallToolResult answers tools/call.
// IsError is always rendered: false on success, true when the target answered with an error status.
type CallToolResult struct {
	Content []mcp.TextContent `json:"content"`
	IsError bool              `json:"isError"`
}

// TextResult builds a single text block result.
func TextResult(text string, isError bool) CallToolResult {
	return CallToolResult{Content: []mcp.TextContent{mcp.NewTextContent(text)}, IsError: isError}
}

// Text returns the concatenated text blocks.
func (r CallToolResult) Text() string {
	var out string
	for _, c := range r.Content {
		out += c.Text
	}
	return out
}
