package mcpgate

import _ "embed"

// Version is the release of the gateway, as announced in the initialize handshake.
//
//go:embed VERSION
var Version string

// ServerName is the default name announced in the initialize handshake.
const ServerName = "mcpgate"
