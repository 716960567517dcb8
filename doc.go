/*
Package mcpgate is a request-mediation gateway that exposes a fixed catalog of REST
operations as MCP tools over JSON-RPC 2.0.

A Gateway accepts a decoded envelope, resolves it against the operation catalog, performs at
most one outbound call and answers with a structured response. Every request is tracked by an
execution context that is bound at most once, accumulates outcomes in order, and is always
sealed before the response leaves the gateway.

# Methods

Exactly three methods are dispatched:

  - initialize: capability handshake.
  - tools/list: enumerates the catalog. No outbound call is made.
  - tools/call: validates the arguments closed-world, consults the guard for sensitive
    operations, binds the context and performs the call.

Anything else is answered with -32601.

# Failures

Every failure carries exactly one kind: ContractViolation, UpstreamFailure, TransportFailure
or ConfigurationError (see pkg/domain). An error status from the target is not a protocol
error: it comes back as a tools/call result with isError set. Nothing is retried or cached.

# Usage

	catalog, err := domains.Default()
	if err != nil {
		log.Fatal(err)
	}

	gw, err := mcpgate.New(catalog, mcpgate.WithTimeout(10*time.Second))
	if err != nil {
		log.Fatal(err)
	}

	req, err := protocol.Decode(raw)
	// ...
	sealed, resp := gw.Handle(ctx, req)

The transports in pkg/adapters/http and pkg/adapters/stdio wrap Handle for HTTP and for
line-delimited standard streams.
*/
package mcpgate
