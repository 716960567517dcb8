/*
Package domain contains the core domain models of the mcpgate gateway.

It defines the callable operations exposed by the gateway, the outcome of invoking one,
and the closed failure taxonomy every error is classified into. This package is kept pure
and free of external dependencies like I/O or wire formats, following Hexagonal
Architecture principles.

# Key Entities

  - OperationDescriptor: A catalog entry describing one outbound REST call (template, verb, parameters).
  - Arguments: The named arguments supplied with an invocation.
  - OutcomeRecord: The result of a single invocation (payload on success, Failure otherwise).
  - Failure: The typed error carrying one of the four FailureKinds.
  - LifecycleHooks: Callbacks for observing requests and tool calls.
*/
package domain
