package domain

import "errors"

// Sentinels matched by errors.Is against any *Failure of the corresponding kind.
var (
	// ErrContractViolation marks protocol or invariant breaches. Fatal to the request.
	ErrContractViolation = errors.New("contract violation")

	// ErrUpstreamFailure marks an application-level error answered by the target resource.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrTransportFailure marks an outbound call that could not be completed.
	ErrTransportFailure = errors.New("transport failure")

	// ErrConfigurationError marks an invalid catalog or startup state.
	ErrConfigurationError = errors.New("configuration error")
)
