package domain

import (
	"errors"
	"fmt"
	"maps"
)

// FailureKind is the closed taxonomy of gateway failures.
type FailureKind string

const (
	KindContractViolation  FailureKind = "contract_violation"  // Bad request shape, unknown operation, lifecycle breach
	KindUpstreamFailure    FailureKind = "upstream_failure"    // Target answered with an application-level error
	KindTransportFailure   FailureKind = "transport_failure"   // Timeout, connection refusal
	KindConfigurationError FailureKind = "configuration_error" // Invalid catalog or startup state
)

// Reason refines a FailureKind. Transports use it to pick the wire error code.
type Reason string

const (
	ReasonParse          Reason = "parse_error"
	ReasonInvalidRequest Reason = "invalid_request"
	ReasonMethodNotFound Reason = "method_not_found"
	ReasonInvalidParams  Reason = "invalid_arguments"
	ReasonPolicyDenied   Reason = "policy_denied"
	ReasonLifecycle      Reason = "lifecycle"
	ReasonInternal       Reason = "internal"

	ReasonUpstreamStatus Reason = "upstream_status"

	ReasonTimeout    Reason = "timeout"
	ReasonCanceled   Reason = "canceled"
	ReasonConnection Reason = "connection"

	ReasonInvalidCatalog Reason = "invalid_catalog"
	ReasonInvalidConfig  Reason = "invalid_config"
)

// Failure is the only error shape allowed to cross a component boundary.
// Exactly one Kind is attached to it; Cause is kept for diagnostics and never serialized.
type Failure struct {
	Kind    FailureKind
	Reason  Reason
	Message string
	Detail  map[string]any
	Cause   error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Is matches the kind sentinels (ErrContractViolation, ErrTransportFailure, ...).
func (f *Failure) Is(target error) bool {
	return target == f.Kind.sentinel()
}

// Fatal reports whether the failure aborts the request.
// Upstream failures are data: the gateway itself did its job.
func (f *Failure) Fatal() bool {
	return f.Kind != KindUpstreamFailure
}

// With returns a copy of the failure with an extra detail entry.
func (f *Failure) With(key string, value any) *Failure {
	next := *f
	next.Detail = maps.Clone(f.Detail)
	if next.Detail == nil {
		next.Detail = make(map[string]any)
	}
	next.Detail[key] = value
	return &next
}

func (k FailureKind) sentinel() error {
	switch k {
	case KindContractViolation:
		return ErrContractViolation
	case KindUpstreamFailure:
		return ErrUpstreamFailure
	case KindTransportFailure:
		return ErrTransportFailure
	case KindConfigurationError:
		return ErrConfigurationError
	}
	return nil
}

// NewFailure creates a failure of the given kind. A nil detail is replaced by an empty map.
func NewFailure(kind FailureKind, reason Reason, message string, detail map[string]any) *Failure {
	if detail == nil {
		detail = make(map[string]any)
	}
	return &Failure{Kind: kind, Reason: reason, Message: message, Detail: detail}
}

// ContractViolation creates a failure for a protocol or invariant breach.
func ContractViolation(reason Reason, message string, detail map[string]any) *Failure {
	return NewFailure(KindContractViolation, reason, message, detail)
}

// UpstreamFailure creates a failure for an application-level error status from the target.
func UpstreamFailure(message string, detail map[string]any) *Failure {
	return NewFailure(KindUpstreamFailure, ReasonUpstreamStatus, message, detail)
}

// TransportFailure creates a failure for an outbound call that did not complete.
func TransportFailure(reason Reason, message string, detail map[string]any) *Failure {
	return NewFailure(KindTransportFailure, reason, message, detail)
}

// ConfigurationError creates a failure for an invalid catalog or startup state.
func ConfigurationError(reason Reason, message string, detail map[string]any) *Failure {
	return NewFailure(KindConfigurationError, reason, message, detail)
}

// Wrap attaches a cause to a new failure.
func Wrap(kind FailureKind, reason Reason, cause error, message string) *Failure {
	f := NewFailure(kind, reason, message, nil)
	f.Cause = cause
	return f
}

// Classify returns err as a *Failure. Anything that is not already classified becomes an
// internal ContractViolation with the original error preserved as Cause.
// It is meant to be called once, at the outermost boundary.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return Wrap(KindContractViolation, ReasonInternal, err, "internal error")
}
