package domain

import (
	"maps"
	"slices"
	"time"
)

// Payload is the opaque answer of the target resource.
type Payload struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// OutcomeRecord is one entry of an execution context's results.
// Upstream failures keep the Payload the target answered with, for diagnostics.
type OutcomeRecord struct {
	Operation string        `json:"operation"`
	Succeeded bool          `json:"succeeded"`
	Payload   Payload       `json:"payload"`
	Failure   *Failure      `json:"-"`
	Duration  time.Duration `json:"duration"`
}

// SucceededOutcome builds a successful outcome.
func SucceededOutcome(operation string, payload Payload, elapsed time.Duration) OutcomeRecord {
	return OutcomeRecord{
		Operation: operation,
		Succeeded: true,
		Payload:   payload,
		Duration:  elapsed,
	}
}

// FailedOutcome builds a failed outcome.
func FailedOutcome(operation string, failure *Failure, payload Payload, elapsed time.Duration) OutcomeRecord {
	return OutcomeRecord{
		Operation: operation,
		Failure:   failure,
		Payload:   payload,
		Duration:  elapsed,
	}
}

// Clone returns a copy that shares no mutable memory with o.
func (o OutcomeRecord) Clone() OutcomeRecord {
	o.Payload.Body = slices.Clone(o.Payload.Body)
	if o.Failure != nil {
		f := *o.Failure
		f.Detail = maps.Clone(f.Detail)
		o.Failure = &f
	}
	return o
}
