package execution

import (
	"fmt"
	"time"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// Sealed is the terminal, read-only state of a request.
// The zero value stands for "no context could be created" and reports Valid() == false.
type Sealed struct {
	ctx      Context
	sealedAt time.Time
}

// Valid reports whether the value came from a successful Seal.
func (s Sealed) Valid() bool { return s.ctx.line != nil }

func (s Sealed) RequestID() string { return s.ctx.requestID }

func (s Sealed) Method() string { return s.ctx.method }

func (s Sealed) Binding() (Binding, bool) { return s.ctx.Binding() }

func (s Sealed) Results() []domain.OutcomeRecord { return s.ctx.Results() }

// LastOutcome returns the most recent outcome, if any.
func (s Sealed) LastOutcome() (domain.OutcomeRecord, bool) {
	n := len(s.ctx.results)
	if n == 0 {
		return domain.OutcomeRecord{}, false
	}
	return s.ctx.results[n-1].Clone(), true
}

func (s Sealed) CreatedAt() time.Time { return s.ctx.CreatedAt() }

func (s Sealed) SealedAt() time.Time { return s.sealedAt }

func (s Sealed) String() string {
	if !s.Valid() {
		return "Sealed(<none>)"
	}
	return fmt.Sprintf("Sealed(id=%s, method=%s, bound=%q, results=%d)",
		s.ctx.requestID, s.ctx.method, s.ctx.boundName(), len(s.ctx.results))
}
