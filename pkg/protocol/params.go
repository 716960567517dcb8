package protocol

import (
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// CallParams are the params of a tools/call request.
type CallParams struct {
	Name      string         `mapstructure:"name"`
	Arguments map[string]any `mapstructure:"arguments"`
	Meta      map[string]any `mapstructure:"_meta"`
}

// DecodeCallParams decodes tools/call params closed-world: members other than name,
// arguments and _meta are rejected, and no type is coerced.
func DecodeCallParams(params map[string]any) (CallParams, error) {
	var out CallParams
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &out,
	})
	if err != nil {
		return CallParams{}, err
	}
	if err := dec.Decode(params); err != nil {
		return CallParams{}, domain.ContractViolation(domain.ReasonInvalidParams,
			"invalid tools/call params",
			map[string]any{domain.KeyError: err.Error()})
	}
	if strings.TrimSpace(out.Name) == "" {
		return CallParams{}, domain.ContractViolation(domain.ReasonInvalidParams,
			"tools/call params must name a tool",
			map[string]any{domain.KeyMissing: []string{"name"}})
	}
	return out, nil
}
