// Package domains declares the built-in operation catalogs.
// Each integrated service lives in its own file, so adding or removing one touches a single file.
package domains

import (
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/registry"
)

// BaseURLs overrides the target of each built-in service. Empty fields keep the defaults.
type BaseURLs struct {
	JSONPlaceholder string
	OpenMeteo       string
}

// Builtin returns the descriptors of every built-in service, in catalog order.
func Builtin(urls BaseURLs) []domain.OperationDescriptor {
	jp, om := urls.JSONPlaceholder, urls.OpenMeteo
	if jp == "" {
		jp = DefaultJSONPlaceholderURL
	}
	if om == "" {
		om = DefaultOpenMeteoURL
	}
	return append(JSONPlaceholder(jp), OpenMeteo(om)...)
}

// Default builds the built-in catalog against the public endpoints.
func Default() (*registry.Catalog, error) {
	return registry.New(Builtin(BaseURLs{})...)
}
