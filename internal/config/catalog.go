package config

import (
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/ports"
	"github.com/aretw0/mcpgate/pkg/registry"
	"github.com/aretw0/mcpgate/pkg/registry/domains"
)

// BuildCatalog assembles the operation catalog: the built-in services first (when enabled),
// then the operations of catalog.file. Name clashes between the two are catalog errors.
func (c Config) BuildCatalog() (*registry.Catalog, error) {
	var descriptors []domain.OperationDescriptor
	if c.Catalog.Builtin {
		descriptors = append(descriptors, domains.Builtin(domains.BaseURLs{
			JSONPlaceholder: c.Upstream.JSONPlaceholderBaseURL,
			OpenMeteo:       c.Upstream.OpenMeteoBaseURL,
		})...)
	}
	if c.Catalog.File != "" {
		fromFile, err := registry.LoadFile(c.Catalog.File)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, fromFile...)
	}
	return registry.New(descriptors...)
}

// BuildGuard returns the configured invocation policy.
func (c Config) BuildGuard() ports.Guard {
	var guards []ports.Guard
	if c.Guard.DenySensitive {
		guards = append(guards, ports.DenySensitive())
	}
	if len(c.Guard.Deny) > 0 {
		guards = append(guards, ports.DenyOperations(c.Guard.Deny...))
	}
	if len(guards) == 0 {
		return ports.AllowAll()
	}
	return ports.MultiGuard(guards...)
}
