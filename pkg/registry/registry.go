/*
Package registry holds the Operation Catalog: the immutable set of operations the gateway
can invoke.

A Catalog is built once by New, before the first request, and exposes only read-only
lookup and enumeration. There is no method that adds, replaces or removes an entry, and
every descriptor handed out is a deep copy.
*/
package registry

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// Catalog is the read-only operation catalog. It is safe for concurrent use.
type Catalog struct {
	order []string
	ops   map[string]domain.OperationDescriptor
}

// New validates the descriptors and freezes them into a Catalog.
// Every problem found is reported in a single ConfigurationError.
func New(descriptors ...domain.OperationDescriptor) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(descriptors)),
		ops:   make(map[string]domain.OperationDescriptor, len(descriptors)),
	}

	var problems []string
	for i, d := range descriptors {
		d = normalize(d)
		errs := check(d)
		if _, dup := c.ops[d.Name]; dup {
			errs = append(errs, "duplicate name")
		}
		if len(errs) > 0 {
			label := d.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			for _, e := range errs {
				problems = append(problems, label+": "+e)
			}
			continue
		}
		c.order = append(c.order, d.Name)
		c.ops[d.Name] = d.Clone()
	}

	if len(problems) > 0 {
		return nil, domain.ConfigurationError(domain.ReasonInvalidCatalog,
			fmt.Sprintf("invalid operation catalog (%d problems)", len(problems)),
			map[string]any{domain.KeyErrors: problems})
	}
	return c, nil
}

func normalize(d domain.OperationDescriptor) domain.OperationDescriptor {
	d = d.Clone()
	d.Name = strings.TrimSpace(d.Name)
	d.BaseURL = strings.TrimRight(strings.TrimSpace(d.BaseURL), "/")
	if v, ok := domain.ParseVerb(string(d.Verb)); ok {
		d.Verb = v
	}
	return d
}

func check(d domain.OperationDescriptor) []string {
	var errs []string
	if d.Name == "" {
		errs = append(errs, "name is empty")
	}
	if _, ok := domain.ParseVerb(string(d.Verb)); !ok {
		errs = append(errs, fmt.Sprintf("unsupported method %q", d.Verb))
	}
	if u, err := url.Parse(d.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("base_url %q is not an absolute URL", d.BaseURL))
	}
	if !strings.HasPrefix(d.Template, "/") {
		errs = append(errs, fmt.Sprintf("path %q must start with /", d.Template))
	}
	if d.StrayBraces() {
		errs = append(errs, fmt.Sprintf("path %q has a malformed placeholder", d.Template))
	}

	seen := make(map[string]bool)
	for _, p := range d.Params() {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, "parameter name is empty")
			continue
		}
		if seen[p] {
			errs = append(errs, fmt.Sprintf("parameter %q declared twice", p))
		}
		seen[p] = true
	}
	for _, p := range d.PathParams() {
		if !d.IsRequired(p) {
			errs = append(errs, fmt.Sprintf("path parameter %q must be required", p))
		}
	}
	return errs
}

// Lookup returns a copy of the named descriptor.
func (c *Catalog) Lookup(name string) (domain.OperationDescriptor, bool) {
	d, ok := c.ops[name]
	if !ok {
		return domain.OperationDescriptor{}, false
	}
	return d.Clone(), true
}

// All returns copies of every descriptor, in catalog order.
func (c *Catalog) All() []domain.OperationDescriptor {
	out := make([]domain.OperationDescriptor, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.ops[name].Clone())
	}
	return out
}

// Names returns the operation names in catalog order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.order)
}

// Len returns the number of operations.
func (c *Catalog) Len() int {
	return len(c.order)
}
