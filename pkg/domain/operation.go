package domain

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Verb is the outbound call kind of an operation.
type Verb string

const (
	VerbGet    Verb = "GET"
	VerbPost   Verb = "POST"
	VerbPut    Verb = "PUT"
	VerbPatch  Verb = "PATCH"
	VerbDelete Verb = "DELETE"
)

// ParseVerb normalizes s into a known Verb.
func ParseVerb(s string) (Verb, bool) {
	v := Verb(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case VerbGet, VerbPost, VerbPut, VerbPatch, VerbDelete:
		return v, true
	}
	return "", false
}

// HasBody reports whether non-path arguments travel in a JSON body instead of the query string.
func (v Verb) HasBody() bool {
	return v == VerbPost || v == VerbPut || v == VerbPatch
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// OperationDescriptor describes one callable operation of the catalog.
// Names that appear as {placeholders} in Template are path parameters; the remaining
// parameters go to the query string (GET, DELETE) or to a JSON body (POST, PUT, PATCH).
type OperationDescriptor struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description" yaml:"description" mapstructure:"description"`
	BaseURL     string   `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Template    string   `json:"path" yaml:"path" mapstructure:"path"`
	Verb        Verb     `json:"method" yaml:"method" mapstructure:"method"`
	Required    []string `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Optional    []string `json:"optional,omitempty" yaml:"optional,omitempty" mapstructure:"optional"`
	Sensitive   bool     `json:"sensitive,omitempty" yaml:"sensitive,omitempty" mapstructure:"sensitive"`
}

// Clone returns a deep copy.
func (d OperationDescriptor) Clone() OperationDescriptor {
	d.Required = slices.Clone(d.Required)
	d.Optional = slices.Clone(d.Optional)
	return d
}

// PathParams returns the placeholder names of Template in order of appearance.
func (d OperationDescriptor) PathParams() []string {
	matches := placeholderPattern.FindAllStringSubmatch(d.Template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// IsPathParam reports whether name is substituted into Template.
func (d OperationDescriptor) IsPathParam(name string) bool {
	return slices.Contains(d.PathParams(), name)
}

// StrayBraces reports whether Template holds a brace that is not part of a well-formed
// {placeholder}. Such a brace would reach the target verbatim.
func (d OperationDescriptor) StrayBraces() bool {
	rest := placeholderPattern.ReplaceAllString(d.Template, "")
	return strings.ContainsAny(rest, "{}")
}

// IsRequired reports whether name must be supplied.
func (d OperationDescriptor) IsRequired(name string) bool {
	return slices.Contains(d.Required, name)
}

// Accepts reports whether name belongs to required ∪ optional.
func (d OperationDescriptor) Accepts(name string) bool {
	return slices.Contains(d.Required, name) || slices.Contains(d.Optional, name)
}

// Params returns required then optional parameter names.
func (d OperationDescriptor) Params() []string {
	return slices.Concat(d.Required, d.Optional)
}

// Arguments are the named values supplied with an invocation.
type Arguments map[string]any

// Clone returns a shallow copy; nil stays nil.
func (a Arguments) Clone() Arguments {
	return maps.Clone(a)
}

// Names returns the argument names sorted.
func (a Arguments) Names() []string {
	return slices.Sorted(maps.Keys(a))
}
