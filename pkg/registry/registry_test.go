package registry_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/registry"
)

func descriptor(name string) domain.OperationDescriptor {
	return domain.OperationDescriptor{
		Name:     name,
		BaseURL:  "https://example.test/",
		Template: "/items/{id}",
		Verb:     domain.VerbGet,
		Required: []string{"id"},
	}
}

func TestNew_BuildsReadOnlyCatalog(t *testing.T) {
	c, err := registry.New(descriptor("b"), descriptor("a"))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"b", "a"}, c.Names(), "catalog order is declaration order")

	d, ok := c.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "https://example.test", d.BaseURL, "trailing slash is trimmed")

	d.Required[0] = "tampered"
	again, _ := c.Lookup("a")
	assert.Equal(t, []string{"id"}, again.Required, "lookups hand out copies")

	all := c.All()
	all[0].Name = "tampered"
	assert.Equal(t, []string{"b", "a"}, c.Names())

	names := c.Names()
	names[0] = "tampered"
	assert.Equal(t, "b", c.Names()[0])

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestNew_RejectsInvalidDescriptors(t *testing.T) {
	undeclared := descriptor("undeclared")
	undeclared.Required = nil

	overlapping := descriptor("overlapping")
	overlapping.Optional = []string{"id"}

	badVerb := descriptor("bad_verb")
	badVerb.Verb = "TRACE"

	relative := descriptor("relative")
	relative.BaseURL = "/api"

	noSlash := descriptor("no_slash")
	noSlash.Template = "items"

	hyphenated := descriptor("hyphenated")
	hyphenated.Template = "/posts/{post-id}"
	hyphenated.Required = []string{"post-id"}

	unclosed := descriptor("unclosed")
	unclosed.Template = "/items/{id"

	tests := []struct {
		name string
		ops  []domain.OperationDescriptor
		want string
	}{
		{"duplicate", []domain.OperationDescriptor{descriptor("x"), descriptor("x")}, "x: duplicate name"},
		{"empty name", []domain.OperationDescriptor{descriptor(" ")}, "#0: name is empty"},
		{"undeclared placeholder", []domain.OperationDescriptor{undeclared}, `undeclared: path parameter "id" must be required`},
		{"overlapping sets", []domain.OperationDescriptor{overlapping}, `overlapping: parameter "id" declared twice`},
		{"unknown verb", []domain.OperationDescriptor{badVerb}, `bad_verb: unsupported method "TRACE"`},
		{"relative base url", []domain.OperationDescriptor{relative}, `relative: base_url "/api" is not an absolute URL`},
		{"path without slash", []domain.OperationDescriptor{noSlash}, `no_slash: path "items" must start with /`},
		{"hyphenated placeholder", []domain.OperationDescriptor{hyphenated}, `hyphenated: path "/posts/{post-id}" has a malformed placeholder`},
		{"unclosed placeholder", []domain.OperationDescriptor{unclosed}, `unclosed: path "/items/{id" has a malformed placeholder`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.New(tt.ops...)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfigurationError)

			f := domain.Classify(err)
			assert.Equal(t, domain.ReasonInvalidCatalog, f.Reason)
			assert.Contains(t, f.Detail[domain.KeyErrors], tt.want)
		})
	}
}

func TestNew_NormalizesVerb(t *testing.T) {
	d := descriptor("lower")
	d.Verb = "get"
	c, err := registry.New(d)
	require.NoError(t, err)

	got, _ := c.Lookup("lower")
	assert.Equal(t, domain.VerbGet, got.Verb)
}

func TestLoadFile(t *testing.T) {
	ops, err := registry.LoadFile(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)
	require.Len(t, ops, 2)

	c, err := registry.New(ops...)
	require.NoError(t, err)

	todo, ok := c.Lookup("get_todo")
	require.True(t, ok)
	assert.Equal(t, domain.VerbGet, todo.Verb)
	assert.Equal(t, "/todos/{id}", todo.Template)

	create, _ := c.Lookup("create_todo")
	assert.Equal(t, []string{"completed"}, create.Optional)
}

func TestLoadFile_RejectsUnknownFields(t *testing.T) {
	_, err := registry.LoadFile(filepath.Join("testdata", "typo.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigurationError)
	assert.Contains(t, err.Error(), "requried")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := registry.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfigurationError)
}

func TestParse_JSON(t *testing.T) {
	ops, err := registry.Parse([]byte(`{"operations":[{"name":"ping","base_url":"http://h","path":"/ping","method":"GET"}]}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, "ping", ops[0].Name)

	_, err = registry.Parse([]byte(`{"operations":[]}`), ".json")
	assert.Error(t, err)
}

func TestMarshal_RoundTripsThroughParse(t *testing.T) {
	data, err := registry.Marshal([]domain.OperationDescriptor{descriptor("a")})
	require.NoError(t, err)

	ops, err := registry.Parse(data, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, descriptor("a"), ops[0])
}
