package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVerb(t *testing.T) {
	v, ok := ParseVerb(" delete ")
	assert.True(t, ok)
	assert.Equal(t, VerbDelete, v)

	_, ok = ParseVerb("TRACE")
	assert.False(t, ok)
}

func TestVerb_HasBody(t *testing.T) {
	assert.True(t, VerbPost.HasBody())
	assert.True(t, VerbPut.HasBody())
	assert.True(t, VerbPatch.HasBody())
	assert.False(t, VerbGet.HasBody())
	assert.False(t, VerbDelete.HasBody())
}

func TestOperationDescriptor_PathParams(t *testing.T) {
	d := OperationDescriptor{Template: "/posts/{postId}/comments/{id}/{postId}"}
	assert.Equal(t, []string{"postId", "id"}, d.PathParams())
	assert.True(t, d.IsPathParam("id"))
	assert.False(t, d.IsPathParam("userId"))

	assert.Empty(t, OperationDescriptor{Template: "/users"}.PathParams())
}

func TestOperationDescriptor_StrayBraces(t *testing.T) {
	hyphenated := OperationDescriptor{Template: "/posts/{post-id}"}
	assert.True(t, hyphenated.StrayBraces())
	assert.False(t, hyphenated.IsPathParam("post-id"), "only well-formed placeholders are path parameters")

	assert.True(t, OperationDescriptor{Template: "/items/{id"}.StrayBraces())
	assert.True(t, OperationDescriptor{Template: "/items/id}"}.StrayBraces())
	assert.False(t, OperationDescriptor{Template: "/posts/{postId}/comments"}.StrayBraces())
	assert.False(t, OperationDescriptor{Template: "/users"}.StrayBraces())
}

func TestOperationDescriptor_CloneIsDeep(t *testing.T) {
	d := OperationDescriptor{Name: "get_post", Required: []string{"id"}, Optional: []string{"expand"}}
	c := d.Clone()
	c.Required[0] = "tampered"
	c.Optional[0] = "tampered"

	assert.Equal(t, []string{"id"}, d.Required)
	assert.Equal(t, []string{"expand"}, d.Optional)
}

func TestOperationDescriptor_Accepts(t *testing.T) {
	d := OperationDescriptor{Required: []string{"latitude", "longitude"}, Optional: []string{"timezone"}}
	assert.True(t, d.Accepts("latitude"))
	assert.True(t, d.Accepts("timezone"))
	assert.False(t, d.Accepts("foo"))
	assert.True(t, d.IsRequired("longitude"))
	assert.False(t, d.IsRequired("timezone"))
	assert.Equal(t, []string{"latitude", "longitude", "timezone"}, d.Params())
}

func TestArguments_NamesSorted(t *testing.T) {
	args := Arguments{"b": 1, "a": 2}
	assert.Equal(t, []string{"a", "b"}, args.Names())
	assert.Nil(t, Arguments(nil).Clone())
}
