package domains_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcpgate/pkg/registry"
	"github.com/aretw0/mcpgate/pkg/registry/domains"
)

func TestDefault(t *testing.T) {
	catalog, err := domains.Default()
	require.NoError(t, err)
	assert.Equal(t, 10, catalog.Len())
	assert.Equal(t, []string{
		"get_posts", "get_post", "create_post", "update_post", "delete_post",
		"get_comments", "get_users", "get_user", "get_weather", "get_forecast",
	}, catalog.Names())

	weather, ok := catalog.Lookup("get_weather")
	require.True(t, ok)
	assert.Equal(t, domains.DefaultOpenMeteoURL, weather.BaseURL)
}

func TestBuiltin_OverridesBaseURLs(t *testing.T) {
	catalog, err := registry.New(domains.Builtin(domains.BaseURLs{
		JSONPlaceholder: "http://127.0.0.1:9000/",
		OpenMeteo:       "http://127.0.0.1:9001",
	})...)
	require.NoError(t, err)

	post, _ := catalog.Lookup("get_post")
	assert.Equal(t, "http://127.0.0.1:9000", post.BaseURL)
	weather, _ := catalog.Lookup("get_forecast")
	assert.Equal(t, "http://127.0.0.1:9001", weather.BaseURL)
}

func TestBuiltin_OnlyWritesAreSensitive(t *testing.T) {
	catalog, err := domains.Default()
	require.NoError(t, err)

	var sensitive []string
	for _, d := range catalog.All() {
		if d.Sensitive {
			sensitive = append(sensitive, d.Name)
		}
	}
	assert.Equal(t, []string{"update_post", "delete_post"}, sensitive)
}
