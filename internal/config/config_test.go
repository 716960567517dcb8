package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcpgate/internal/config"
	"github.com/aretw0/mcpgate/pkg/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeFile(t, "mcpgate.yaml", `
server:
  addr: ":9090"
upstream:
  timeout: 5s
  open_meteo_base_url: http://weather.internal
guard:
  deny_sensitive: true
log:
  format: json
`)
	t.Setenv("MCPGATE_SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("MCPGATE_UPSTREAM_JSONPLACEHOLDER_BASE_URL", "http://posts.internal")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr, "environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "http://weather.internal", cfg.Upstream.OpenMeteoBaseURL)
	assert.Equal(t, "http://posts.internal", cfg.Upstream.JSONPlaceholderBaseURL)
	assert.True(t, cfg.Guard.DenySensitive)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout, "unset keys keep their defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfigurationError)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeFile(t, "bad.yaml", `
upstream:
  timeout: 0s
  open_meteo_base_url: not-a-url
log:
  level: loud
`)
	_, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigurationError)

	problems := domain.Classify(err).Detail[domain.KeyErrors].([]string)
	assert.Len(t, problems, 3)
	assert.Contains(t, problems[0], "log.level")
	assert.Contains(t, problems[1], "upstream.open_meteo_base_url")
	assert.Contains(t, problems[2], "upstream.timeout")
}

func TestValidate_RequiresACatalogSource(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Builtin = false
	err := cfg.Validate()
	assert.ErrorIs(t, err, domain.ErrConfigurationError)
}

func TestBuildCatalog(t *testing.T) {
	cfg := config.Default()
	cfg.Upstream.OpenMeteoBaseURL = "http://weather.internal/"

	catalog, err := cfg.BuildCatalog()
	require.NoError(t, err)
	assert.Equal(t, 10, catalog.Len())
	weather, ok := catalog.Lookup("get_weather")
	require.True(t, ok)
	assert.Equal(t, "http://weather.internal", weather.BaseURL)

	cfg.Catalog.Builtin = false
	cfg.Catalog.File = "../../pkg/registry/testdata/catalog.yaml"
	catalog, err = cfg.BuildCatalog()
	require.NoError(t, err)
	_, ok = catalog.Lookup("get_todo")
	assert.True(t, ok)
	_, ok = catalog.Lookup("get_weather")
	assert.False(t, ok)
}
