// Package config loads the gateway configuration.
//
// Precedence, highest first:
//  1. Environment variables with the MCPGATE_ prefix
//  2. The YAML file given to Load
//  3. Default()
//
// Environment variables map onto keys by dropping the prefix and splitting the section on the
// first underscore: MCPGATE_UPSTREAM_TIMEOUT is upstream.timeout and
// MCPGATE_UPSTREAM_OPEN_METEO_BASE_URL is upstream.open_meteo_base_url.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/pkg/domain"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "MCPGATE_"

const maxConfigFileSize = 1 << 20

// Config is the complete gateway configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Guard    GuardConfig    `koanf:"guard"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
	Metrics         bool          `koanf:"metrics"`
}

// UpstreamConfig configures outbound calls. Empty base URLs keep the public endpoints.
type UpstreamConfig struct {
	Timeout                time.Duration `koanf:"timeout"`
	JSONPlaceholderBaseURL string        `koanf:"jsonplaceholder_base_url"`
	OpenMeteoBaseURL       string        `koanf:"open_meteo_base_url"`
}

// CatalogConfig selects where operations come from. Both sources may be combined.
type CatalogConfig struct {
	Builtin bool   `koanf:"builtin"`
	File    string `koanf:"file"`
}

// GuardConfig configures the invocation policy. The policy is only consulted for sensitive
// operations, so Deny can single out some of them while leaving the others allowed.
type GuardConfig struct {
	DenySensitive bool     `koanf:"deny_sensitive"`
	Deny          []string `koanf:"deny"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			Metrics:         true,
		},
		Upstream: UpstreamConfig{Timeout: 30 * time.Second},
		Catalog:  CatalogConfig{Builtin: true},
		Log:      LogConfig{Level: "info", Format: logging.FormatText},
	}
}

// Load layers Default, the YAML file at path (skipped when path is empty) and the environment,
// then validates the result. Every failure is a ConfigurationError.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readFile(path)
		if err != nil {
			return Config{}, domain.Wrap(domain.KindConfigurationError, domain.ReasonInvalidConfig, err,
				fmt.Sprintf("cannot read config file %s", path))
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, domain.Wrap(domain.KindConfigurationError, domain.ReasonInvalidConfig, err,
				fmt.Sprintf("cannot parse config file %s", path))
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, domain.Wrap(domain.KindConfigurationError, domain.ReasonInvalidConfig, err,
			"cannot load environment variables")
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, domain.Wrap(domain.KindConfigurationError, domain.ReasonInvalidConfig, err,
			"cannot decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps MCPGATE_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file is larger than %d bytes", maxConfigFileSize)
	}
	return os.ReadFile(path)
}

// Validate reports every problem at once as a single ConfigurationError.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	if strings.TrimSpace(c.Server.Addr) == "" {
		add("server.addr: must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		add("server.shutdown_timeout: must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.MaxBodyBytes <= 0 {
		add("server.max_body_bytes: must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Upstream.Timeout <= 0 {
		add("upstream.timeout: must be positive, got %s", c.Upstream.Timeout)
	}
	for key, raw := range map[string]string{
		"upstream.jsonplaceholder_base_url": c.Upstream.JSONPlaceholderBaseURL,
		"upstream.open_meteo_base_url":      c.Upstream.OpenMeteoBaseURL,
	} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			add("%s: %q is not an absolute http(s) URL", key, raw)
		}
	}
	if !c.Catalog.Builtin && strings.TrimSpace(c.Catalog.File) == "" {
		add("catalog: builtin is disabled and no file is configured")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		add("log.level: %v", err)
	}
	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		add("log.format: must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.Log.Format)
	}

	if len(problems) == 0 {
		return nil
	}
	// Map iteration above is unordered.
	slices.Sort(problems)
	return domain.ConfigurationError(domain.ReasonInvalidConfig,
		fmt.Sprintf("invalid configuration (%d problems)", len(problems)),
		map[string]any{domain.KeyErrors: problems})
}
