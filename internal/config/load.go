package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides. Nested keys use a double
// underscore: PORTFOLIO_HTTP__ADDRESS -> http.address.
const EnvPrefix = "PORTFOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// PORT is what most hosting platforms inject.
	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTP.Address = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Durations are written in their human form ("15s", "30m0s") so that the
// saved file reads back through koanf's string-to-duration hook.

func (h HTTPConfig) MarshalYAML() (any, error) {
	return struct {
		Address        string   `yaml:"address"`
		ReadTimeout    string   `yaml:"read_timeout"`
		WriteTimeout   string   `yaml:"write_timeout"`
		TrustedProxies []string `yaml:"trusted_proxies,omitempty"`
	}{h.Address, h.ReadTimeout.String(), h.WriteTimeout.String(), h.TrustedProxies}, nil
}

func (v ViewsConfig) MarshalYAML() (any, error) {
	return struct {
		TTL           string `yaml:"ttl"`
		SweepInterval string `yaml:"sweep_interval"`
		Max           int    `yaml:"max"`
	}{v.TTL.String(), v.SweepInterval.String(), v.Max}, nil
}

func (a AnalyticsConfig) MarshalYAML() (any, error) {
	return struct {
		Enabled   bool     `yaml:"enabled"`
		DBPath    string   `yaml:"db_path"`
		Retention string   `yaml:"retention"`
		Exclude   []string `yaml:"exclude"`
	}{a.Enabled, a.DBPath, a.Retention.String(), a.Exclude}, nil
}
