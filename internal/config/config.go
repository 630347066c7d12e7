package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// Config is the top-level site configuration, corresponding to config.yaml.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" koanf:"http"`
	Logging   LoggingConfig   `yaml:"logging" koanf:"logging"`
	Site      SiteConfig      `yaml:"site" koanf:"site"`
	Views     ViewsConfig     `yaml:"views" koanf:"views"`
	Analytics AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
	Admin     AdminConfig     `yaml:"admin" koanf:"admin"`
	Metrics   MetricsConfig   `yaml:"metrics" koanf:"metrics"`
}

type HTTPConfig struct {
	Address      string        `yaml:"address" koanf:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" koanf:"write_timeout"`

	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the client address is always the TCP peer.
	TrustedProxies []string `yaml:"trusted_proxies,omitempty" koanf:"trusted_proxies"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" koanf:"level"`   // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format" koanf:"format"` // "text" | "json"
}

// SiteConfig points at the opaque assets served next to the page.
type SiteConfig struct {
	ImagesDir string `yaml:"images_dir" koanf:"images_dir"`
	AssetsDir string `yaml:"assets_dir" koanf:"assets_dir"`
	// TemplatesDir, when set, replaces the embedded templates and is
	// watched for changes.
	TemplatesDir string `yaml:"templates_dir" koanf:"templates_dir"`
}

// ViewsConfig bounds how long an idle page view keeps its state in memory
// and how many views are held at once.
type ViewsConfig struct {
	TTL           time.Duration `yaml:"ttl" koanf:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval" koanf:"sweep_interval"`
	Max           int           `yaml:"max" koanf:"max"`
}

type AnalyticsConfig struct {
	Enabled   bool          `yaml:"enabled" koanf:"enabled"`
	DBPath    string        `yaml:"db_path" koanf:"db_path"`
	Retention time.Duration `yaml:"retention" koanf:"retention"`
	Exclude   []string      `yaml:"exclude" koanf:"exclude"`
}

type AdminConfig struct {
	Username     string `yaml:"username" koanf:"username"`
	PasswordHash string `yaml:"password_hash" koanf:"password_hash"`
	JWTSecret    string `yaml:"jwt_secret" koanf:"jwt_secret"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
}

// DefaultExcludes are request paths never recorded as visits.
var DefaultExcludes = []string{
	"/static/**",
	"/Images/**",
	"/assets/**",
	"/admin/**",
	"/views/**",
	"/favicon*",
	"/metrics",
	"/healthz",
	"/readyz",
	"/privacy",
}

// Default returns a Config populated with the values used when neither the
// file nor the environment sets them.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Site: SiteConfig{
			ImagesDir: "./Images",
			AssetsDir: "./assets",
		},
		Views: ViewsConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
			Max:           10000,
		},
		Analytics: AnalyticsConfig{
			Enabled:   true,
			DBPath:    "portfolio.db",
			Retention: 365 * 24 * time.Hour,
			Exclude:   append([]string(nil), DefaultExcludes...),
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// AdminEnabled reports whether the admin dashboard can be mounted.
func (c *Config) AdminEnabled() bool {
	return c.Analytics.Enabled && c.Admin.Username != "" && c.Admin.PasswordHash != ""
}

func (c *Config) Validate() error {
	var errs []string
	if c.HTTP.Address == "" {
		errs = append(errs, "http.address is required")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		errs = append(errs, "http timeouts must be non-negative")
	}
	for _, p := range c.HTTP.TrustedProxies {
		if !validProxy(p) {
			errs = append(errs, fmt.Sprintf("http.trusted_proxies: %q is not an IP or CIDR", p))
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, "logging.format must be one of text, json")
	}
	if c.Views.TTL <= 0 {
		errs = append(errs, "views.ttl must be positive")
	}
	if c.Views.SweepInterval <= 0 {
		errs = append(errs, "views.sweep_interval must be positive")
	}
	if c.Views.Max <= 0 {
		errs = append(errs, "views.max must be positive")
	}
	if c.Analytics.Enabled {
		if c.Analytics.DBPath == "" {
			errs = append(errs, "analytics.db_path is required when analytics is enabled")
		}
		if c.Analytics.Retention <= 0 {
			errs = append(errs, "analytics.retention must be positive")
		}
	}
	if c.Admin.PasswordHash != "" && !strings.HasPrefix(c.Admin.PasswordHash, "$2") {
		errs = append(errs, "admin.password_hash must be a bcrypt hash (see hash-password)")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validProxy(s string) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}
	_, err := netip.ParsePrefix(s)
	return err == nil
}
