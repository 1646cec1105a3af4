// Package config loads site configuration from a YAML or JSON file, with
// overrides from the environment and an optional .env file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-themehelpers/pkg/comments"
)

// Environment variables read by ApplyEnv.
const (
	EnvAddr        = "THEMEHELPERS_ADDR"
	EnvSiteURL     = "THEMEHELPERS_SITE_URL"
	EnvFrontendKey = "THEMEHELPERS_FRONTEND_KEY"
	EnvLabs        = "THEMEHELPERS_LABS"
	EnvTheme       = "THEMEHELPERS_THEME"
)

// Defaults applied by Default and Load.
const (
	DefaultAddr         = ":2368"
	DefaultSiteURL      = "http://localhost:2368/"
	DefaultContentDir   = "content"
	DefaultTemplatesDir = "templates"
	DefaultThemeDir     = "themes"
)

// Theme selects the active theme.
type Theme struct {
	Name    string `json:"name" yaml:"name"`
	Variant string `json:"variant" yaml:"variant"`
	Dir     string `json:"dir" yaml:"dir"`
}

// Config is the site configuration.
type Config struct {
	Addr         string            `json:"addr" yaml:"addr"`
	SiteURL      string            `json:"site_url" yaml:"site_url"`
	FrontendKey  string            `json:"frontend_key" yaml:"frontend_key"`
	Labs         map[string]bool   `json:"labs" yaml:"labs"`
	Settings     map[string]string `json:"settings" yaml:"settings"`
	Theme        Theme             `json:"theme" yaml:"theme"`
	ContentDir   string            `json:"content_dir" yaml:"content_dir"`
	TemplatesDir string            `json:"templates_dir" yaml:"templates_dir"`
	// ScriptURL overrides where the comment counts script is served from.
	ScriptURL string `json:"script_url" yaml:"script_url"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration at path. An empty path yields Default.
// Relative directories in the file are resolved against the file's directory.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.resolveDirs(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes configuration bytes. JSON is used for .json names, YAML for
// everything else.
func Parse(name string, data []byte) (*Config, error) {
	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", name, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from THEMEHELPERS_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if value, ok := lookup(EnvAddr); ok && strings.TrimSpace(value) != "" {
		c.Addr = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvSiteURL); ok && strings.TrimSpace(value) != "" {
		c.SiteURL = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvFrontendKey); ok {
		c.FrontendKey = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvTheme); ok && strings.TrimSpace(value) != "" {
		c.Theme.Name = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvLabs); ok {
		c.Labs = parseLabs(value)
	}
	c.applyDefaults()
	return c.Validate()
}

// Validate reports configuration that cannot serve a site.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.SiteURL)
	if err != nil {
		return fmt.Errorf("config: site_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("config: site_url %q must be an http(s) URL", c.SiteURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("config: site_url %q has no host", c.SiteURL)
	}
	return nil
}

// EnabledLabs lists the labs flags that are on, sorted.
func (c *Config) EnabledLabs() []string {
	var names []string
	for name, on := range c.Labs {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FeatureFlags exposes the labs map to the comments injector.
func (c *Config) FeatureFlags() comments.FeatureFlags {
	return comments.StaticFlags(c.Labs)
}

// SettingsCache exposes the settings map to the comments injector.
func (c *Config) SettingsCache() comments.Settings {
	return comments.StaticSettings(c.Settings)
}

// KeyFetcher returns the configured frontend key, or nil when none is set.
func (c *Config) KeyFetcher() comments.FrontendKeyFetcher {
	if strings.TrimSpace(c.FrontendKey) == "" {
		return nil
	}
	return comments.StaticKey(strings.TrimSpace(c.FrontendKey))
}

// CommentsOptions wires the capabilities above into comments.New.
func (c *Config) CommentsOptions() []comments.Option {
	options := []comments.Option{
		comments.WithFeatureFlags(c.FeatureFlags()),
		comments.WithSettings(c.SettingsCache()),
		comments.WithSiteURL(c.SiteURL),
	}
	if fetcher := c.KeyFetcher(); fetcher != nil {
		options = append(options, comments.WithKeyFetcher(fetcher))
	}
	if c.ScriptURL != "" {
		options = append(options, comments.WithScriptURL(c.ScriptURL))
	}
	return options
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = DefaultAddr
	}
	if strings.TrimSpace(c.SiteURL) == "" {
		c.SiteURL = DefaultSiteURL
	}
	if !strings.HasSuffix(c.SiteURL, "/") {
		c.SiteURL += "/"
	}
	if c.ContentDir == "" {
		c.ContentDir = DefaultContentDir
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = DefaultTemplatesDir
	}
	if c.Theme.Dir == "" {
		c.Theme.Dir = DefaultThemeDir
	}
	if c.Labs == nil {
		c.Labs = map[string]bool{}
	}
	if c.Settings == nil {
		c.Settings = map[string]string{}
	}
}

func (c *Config) resolveDirs(base string) {
	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}
	c.ContentDir = resolve(c.ContentDir)
	c.TemplatesDir = resolve(c.TemplatesDir)
	c.Theme.Dir = resolve(c.Theme.Dir)
}

func parseLabs(value string) map[string]bool {
	labs := map[string]bool{}
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		labs[name] = true
	}
	return labs
}
