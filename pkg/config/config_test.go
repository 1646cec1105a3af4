package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-themehelpers/pkg/comments"
)

const siteYAML = `
site_url: https://blog.example.com
frontend_key: xyz
labs:
  comments: true
  members: false
settings:
  comments_enabled: all
theme:
  name: casper
  variant: dark
content_dir: posts
`

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte(siteYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := &Config{
		Addr:         DefaultAddr,
		SiteURL:      "https://blog.example.com/",
		FrontendKey:  "xyz",
		Labs:         map[string]bool{"comments": true, "members": false},
		Settings:     map[string]string{"comments_enabled": "all"},
		Theme:        Theme{Name: "casper", Variant: "dark", Dir: filepath.Join(dir, DefaultThemeDir)},
		ContentDir:   filepath.Join(dir, "posts"),
		TemplatesDir: filepath.Join(dir, DefaultTemplatesDir),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"comments"}, cfg.EnabledLabs()); diff != "" {
		t.Fatalf("labs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON(t *testing.T) {
	cfg, err := Parse("site.json", []byte(`{"site_url":"http://localhost:3000","labs":{"comments":true}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.SiteURL != "http://localhost:3000/" || !cfg.Labs["comments"] {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseRejectsBadSiteURL(t *testing.T) {
	for _, input := range []string{"site_url: ftp://example.com", "site_url: http://", "site_url: [\n"} {
		if _, err := Parse("site.yaml", []byte(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestLoadEmptyPathDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != DefaultAddr || cfg.SiteURL != DefaultSiteURL {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:        ":8080",
		EnvSiteURL:     "https://env.example.com",
		EnvFrontendKey: " abc ",
		EnvLabs:        "comments, members,,",
		EnvTheme:       "source",
	}
	cfg := Default()
	err := cfg.applyEnv(func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}

	if cfg.Addr != ":8080" || cfg.SiteURL != "https://env.example.com/" || cfg.FrontendKey != "abc" || cfg.Theme.Name != "source" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff(map[string]bool{"comments": true, "members": true}, cfg.Labs); diff != "" {
		t.Fatalf("labs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("THEMEHELPERS_TEST_DOTENV=from-file\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("THEMEHELPERS_TEST_DOTENV") })

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("THEMEHELPERS_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected dotenv value, got %q", got)
	}
}

func TestCommentsCapabilities(t *testing.T) {
	cfg := Default()
	cfg.Labs["comments"] = true
	cfg.FrontendKey = "xyz"

	injector := comments.New(cfg.CommentsOptions()...)
	script, err := injector.Script(context.Background())
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	want := `<script defer src="http://localhost:2368/public/comment-counts.min.js" data-ghost-comments-counts-api="http://localhost:2368/" data-key="xyz" crossorigin="anonymous"></script>`
	if script != want {
		t.Fatalf("script mismatch\nwant: %q\n got: %q", want, script)
	}

	cfg.Settings["comments_enabled"] = "off"
	if comments.New(cfg.CommentsOptions()...).Enabled() {
		t.Fatalf("expected comments disabled by setting")
	}

	cfg.FrontendKey = ""
	if cfg.KeyFetcher() != nil {
		t.Fatalf("expected nil key fetcher without a key")
	}
}
