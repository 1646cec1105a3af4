package site_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-themehelpers/pkg/comments"
	"github.com/goliatone/go-themehelpers/pkg/content"
	"github.com/goliatone/go-themehelpers/pkg/helpers"
	"github.com/goliatone/go-themehelpers/pkg/helpers/commentcount"
	"github.com/goliatone/go-themehelpers/pkg/render/template/gotemplate"
	"github.com/goliatone/go-themehelpers/pkg/site"
	"github.com/goliatone/go-themehelpers/pkg/testsupport"
	"github.com/goliatone/go-themehelpers/pkg/theme"
)

func newEngine(t *testing.T, templates string) *gotemplate.Engine {
	t.Helper()

	registry := helpers.NewRegistry()
	if err := commentcount.Register(registry); err != nil {
		t.Fatalf("register helper: %v", err)
	}

	opts := []gotemplate.Option{gotemplate.WithHelpers(registry)}
	if templates == "" {
		opts = append(opts, gotemplate.WithFS(site.DefaultTemplates()))
	} else {
		opts = append(opts, gotemplate.WithBaseDir(templates))
	}
	engine, err := gotemplate.New(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func testStore() *content.MemoryStore {
	return content.NewMemoryStore(
		content.Post{
			ID:          "w1",
			Slug:        "welcome",
			Title:       "Welcome",
			Markdown:    "Hello *there*.",
			PublishedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		},
		content.Post{
			ID:          "o1",
			Slug:        "older",
			Title:       "Older",
			Markdown:    "Old news.",
			PublishedAt: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	)
}

func testInjector() *comments.Injector {
	return comments.New(
		comments.WithFeatureFlags(comments.StaticFlags{"comments": true}),
		comments.WithKeyFetcher(comments.StaticKey("xyz")),
		comments.WithSiteURL("https://blog.example.com"),
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSite(t *testing.T, opts ...site.Option) *site.Site {
	t.Helper()
	base := []site.Option{
		site.WithEngine(newEngine(t, filepath.Join("testdata", "templates"))),
		site.WithStore(testStore()),
		site.WithComments(testInjector()),
		site.WithLogger(discardLogger()),
	}
	s, err := site.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	return s
}

func TestRenderPostGolden(t *testing.T) {
	s := newTestSite(t)

	out, err := s.RenderPost(context.Background(), "welcome")
	if err != nil {
		t.Fatalf("render post: %v", err)
	}

	goldenPath := filepath.Join("testdata", "post.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(out)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("post output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIndexGolden(t *testing.T) {
	s := newTestSite(t)

	out, err := s.RenderIndex(context.Background())
	if err != nil {
		t.Fatalf("render index: %v", err)
	}

	goldenPath := filepath.Join("testdata", "index.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(out)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("index output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPostUsesThemePartial(t *testing.T) {
	cfg := theme.RendererConfig(&gotheme.Selection{
		Theme: "acme",
		Manifest: &gotheme.Manifest{
			Name:      "acme",
			Version:   "1.0.0",
			Templates: map[string]string{theme.PartialPost: "custom-post"},
		},
	}, theme.DefaultPartials())

	s := newTestSite(t, site.WithTheme(cfg))
	out, err := s.RenderPost(context.Background(), "older")
	if err != nil {
		t.Fatalf("render post: %v", err)
	}
	if out != "custom o1\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderPostNotFound(t *testing.T) {
	s := newTestSite(t)

	_, err := s.RenderPost(context.Background(), "missing")
	var statusErr site.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", statusErr.StatusCode())
	}
	if !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected wrapped ErrNotFound, got %v", err)
	}
}

func TestDefaultTemplates(t *testing.T) {
	s, err := site.New(
		site.WithEngine(newEngine(t, "")),
		site.WithStore(testStore()),
		site.WithComments(testInjector()),
		site.WithTitle("Acme Blog"),
		site.WithLogger(discardLogger()),
	)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}

	post, err := s.RenderPost(context.Background(), "welcome")
	if err != nil {
		t.Fatalf("render post: %v", err)
	}
	for _, want := range []string{
		`<title>Welcome | Acme Blog</title>`,
		`data-ghost-comments-counts-api="https://blog.example.com/"`,
		`<span data-ghost-comment-count="w1" data-ghost-comment-count-empty="No comments"`,
		`<p>Hello <em>there</em>.</p>`,
	} {
		if !strings.Contains(post, want) {
			t.Fatalf("post page missing %q:\n%s", want, post)
		}
	}

	index, err := s.RenderIndex(context.Background())
	if err != nil {
		t.Fatalf("render index: %v", err)
	}
	for _, want := range []string{
		`<a href="/welcome/">Welcome</a>`,
		`<span data-ghost-comment-count="o1"`,
	} {
		if !strings.Contains(index, want) {
			t.Fatalf("index page missing %q:\n%s", want, index)
		}
	}
}

func TestCommentsDisabledOmitsPlaceholders(t *testing.T) {
	s, err := site.New(
		site.WithEngine(newEngine(t, "")),
		site.WithStore(testStore()),
		site.WithLogger(discardLogger()),
	)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}

	out, err := s.RenderPost(context.Background(), "welcome")
	if err != nil {
		t.Fatalf("render post: %v", err)
	}
	if strings.Contains(out, "data-ghost-comment-count") || strings.Contains(out, "<script") {
		t.Fatalf("expected no comment markup when comments are disabled:\n%s", out)
	}
}

func TestScriptFailureStillRenders(t *testing.T) {
	injector := comments.New(
		comments.WithFeatureFlags(comments.StaticFlags{"comments": true}),
		comments.WithKeyFetcher(comments.KeyFetcherFunc(func(context.Context) (string, error) {
			return "", errors.New("key service down")
		})),
	)
	s := newTestSite(t, site.WithComments(injector))

	out, err := s.RenderPost(context.Background(), "welcome")
	if err != nil {
		t.Fatalf("render post: %v", err)
	}
	if !strings.HasPrefix(out, "\n<h1>Welcome</h1>") {
		t.Fatalf("expected page without script, got %q", out)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := site.New(site.WithStore(testStore())); !errors.Is(err, site.ErrMissingEngine) {
		t.Fatalf("expected ErrMissingEngine, got %v", err)
	}
	if _, err := site.New(site.WithEngine(newEngine(t, ""))); !errors.Is(err, site.ErrMissingStore) {
		t.Fatalf("expected ErrMissingStore, got %v", err)
	}
}

func TestRoutes(t *testing.T) {
	s := newTestSite(t, site.WithTitle("Acme"))
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	client := server.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	cases := []struct {
		path     string
		status   int
		contains string
	}{
		{path: "/healthz", status: http.StatusOK, contains: "OK"},
		{path: "/", status: http.StatusOK, contains: "Welcome:<span"},
		{path: "/welcome/", status: http.StatusOK, contains: "<h1>Welcome</h1>"},
		{path: "/welcome", status: http.StatusMovedPermanently},
		{path: "/missing/", status: http.StatusNotFound, contains: "missing Acme"},
		{path: "/a/b/c", status: http.StatusNotFound, contains: "missing Acme"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := client.Get(server.URL + tc.path)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.StatusCode)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !strings.Contains(string(body), tc.contains) {
				t.Fatalf("body missing %q: %s", tc.contains, body)
			}
		})
	}
}

func TestStoreFailureIs500(t *testing.T) {
	s, err := site.New(
		site.WithEngine(newEngine(t, filepath.Join("testdata", "templates"))),
		site.WithStore(failingStore{}),
		site.WithLogger(discardLogger()),
	)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (content.Post, error) {
	return content.Post{}, os.ErrPermission
}

func (failingStore) List(context.Context) ([]content.Post, error) {
	return nil, os.ErrPermission
}
