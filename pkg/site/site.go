package site

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-themehelpers/pkg/comments"
	"github.com/goliatone/go-themehelpers/pkg/content"
	"github.com/goliatone/go-themehelpers/pkg/render/template"
	"github.com/goliatone/go-themehelpers/pkg/theme"
)

//go:embed templates/*.tpl
var defaultTemplates embed.FS

// DefaultTemplates returns the built-in index, post and not-found templates.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("site: default templates: %v", err))
	}
	return sub
}

// Site renders pages for a content store.
type Site struct {
	engine   template.TemplateRenderer
	store    content.Store
	content  *content.Renderer
	comments *comments.Injector
	theme    *gotheme.RendererConfig
	title    string
	url      string
	logger   *slog.Logger
}

// New constructs a Site. An engine and a store are required.
func New(options ...Option) (*Site, error) {
	s := &Site{
		content: content.NewRenderer(),
		logger:  slog.Default(),
		title:   "Blog",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.engine == nil {
		return nil, ErrMissingEngine
	}
	if s.store == nil {
		return nil, ErrMissingStore
	}
	if s.theme == nil {
		s.theme = theme.RendererConfig(nil, theme.DefaultPartials())
	}
	return s, nil
}

// RenderPost renders the post identified by slug. Unknown slugs produce a
// StatusError with code 404.
func (s *Site) RenderPost(ctx context.Context, slug string) (string, error) {
	post, err := s.store.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return "", StatusError{Code: http.StatusNotFound, Err: err}
		}
		return "", fmt.Errorf("site: load post %q: %w", slug, err)
	}

	view, err := s.postView(post)
	if err != nil {
		return "", err
	}

	data := s.pageData(ctx)
	data["id"] = post.ID
	data["post"] = view

	return s.render(theme.PartialPost, "post", data)
}

// RenderIndex renders the post listing.
func (s *Site) RenderIndex(ctx context.Context) (string, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("site: list posts: %w", err)
	}

	views := make([]map[string]any, 0, len(posts))
	for _, post := range posts {
		view, err := s.postView(post)
		if err != nil {
			return "", err
		}
		views = append(views, view)
	}

	data := s.pageData(ctx)
	data["posts"] = views

	return s.render(theme.PartialIndex, "index", data)
}

// RenderNotFound renders the theme's not-found page.
func (s *Site) RenderNotFound(ctx context.Context) (string, error) {
	return s.render(theme.PartialNotFound, "not-found", s.pageData(ctx))
}

func (s *Site) render(partial, fallback string, data map[string]any) (string, error) {
	name := theme.Partial(s.theme, partial, fallback)
	out, err := s.engine.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("site: render %s: %w", name, err)
	}
	return out, nil
}

// pageData builds the context shared by every page. A failing comment counts
// script is logged and omitted so the page still renders.
func (s *Site) pageData(ctx context.Context) map[string]any {
	script := ""
	if s.comments != nil {
		var err error
		script, err = s.comments.Script(ctx)
		if err != nil {
			s.logger.Warn("comment counts script unavailable", "error", err)
			script = ""
		}
	}

	return map[string]any{
		"site": map[string]any{
			"title": s.title,
			"url":   s.url,
		},
		"theme":                 theme.NewContext(s.theme),
		"comment_counts_script": script,
		"comments_enabled":      s.comments.Enabled(),
	}
}

func (s *Site) postView(post content.Post) (map[string]any, error) {
	html, err := s.content.HTML(post)
	if err != nil {
		return nil, fmt.Errorf("site: render post %q: %w", post.Slug, err)
	}
	return map[string]any{
		"id":      post.ID,
		"slug":    post.Slug,
		"title":   post.Title,
		"author":  post.Author,
		"excerpt": post.Excerpt,
		"date":    post.Date(),
		"url":     post.URL(),
		"html":    html,
	}, nil
}
