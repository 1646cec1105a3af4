package site

import (
	"log/slog"
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-themehelpers/pkg/comments"
	"github.com/goliatone/go-themehelpers/pkg/content"
	"github.com/goliatone/go-themehelpers/pkg/render/template"
)

// Option configures a Site.
type Option func(*Site)

// WithEngine sets the template engine pages render through.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(s *Site) {
		s.engine = engine
	}
}

// WithStore sets the post source.
func WithStore(store content.Store) Option {
	return func(s *Site) {
		s.store = store
	}
}

// WithContentRenderer overrides the markdown renderer.
func WithContentRenderer(renderer *content.Renderer) Option {
	return func(s *Site) {
		if renderer != nil {
			s.content = renderer
		}
	}
}

// WithComments sets the injector producing comment_counts_script.
func WithComments(injector *comments.Injector) Option {
	return func(s *Site) {
		s.comments = injector
	}
}

// WithTheme sets the resolved theme configuration.
func WithTheme(cfg *gotheme.RendererConfig) Option {
	return func(s *Site) {
		s.theme = cfg
	}
}

// WithTitle sets the site title exposed as site.title. Empty titles are
// ignored.
func WithTitle(title string) Option {
	return func(s *Site) {
		if title = strings.TrimSpace(title); title != "" {
			s.title = title
		}
	}
}

// WithURL sets the site URL exposed as site.url.
func WithURL(url string) Option {
	return func(s *Site) {
		s.url = strings.TrimSpace(url)
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}
