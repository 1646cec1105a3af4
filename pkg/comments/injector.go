package comments

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// DefaultScriptPath is the asset path of the counts script relative to the
// site's asset root.
const DefaultScriptPath = "public/comment-counts.min.js"

// Option configures an Injector.
type Option func(*Injector)

// WithFeatureFlags sets the labs flag source.
func WithFeatureFlags(flags FeatureFlags) Option {
	return func(i *Injector) {
		i.flags = flags
	}
}

// WithSettings sets the settings source.
func WithSettings(settings Settings) Option {
	return func(i *Injector) {
		i.settings = settings
	}
}

// WithKeyFetcher sets the frontend key source.
func WithKeyFetcher(fetcher FrontendKeyFetcher) Option {
	return func(i *Injector) {
		i.keys = fetcher
	}
}

// WithSiteURL sets the site URL the script queries for counts. A trailing
// slash is added when missing.
func WithSiteURL(siteURL string) Option {
	return func(i *Injector) {
		trimmed := strings.TrimSpace(siteURL)
		if trimmed != "" && !strings.HasSuffix(trimmed, "/") {
			trimmed += "/"
		}
		i.siteURL = trimmed
	}
}

// WithScriptURL overrides the script src with a fixed URL.
func WithScriptURL(url string) Option {
	return func(i *Injector) {
		url = strings.TrimSpace(url)
		if url == "" {
			return
		}
		i.assetURL = func(string) string { return url }
	}
}

// WithAssetResolver maps DefaultScriptPath to a URL, typically the active
// theme's asset resolver.
func WithAssetResolver(resolve func(path string) string) Option {
	return func(i *Injector) {
		if resolve != nil {
			i.assetURL = resolve
		}
	}
}

// Injector renders the comment counts script tag.
type Injector struct {
	flags    FeatureFlags
	settings Settings
	keys     FrontendKeyFetcher
	siteURL  string
	assetURL func(string) string
}

// New constructs an Injector. Without feature flags the injector stays
// disabled.
func New(options ...Option) *Injector {
	i := &Injector{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(i)
	}
	if i.assetURL == nil {
		i.assetURL = func(path string) string {
			return i.siteURL + path
		}
	}
	return i
}

// Enabled reports whether the counts script should be injected.
func (i *Injector) Enabled() bool {
	if i == nil || i.flags == nil || !i.flags.Enabled(LabsFlag) {
		return false
	}
	if i.settings != nil {
		if value, ok := i.settings.Get(SettingCommentsEnabled); ok && strings.TrimSpace(value) == CommentsOff {
			return false
		}
	}
	return true
}

// Script returns the script tag, or "" when comments are disabled.
func (i *Injector) Script(ctx context.Context) (string, error) {
	if !i.Enabled() {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if i.keys == nil {
		return "", ErrKeyFetcherMissing
	}

	key, err := i.keys.FrontendKey(ctx)
	if err != nil {
		return "", fmt.Errorf("comments: fetch frontend key: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}

	var builder strings.Builder
	builder.WriteString(`<script defer src="`)
	builder.WriteString(html.EscapeString(i.assetURL(DefaultScriptPath)))
	builder.WriteString(`" data-ghost-comments-counts-api="`)
	builder.WriteString(html.EscapeString(i.siteURL))
	builder.WriteString(`" data-key="`)
	builder.WriteString(html.EscapeString(key))
	builder.WriteString(`" crossorigin="anonymous"></script>`)
	return builder.String(), nil
}
