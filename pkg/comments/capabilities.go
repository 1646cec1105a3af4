package comments

import (
	"context"
	"strings"
)

// LabsFlag is the feature flag that gates comment counts.
const LabsFlag = "comments"

// SettingCommentsEnabled holds the site's comment access level. The value
// "off" disables comments entirely.
const SettingCommentsEnabled = "comments_enabled"

// CommentsOff is the SettingCommentsEnabled value that disables comments.
const CommentsOff = "off"

// FeatureFlags reports whether a labs feature is switched on.
type FeatureFlags interface {
	Enabled(name string) bool
}

// Settings reads cached site settings.
type Settings interface {
	Get(key string) (string, bool)
}

// FrontendKeyFetcher resolves the public content API key sent with count
// requests.
type FrontendKeyFetcher interface {
	FrontendKey(ctx context.Context) (string, error)
}

// StaticFlags is a FeatureFlags backed by a fixed set.
type StaticFlags map[string]bool

// Enabled implements FeatureFlags.
func (f StaticFlags) Enabled(name string) bool {
	return f[strings.TrimSpace(name)]
}

// StaticSettings is a Settings backed by a map.
type StaticSettings map[string]string

// Get implements Settings.
func (s StaticSettings) Get(key string) (string, bool) {
	value, ok := s[strings.TrimSpace(key)]
	return value, ok
}

// StaticKey always returns the same key.
type StaticKey string

// FrontendKey implements FrontendKeyFetcher.
func (k StaticKey) FrontendKey(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(k), nil
}

// KeyFetcherFunc adapts a function into a FrontendKeyFetcher.
type KeyFetcherFunc func(ctx context.Context) (string, error)

// FrontendKey implements FrontendKeyFetcher.
func (fn KeyFetcherFunc) FrontendKey(ctx context.Context) (string, error) {
	return fn(ctx)
}
