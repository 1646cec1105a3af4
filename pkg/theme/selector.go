package theme

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithDefaultTheme sets the theme used when Select receives an empty name.
func WithDefaultTheme(name string) SelectorOption {
	return func(s *Selector) {
		s.defaultTheme = strings.TrimSpace(name)
	}
}

// WithDefaultVariant sets the variant used when Select receives an empty
// variant and the chosen theme declares it.
func WithDefaultVariant(variant string) SelectorOption {
	return func(s *Selector) {
		s.defaultVariant = strings.TrimSpace(variant)
	}
}

// Selector picks a manifest by theme name and variant.
type Selector struct {
	mu sync.RWMutex

	manifests      map[string]*gotheme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector validates the manifests against a go-theme registry and returns
// a selector over them. Without WithDefaultTheme the first manifest by name
// is the default.
func NewSelector(manifests []*gotheme.Manifest, options ...SelectorOption) (*Selector, error) {
	s := &Selector{manifests: make(map[string]*gotheme.Manifest, len(manifests))}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	registry := gotheme.NewRegistry()
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theme: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}

	if s.defaultTheme == "" {
		if names := s.Names(); len(names) > 0 {
			s.defaultTheme = names[0]
		}
	}
	return s, nil
}

// Names lists registered theme names in sorted order.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements gotheme.ThemeSelector. Empty arguments fall back to the
// configured defaults. A default variant the theme does not declare is
// ignored; an explicitly requested unknown variant is an error.
func (s *Selector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.manifests) == 0 {
		return nil, ErrNoThemes
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		if _, ok := manifest.Variants[s.defaultVariant]; ok {
			variant = s.defaultVariant
		}
	} else if _, ok := manifest.Variants[variant]; !ok {
		return nil, fmt.Errorf("%w: %q has no variant %q", ErrVariantNotFound, name, variant)
	}

	return &gotheme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}
