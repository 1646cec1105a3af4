package theme

import (
	"encoding/json"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// Partial keys looked up in RendererConfig.Partials by the site renderer.
const (
	PartialIndex    = "site.index"
	PartialPost     = "site.post"
	PartialNotFound = "site.not_found"
)

// DefaultPartials maps each page to the template name used when the active
// theme does not override it.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialIndex:    "index",
		PartialPost:     "post",
		PartialNotFound: "not-found",
	}
}

// RendererConfig merges the selected manifest, its variant and the fallback
// partials into a renderer configuration. Variant values override base
// values; manifest templates override fallbacks.
func RendererConfig(selection *gotheme.Selection, fallbacks map[string]string) *gotheme.RendererConfig {
	cfg := &gotheme.RendererConfig{
		Partials: copyStringMap(fallbacks),
	}
	if selection == nil {
		cfg.AssetURL = assetResolver("", nil)
		return cfg
	}

	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = assetResolver("", nil)
		return cfg
	}

	variant, hasVariant := manifest.Variants[selection.Variant]

	cfg.Partials = mergeStringMaps(cfg.Partials, manifest.Templates)
	cfg.Tokens = mergeStringMaps(nil, manifest.Tokens)
	files := mergeStringMaps(nil, manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	if hasVariant {
		cfg.Partials = mergeStringMaps(cfg.Partials, variant.Templates)
		cfg.Tokens = mergeStringMaps(cfg.Tokens, variant.Tokens)
		files = mergeStringMaps(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cfg.CSSVars = cssVars(cfg.Tokens)
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func mergeStringMaps(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}
	return vars
}

// assetResolver returns a func mapping an asset key to a URL. Keys declared in
// files resolve to their mapped file; other keys are treated as paths.
func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	return func(key string) string {
		key = strings.TrimSpace(key)
		if key == "" {
			return ""
		}
		file := key
		if mapped, ok := files[key]; ok && mapped != "" {
			file = mapped
		}
		if strings.Contains(file, "://") {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

// Context is the theme data exposed to templates.
type Context struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Partials     map[string]string `json:"partials,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	JSON         string            `json:"json,omitempty"`
}

// NewContext flattens cfg into template data.
func NewContext(cfg *gotheme.RendererConfig) Context {
	if cfg == nil {
		return Context{}
	}
	ctx := Context{
		Name:     cfg.Theme,
		Variant:  cfg.Variant,
		Partials: copyStringMap(cfg.Partials),
		Tokens:   copyStringMap(cfg.Tokens),
		CSSVars:  copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	ctx.JSON = contextJSON(ctx)
	return ctx
}

// Partial returns the template mapped to key in cfg, or fallback.
func Partial(cfg *gotheme.RendererConfig, key, fallback string) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[key]); name != "" {
			return name
		}
	}
	return fallback
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func contextJSON(ctx Context) string {
	payload := struct {
		Name    string            `json:"name,omitempty"`
		Variant string            `json:"variant,omitempty"`
		Tokens  map[string]string `json:"tokens,omitempty"`
		CSSVars map[string]string `json:"cssVars,omitempty"`
	}{
		Name:    ctx.Name,
		Variant: ctx.Variant,
		Tokens:  ctx.Tokens,
		CSSVars: ctx.CSSVars,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
