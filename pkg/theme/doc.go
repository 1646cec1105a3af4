// Package theme resolves go-theme manifests into the renderer configuration a
// site needs: which templates to execute for each page, design tokens exposed
// as CSS variables, and a resolver for theme asset URLs.
//
// Manifests are loaded from YAML or JSON files, registered with a Selector,
// and turned into a *theme.RendererConfig once a theme and variant are chosen:
//
//	manifests, _ := theme.LoadManifests(os.DirFS("themes"))
//	selector, _ := theme.NewSelector(manifests, theme.WithDefaultTheme("casper"))
//	selection, _ := selector.Select("", "")
//	cfg := theme.RendererConfig(selection, theme.DefaultPartials())
package theme
