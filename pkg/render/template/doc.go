// Package template defines the renderer-agnostic template interface theme
// rendering depends on. The gotemplate subpackage provides the pongo2-backed
// implementation that also exposes registered theme helpers as template tags.
package template
