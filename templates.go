package themehelpers

import (
	"io/fs"

	"github.com/goliatone/go-themehelpers/pkg/site"
)

// EmbeddedTemplates exposes the built-in site templates so callers can reuse
// or extend them without importing the site package directly.
func EmbeddedTemplates() fs.FS {
	fsys := site.DefaultTemplates()
	return fsys
}
