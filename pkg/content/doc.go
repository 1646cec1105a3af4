// Package content loads posts written in markdown with YAML front matter and
// renders their bodies to sanitised HTML.
package content
