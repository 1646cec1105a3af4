package theme

import "errors"

var (
	// ErrThemeNotFound is returned when a selection names an unknown theme.
	ErrThemeNotFound = errors.New("theme: theme not found")
	// ErrVariantNotFound is returned when a selection names a variant the
	// theme does not declare.
	ErrVariantNotFound = errors.New("theme: variant not found")
	// ErrNoThemes is returned when a selector has nothing to choose from.
	ErrNoThemes = errors.New("theme: no themes registered")
)
