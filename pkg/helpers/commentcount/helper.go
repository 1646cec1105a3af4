package commentcount

import "github.com/goliatone/go-themehelpers/pkg/helpers"

// Option configures a Helper.
type Option func(*Helper)

// WithDefaults replaces the values used for omitted arguments, letting a theme
// ship its own wording. Arguments supplied in the template still win.
func WithDefaults(defaults Args) Option {
	return func(h *Helper) {
		h.defaults = defaults
	}
}

// Helper exposes Render through the helpers.Helper contract.
type Helper struct {
	defaults Args
}

var _ helpers.Helper = (*Helper)(nil)

// NewHelper constructs the comment_count helper.
func NewHelper(options ...Option) *Helper {
	h := &Helper{defaults: DefaultArgs()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// Name implements helpers.Helper.
func (h *Helper) Name() string {
	return Name
}

// Render implements helpers.Helper.
func (h *Helper) Render(inv helpers.Invocation) string {
	return Render(inv.ID, argsFromHash(inv.Hash, h.defaults))
}

// Register adds the helper to reg under Name.
func Register(reg *helpers.Registry, options ...Option) error {
	return reg.Register(NewHelper(options...))
}
