package helpers

import "strings"

// Hash holds the named arguments a template passes to a helper, e.g.
// {% comment_count empty="No comments" %} yields Hash{"empty": "No comments"}.
type Hash map[string]string

// Lookup reports the value stored under key and whether the key was supplied.
// A key supplied with an empty value is still reported as present.
func (h Hash) Lookup(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	value, ok := h[strings.TrimSpace(key)]
	return value, ok
}

// StringOr returns the value stored under key, or fallback when the key was
// not supplied.
func (h Hash) StringOr(key, fallback string) string {
	if value, ok := h.Lookup(key); ok {
		return value
	}
	return fallback
}

// Clone returns a shallow copy so callers can hand the hash to a helper
// without sharing the backing map.
func (h Hash) Clone() Hash {
	if len(h) == 0 {
		return Hash{}
	}
	out := make(Hash, len(h))
	for key, value := range h {
		out[key] = value
	}
	return out
}

// Invocation is the per-call input to a helper: the identifier of the content
// item being rendered plus the named arguments.
type Invocation struct {
	ID   string
	Hash Hash
}

// Helper renders markup for a single template call. Implementations must be
// safe for concurrent use since one helper instance serves every render.
type Helper interface {
	Name() string
	Render(inv Invocation) string
}

// Func adapts a plain function into a Helper.
type Func struct {
	HelperName string
	Fn         func(Invocation) string
}

// Name implements Helper.
func (f Func) Name() string {
	return f.HelperName
}

// Render implements Helper. A nil Fn renders nothing.
func (f Func) Render(inv Invocation) string {
	if f.Fn == nil {
		return ""
	}
	return f.Fn(inv)
}
