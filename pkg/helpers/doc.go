// Package helpers defines the contract shared by theme helpers: the named
// argument hash a template passes in, the invocation context carrying the
// current post identifier, and a registry template engines consult when a
// theme calls a helper by name.
package helpers
