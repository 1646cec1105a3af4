package themehelpers

import (
	"github.com/goliatone/go-themehelpers/pkg/helpers"
	"github.com/goliatone/go-themehelpers/pkg/helpers/commentcount"
	"github.com/goliatone/go-themehelpers/pkg/render/template/gotemplate"
)

// Hash aliases helpers.Hash so callers can pass named arguments without
// importing the helpers package.
type Hash = helpers.Hash

// Invocation aliases helpers.Invocation.
type Invocation = helpers.Invocation

// CommentCountArgs aliases commentcount.Args.
type CommentCountArgs = commentcount.Args

// DefaultRegistry returns a helper registry with every built-in helper
// registered.
func DefaultRegistry() *helpers.Registry {
	registry := helpers.NewRegistry()
	registry.MustRegister(commentcount.NewHelper())
	return registry
}

// RenderCommentCount renders the comment_count placeholder for a post, the
// same markup {% comment_count %} produces inside a template.
func RenderCommentCount(postID string, hash Hash) string {
	return commentcount.Render(postID, commentcount.ArgsFromHash(hash))
}

// NewEngine builds a template engine with the default helpers registered as
// tags. Options are applied after the defaults, so WithHelpers can replace the
// registry.
func NewEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	opts := append([]gotemplate.Option{gotemplate.WithHelpers(DefaultRegistry())}, options...)
	return gotemplate.New(opts...)
}
