// Package themehelpers provides theme template helpers for a blogging
// platform, starting with comment_count: a placeholder element whose data
// attributes tell the client-side counts script which post to count and how
// to word the result.
//
// Quick start:
//
//	engine, err := themehelpers.NewEngine(gotemplate.WithBaseDir("themes/casper"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	html, err := engine.RenderString(`{% comment_count empty="No comments" %}`,
//		map[string]any{"id": post.ID})
//
// Outside templates, RenderCommentCount produces the same markup directly.
package themehelpers
