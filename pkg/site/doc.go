// Package site renders posts and the post index through a theme's templates
// and serves them over HTTP. Every page carries the post id in its template
// context so comment_count placeholders can be emitted anywhere in a theme,
// and the comment counts script is exposed as comment_counts_script for the
// theme's head.
package site
