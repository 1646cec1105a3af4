// Package comments builds the head script that fills comment_count
// placeholders on the client. The script is only emitted when the comments
// labs flag is on and the site has not switched comments off; both checks,
// plus the frontend key lookup, go through interfaces supplied by the caller.
package comments
