// Package commentcount implements the comment_count theme helper. The helper
// renders an empty placeholder element. Its data attributes tell the comment
// counts browser script which post to look up and how to word the count.
//
// Typical theme usage:
//
//	{% comment_count empty="No comments" singular="reply" plural="replies" autowrap="div" class="count" %}
//
// renders, for a post with id "post-id":
//
//	<div data-ghost-comment-count="post-id" ... data-ghost-comment-count-autowrap="true">
//	</div>
//
// Render is a pure function and safe to call from concurrent renders.
package commentcount
