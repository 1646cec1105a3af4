package content

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Post is a published piece of content. ID is what comment_count placeholders
// carry to the client so counts can be fetched per post.
type Post struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Markdown    string    `json:"markdown"`
	PublishedAt time.Time `json:"published_at"`
	// Unsafe skips HTML sanitising for trusted authors.
	Unsafe bool `json:"-"`
}

// PostID exposes the identifier to template helpers.
func (p Post) PostID() string {
	return p.ID
}

// URL is the site-relative permalink.
func (p Post) URL() string {
	return "/" + p.Slug + "/"
}

// Date formats PublishedAt for display.
func (p Post) Date() string {
	if p.PublishedAt.IsZero() {
		return ""
	}
	return p.PublishedAt.Format(DateLayout)
}

// DateLayout is the display and front matter date layout.
const DateLayout = "2006-01-02 15:04"

var dateLayouts = []string{time.RFC3339, DateLayout, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("content: unrecognised date %q", value)
}

// SortNewest orders posts by PublishedAt descending, then by slug.
func SortNewest(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].PublishedAt.After(posts[j].PublishedAt)
		}
		return posts[i].Slug < posts[j].Slug
	})
}
