package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no post matches a slug.
var ErrNotFound = errors.New("content: post not found")

// Store reads posts.
type Store interface {
	Get(ctx context.Context, slug string) (Post, error)
	List(ctx context.Context) ([]Post, error)
}

// MemoryStore is a Store over an in-memory post set.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]Post
}

// NewMemoryStore returns a store holding posts. Later duplicates of a slug
// replace earlier ones.
func NewMemoryStore(posts ...Post) *MemoryStore {
	store := &MemoryStore{posts: make(map[string]Post, len(posts))}
	for _, post := range posts {
		store.Put(post)
	}
	return store
}

// Put adds or replaces a post.
func (s *MemoryStore) Put(post Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.Slug] = post
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, slug string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[strings.Trim(slug, "/ ")]
	if !ok {
		return Post{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	return post, nil
}

// List implements Store, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	posts := make([]Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}
	s.mu.RUnlock()

	SortNewest(posts)
	return posts, nil
}

type frontMatter struct {
	ID        string `yaml:"id"`
	Slug      string `yaml:"slug"`
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Excerpt   string `yaml:"excerpt"`
	Published string `yaml:"published"`
	Unsafe    bool   `yaml:"unsafe"`
}

var frontMatterDelim = []byte("---")

// LoadDir reads every *.md file in fsys into a MemoryStore. The slug defaults
// to the file name and the ID to the slug.
func LoadDir(fsys fs.FS) (*MemoryStore, error) {
	if fsys == nil {
		return nil, fmt.Errorf("content: filesystem is nil")
	}
	matches, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("content: glob posts: %w", err)
	}

	store := NewMemoryStore()
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		post, err := ParsePost(strings.TrimSuffix(path.Base(name), ".md"), data)
		if err != nil {
			return nil, fmt.Errorf("content: parse %s: %w", name, err)
		}
		store.Put(post)
	}
	return store, nil
}

// ParsePost splits optional YAML front matter from the markdown body.
func ParsePost(slug string, data []byte) (Post, error) {
	var meta frontMatter
	body := data

	trimmed := bytes.TrimPrefix(data, []byte("\ufeff"))
	if bytes.HasPrefix(trimmed, frontMatterDelim) {
		rest := trimmed[len(frontMatterDelim):]
		end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
		if end < 0 {
			return Post{}, fmt.Errorf("content: unterminated front matter")
		}
		if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
			return Post{}, fmt.Errorf("content: decode front matter: %w", err)
		}
		body = rest[end+1+len(frontMatterDelim):]
		body = bytes.TrimLeft(body, "\r\n")
	}

	published, err := parseDate(meta.Published)
	if err != nil {
		return Post{}, err
	}

	post := Post{
		ID:          strings.TrimSpace(meta.ID),
		Slug:        strings.Trim(strings.TrimSpace(meta.Slug), "/"),
		Title:       strings.TrimSpace(meta.Title),
		Author:      strings.TrimSpace(meta.Author),
		Excerpt:     strings.TrimSpace(meta.Excerpt),
		Markdown:    string(body),
		PublishedAt: published,
		Unsafe:      meta.Unsafe,
	}
	if post.Slug == "" {
		post.Slug = slug
	}
	if post.ID == "" {
		post.ID = post.Slug
	}
	if post.Title == "" {
		post.Title = post.Slug
	}
	return post, nil
}
