package themehelpers_test

import (
	"testing"

	themehelpers "github.com/goliatone/go-themehelpers"
	"github.com/goliatone/go-themehelpers/pkg/helpers/commentcount"
	"github.com/goliatone/go-themehelpers/pkg/render/template/gotemplate"
)

func TestRenderCommentCountScenarios(t *testing.T) {
	cases := []struct {
		name     string
		hash     themehelpers.Hash
		template string
		want     string
	}{
		{
			name:     "autowrap disabled",
			hash:     themehelpers.Hash{"autowrap": "false", "empty": "No comments", "singular": "comment", "plural": "comments"},
			template: `{% comment_count empty="No comments" singular="comment" plural="comments" autowrap="false" %}`,
			want: `<script data-ghost-comment-count="post-id" data-ghost-comment-count-empty="No comments" data-ghost-comment-count-singular="comment" data-ghost-comment-count-plural="comments" data-ghost-comment-count-tag="script" data-ghost-comment-count-class-name="" data-ghost-comment-count-autowrap="false">` +
				"\n</script>",
		},
		{
			name:     "custom wrapper",
			hash:     themehelpers.Hash{"autowrap": "div", "class": "custom", "empty": "No comments", "singular": "comment", "plural": "comments"},
			template: `{% comment_count empty="No comments" singular="comment" plural="comments" autowrap="div" class="custom" %}`,
			want: `<div data-ghost-comment-count="post-id" data-ghost-comment-count-empty="No comments" data-ghost-comment-count-singular="comment" data-ghost-comment-count-plural="comments" data-ghost-comment-count-tag="div" data-ghost-comment-count-class-name="custom" data-ghost-comment-count-autowrap="true">` +
				"\n</div>",
		},
		{
			name:     "defaults",
			hash:     themehelpers.Hash{},
			template: `{% comment_count %}`,
			want: `<span data-ghost-comment-count="post-id" data-ghost-comment-count-empty="" data-ghost-comment-count-singular="comment" data-ghost-comment-count-plural="comments" data-ghost-comment-count-tag="span" data-ghost-comment-count-class-name="" data-ghost-comment-count-autowrap="true">` +
				"\n</span>",
		},
	}

	engine, err := themehelpers.NewEngine(gotemplate.WithFS(themehelpers.EmbeddedTemplates()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := themehelpers.RenderCommentCount("post-id", tc.hash); got != tc.want {
				t.Fatalf("direct render mismatch\nwant: %q\n got: %q", tc.want, got)
			}

			got, err := engine.RenderString(tc.template, map[string]any{"id": "post-id"})
			if err != nil {
				t.Fatalf("template render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("template render mismatch\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestNewEngineRequiresTemplateSource(t *testing.T) {
	if _, err := themehelpers.NewEngine(); err == nil {
		t.Fatalf("expected error without a template source")
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry := themehelpers.DefaultRegistry()
	if !registry.Has(commentcount.Name) {
		t.Fatalf("expected %s registered", commentcount.Name)
	}
	if themehelpers.DefaultRegistry() == registry {
		t.Fatalf("expected a fresh registry per call")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	fsys := themehelpers.EmbeddedTemplates()
	for _, name := range []string{"index.tpl", "post.tpl", "not-found.tpl"} {
		if _, err := fsys.Open(name); err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
	}
}
