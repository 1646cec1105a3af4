package content

import (
	"bytes"

	bm "github.com/microcosm-cc/bluemonday"
	bf "github.com/russross/blackfriday"
)

const markdownExtensions = bf.EXTENSION_TABLES |
	bf.EXTENSION_FENCED_CODE |
	bf.EXTENSION_AUTOLINK |
	bf.EXTENSION_STRIKETHROUGH |
	bf.EXTENSION_NO_INTRA_EMPHASIS

// Renderer turns post markdown into HTML.
type Renderer struct {
	policy *bm.Policy
}

// NewRenderer returns a Renderer sanitising output with the UGC policy.
func NewRenderer() *Renderer {
	return &Renderer{policy: bm.UGCPolicy()}
}

// HTML renders the post body. Output is sanitised unless the post is marked
// unsafe.
func (r *Renderer) HTML(post Post) (string, error) {
	out := bf.Markdown([]byte(post.Markdown),
		imageAltTitleCopy{bf.HtmlRenderer(0, "", "")},
		markdownExtensions,
	)
	if !post.Unsafe {
		out = r.policy.SanitizeBytes(out)
	}
	return string(out), nil
}

// imageAltTitleCopy fills a missing image title from its alt text and vice
// versa.
type imageAltTitleCopy struct {
	bf.Renderer
}

func (md imageAltTitleCopy) Image(out *bytes.Buffer, link []byte, title []byte, alt []byte) {
	if title == nil {
		title = alt
	}
	if alt == nil {
		alt = title
	}
	md.Renderer.Image(out, link, title, alt)
}
