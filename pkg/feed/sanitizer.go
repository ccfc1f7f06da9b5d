package feed

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/rsskit/pkg/rss"
)

// Sanitizer cleans html in channel and item text. Descriptions keep user generated
// content markup, titles are stripped to plain text.
type Sanitizer struct {
	rich  *bluemonday.Policy
	plain *bluemonday.Policy
}

// NewSanitizer makes a sanitizer with bluemonday's ugc policy for descriptions
func NewSanitizer() *Sanitizer {
	rich := bluemonday.UGCPolicy()
	rich.RequireNoFollowOnLinks(true)
	rich.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{rich: rich, plain: bluemonday.StrictPolicy()}
}

// Channel returns a sanitized copy of ch, rebuilt and validated through the builders.
// An item whose title and description are both empty after cleaning fails validation.
func (s *Sanitizer) Channel(ch rss.Channel) (rss.Channel, error) {
	src := ch.Clone()
	items := src.Items
	src.Items = nil
	src.Title = s.cleanText(src.Title)
	src.Description = s.cleanHTML(src.Description)

	b := src.ToBuilder()
	for _, item := range items {
		item.Title = s.cleanText(item.Title)
		item.Description = s.cleanHTML(item.Description)
		b.Items(item.ToBuilder())
	}
	return b.Finalize()
}

func (s *Sanitizer) cleanHTML(v string) string {
	if v == "" {
		return ""
	}
	return strings.TrimSpace(s.rich.Sanitize(v))
}

// cleanText strips all markup, strict policy escapes the remaining text so it is unescaped back
func (s *Sanitizer) cleanText(v string) string {
	if v == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.plain.Sanitize(v)))
}
