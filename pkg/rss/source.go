package rss

import "net/url"

// Source is the channel an item came from
type Source struct {
	URL   *url.URL
	Title string
}

// SourceBuilder accumulates fields of a Source
type SourceBuilder struct {
	url   string
	title string
}

// NewSourceBuilder makes an empty source builder
func NewSourceBuilder() *SourceBuilder {
	return &SourceBuilder{}
}

// URL sets the url of the source channel
func (b *SourceBuilder) URL(u string) *SourceBuilder {
	b.url = u
	return b
}

// Title sets the optional title of the source channel
func (b *SourceBuilder) Title(title string) *SourceBuilder {
	b.title = title
	return b
}

// Finalize validates the accumulated fields and makes a Source
func (b *SourceBuilder) Finalize() (Source, error) {
	u, err := optionalURL("url", b.url)
	if err != nil {
		return Source{}, err
	}
	title, err := ParseText("title", b.title)
	if err != nil {
		return Source{}, err
	}
	return Source{URL: u, Title: title}, nil
}

// ToBuilder makes a builder prefilled with the source's fields
func (s Source) ToBuilder() *SourceBuilder {
	return NewSourceBuilder().URL(urlString(s.URL)).Title(s.Title)
}

// Clone returns a deep copy of the source
func (s Source) Clone() Source {
	s.URL = cloneURL(s.URL)
	return s
}
