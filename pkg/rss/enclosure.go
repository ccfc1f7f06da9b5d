package rss

import "net/url"

// Enclosure is a media object attached to an item
type Enclosure struct {
	URL      *url.URL
	Length   int64
	MimeType MimeType
}

// EnclosureBuilder accumulates fields of an Enclosure
type EnclosureBuilder struct {
	url      string
	length   int64
	mimeType string
}

// NewEnclosureBuilder makes an empty enclosure builder
func NewEnclosureBuilder() *EnclosureBuilder {
	return &EnclosureBuilder{}
}

// URL sets the location of the media object
func (b *EnclosureBuilder) URL(u string) *EnclosureBuilder {
	b.url = u
	return b
}

// Length sets the size in bytes, must not be negative
func (b *EnclosureBuilder) Length(length int64) *EnclosureBuilder {
	b.length = length
	return b
}

// MimeType sets the media type, e.g. "audio/mpeg"
func (b *EnclosureBuilder) MimeType(mimeType string) *EnclosureBuilder {
	b.mimeType = mimeType
	return b
}

// Finalize validates the accumulated fields and makes an Enclosure.
// Url and mime type are validated when set.
func (b *EnclosureBuilder) Finalize() (Enclosure, error) {
	u, err := optionalURL("url", b.url)
	if err != nil {
		return Enclosure{}, err
	}
	if b.length < 0 {
		return Enclosure{}, &NegativeValueError{Field: "length", Value: b.length}
	}
	res := Enclosure{URL: u, Length: b.length}
	if b.mimeType != "" {
		if res.MimeType, err = ParseMimeType("type", b.mimeType); err != nil {
			return Enclosure{}, err
		}
	}
	return res, nil
}

// ToBuilder makes a builder prefilled with the enclosure's fields
func (e Enclosure) ToBuilder() *EnclosureBuilder {
	b := NewEnclosureBuilder().URL(urlString(e.URL)).Length(e.Length)
	if e.MimeType.Type != "" {
		b.MimeType(e.MimeType.String())
	}
	return b
}

// Clone returns a deep copy of the enclosure
func (e Enclosure) Clone() Enclosure {
	e.URL = cloneURL(e.URL)
	if e.MimeType.Params != nil {
		params := make(map[string]string, len(e.MimeType.Params))
		for k, v := range e.MimeType.Params {
			params[k] = v
		}
		e.MimeType.Params = params
	}
	return e
}
