package rss

import (
	"maps"
	"net/url"
	"time"
)

// Channel is the top element of an rss feed
type Channel struct {
	Title          string
	Link           *url.URL
	Description    string
	Language       string
	Copyright      string
	ManagingEditor string
	WebMaster      string
	PubDate        *time.Time
	LastBuildDate  *time.Time
	Categories     []Category
	Generator      string
	Docs           *url.URL
	Cloud          *Cloud
	TTL            *int64
	Image          *Image
	Rating         string
	TextInput      *TextInput
	SkipHours      []int64
	SkipDays       []time.Weekday
	Items          []Item
	Extensions     []Extension

	// Namespaces maps prefixes to namespace urls declared for extensions
	Namespaces map[string]string
}

// ChannelBuilder accumulates fields of a Channel
type ChannelBuilder struct {
	title          string
	link           string
	description    string
	language       string
	copyright      string
	managingEditor string
	webMaster      string
	pubDate        string
	lastBuildDate  string
	categories     []*CategoryBuilder
	generator      string
	docs           string
	cloud          *CloudBuilder
	ttl            *int64
	image          *ImageBuilder
	rating         string
	textInput      *TextInputBuilder
	skipHours      []int64
	skipDays       []string
	items          []*ItemBuilder
	extensions     []Extension
	namespaces     map[string]string
}

// NewChannelBuilder makes an empty channel builder
func NewChannelBuilder() *ChannelBuilder {
	return &ChannelBuilder{}
}

// Title sets the name of the channel, required
func (b *ChannelBuilder) Title(title string) *ChannelBuilder {
	b.title = title
	return b
}

// Link sets the url of the site, required
func (b *ChannelBuilder) Link(link string) *ChannelBuilder {
	b.link = link
	return b
}

// Description sets the phrase describing the channel, required
func (b *ChannelBuilder) Description(description string) *ChannelBuilder {
	b.description = description
	return b
}

// Language sets the language of the channel, e.g. "en-us"
func (b *ChannelBuilder) Language(language string) *ChannelBuilder {
	b.language = language
	return b
}

// Copyright sets the copyright notice
func (b *ChannelBuilder) Copyright(copyright string) *ChannelBuilder {
	b.copyright = copyright
	return b
}

// ManagingEditor sets the email of the editor
func (b *ChannelBuilder) ManagingEditor(editor string) *ChannelBuilder {
	b.managingEditor = editor
	return b
}

// WebMaster sets the email of the technical contact
func (b *ChannelBuilder) WebMaster(webMaster string) *ChannelBuilder {
	b.webMaster = webMaster
	return b
}

// PubDate sets the publication date, rfc 2822
func (b *ChannelBuilder) PubDate(pubDate string) *ChannelBuilder {
	b.pubDate = pubDate
	return b
}

// LastBuildDate sets the last change date, rfc 2822
func (b *ChannelBuilder) LastBuildDate(lastBuildDate string) *ChannelBuilder {
	b.lastBuildDate = lastBuildDate
	return b
}

// Categories appends categories
func (b *ChannelBuilder) Categories(categories ...*CategoryBuilder) *ChannelBuilder {
	b.categories = append(b.categories, categories...)
	return b
}

// Generator sets the program used to generate the channel
func (b *ChannelBuilder) Generator(generator string) *ChannelBuilder {
	b.generator = generator
	return b
}

// Docs sets the url of the format documentation
func (b *ChannelBuilder) Docs(docs string) *ChannelBuilder {
	b.docs = docs
	return b
}

// Cloud sets the update notification endpoint, nil removes it
func (b *ChannelBuilder) Cloud(cloud *CloudBuilder) *ChannelBuilder {
	b.cloud = cloud
	return b
}

// TTL sets the time to live in minutes, must not be negative
func (b *ChannelBuilder) TTL(ttl int64) *ChannelBuilder {
	b.ttl = &ttl
	return b
}

// Image sets the channel picture, nil removes it
func (b *ChannelBuilder) Image(image *ImageBuilder) *ChannelBuilder {
	b.image = image
	return b
}

// Rating sets the PICS rating
func (b *ChannelBuilder) Rating(rating string) *ChannelBuilder {
	b.rating = rating
	return b
}

// TextInput sets the text box, nil removes it
func (b *ChannelBuilder) TextInput(textInput *TextInputBuilder) *ChannelBuilder {
	b.textInput = textInput
	return b
}

// SkipHours appends hours (0-23, GMT) aggregators may skip
func (b *ChannelBuilder) SkipHours(hours ...int64) *ChannelBuilder {
	b.skipHours = append(b.skipHours, hours...)
	return b
}

// SkipDays appends weekday names aggregators may skip, e.g. "Saturday"
func (b *ChannelBuilder) SkipDays(days ...string) *ChannelBuilder {
	b.skipDays = append(b.skipDays, days...)
	return b
}

// Items appends items
func (b *ChannelBuilder) Items(items ...*ItemBuilder) *ChannelBuilder {
	b.items = append(b.items, items...)
	return b
}

// Extensions appends opaque namespaced elements
func (b *ChannelBuilder) Extensions(ext ...Extension) *ChannelBuilder {
	b.extensions = append(b.extensions, ext...)
	return b
}

// Namespace declares a namespace prefix used by extensions
func (b *ChannelBuilder) Namespace(prefix, uri string) *ChannelBuilder {
	if b.namespaces == nil {
		b.namespaces = map[string]string{}
	}
	b.namespaces[prefix] = uri
	return b
}

// Finalize validates the accumulated fields and makes a Channel.
// It fails on the first invalid field: scalar conversions first, then the
// required title, link and description, then nested elements in field order.
func (b *ChannelBuilder) Finalize() (Channel, error) {
	res := Channel{Namespaces: maps.Clone(b.namespaces)}

	var err error
	for _, f := range []struct {
		name string
		dst  *string
		src  string
	}{
		{"title", &res.Title, b.title},
		{"description", &res.Description, b.description},
		{"language", &res.Language, b.language},
		{"copyright", &res.Copyright, b.copyright},
		{"managingEditor", &res.ManagingEditor, b.managingEditor},
		{"webMaster", &res.WebMaster, b.webMaster},
		{"generator", &res.Generator, b.generator},
		{"rating", &res.Rating, b.rating},
	} {
		if *f.dst, err = ParseText(f.name, f.src); err != nil {
			return Channel{}, err
		}
	}
	if res.Link, err = optionalURL("link", b.link); err != nil {
		return Channel{}, err
	}
	if res.PubDate, err = optionalTimestamp("pubDate", b.pubDate); err != nil {
		return Channel{}, err
	}
	if res.LastBuildDate, err = optionalTimestamp("lastBuildDate", b.lastBuildDate); err != nil {
		return Channel{}, err
	}
	if res.Docs, err = optionalURL("docs", b.docs); err != nil {
		return Channel{}, err
	}
	if b.ttl != nil {
		if *b.ttl < 0 {
			return Channel{}, &NegativeValueError{Field: "ttl", Value: *b.ttl}
		}
		ttl := *b.ttl
		res.TTL = &ttl
	}
	for _, h := range b.skipHours {
		if h < 0 || h > 23 {
			return Channel{}, &RangeError{Field: "skipHours", Value: h, Min: 0, Max: 23}
		}
		res.SkipHours = append(res.SkipHours, h)
	}
	for _, d := range b.skipDays {
		day, err := ParseWeekday("skipDays", d)
		if err != nil {
			return Channel{}, err
		}
		res.SkipDays = append(res.SkipDays, day)
	}

	switch {
	case res.Title == "":
		return Channel{}, &RequiredFieldError{Entity: "channel", Rule: "title is required"}
	case res.Link == nil:
		return Channel{}, &RequiredFieldError{Entity: "channel", Rule: "link is required"}
	case res.Description == "":
		return Channel{}, &RequiredFieldError{Entity: "channel", Rule: "description is required"}
	}

	if res.Categories, err = finalizeCategories("categories", b.categories); err != nil {
		return Channel{}, err
	}
	if res.Extensions, err = finalizeExtensions(b.extensions); err != nil {
		return Channel{}, err
	}
	if b.cloud != nil {
		cloud, err := b.cloud.Finalize()
		if err != nil {
			return Channel{}, &FieldError{Field: "cloud", Err: err}
		}
		res.Cloud = &cloud
	}
	if b.image != nil {
		img, err := b.image.Finalize()
		if err != nil {
			return Channel{}, &FieldError{Field: "image", Err: err}
		}
		res.Image = &img
	}
	if b.textInput != nil {
		ti, err := b.textInput.Finalize()
		if err != nil {
			return Channel{}, &FieldError{Field: "textInput", Err: err}
		}
		res.TextInput = &ti
	}
	if len(b.items) > 0 {
		res.Items = make([]Item, 0, len(b.items))
		for i, ib := range b.items {
			item, err := ib.Finalize()
			if err != nil {
				return Channel{}, &FieldError{Field: indexed("items", i), Err: err}
			}
			res.Items = append(res.Items, item)
		}
	}

	groups := [][]Extension{res.Extensions}
	for _, item := range res.Items {
		groups = append(groups, item.Extensions)
	}
	res.Namespaces = declareNamespaces(res.Namespaces, groups...)
	return res, nil
}

// ToBuilder makes a builder prefilled with the channel's fields, including items
func (c Channel) ToBuilder() *ChannelBuilder {
	b := NewChannelBuilder().Title(c.Title).Link(urlString(c.Link)).Description(c.Description).
		Language(c.Language).Copyright(c.Copyright).ManagingEditor(c.ManagingEditor).WebMaster(c.WebMaster).
		PubDate(timeString(c.PubDate)).LastBuildDate(timeString(c.LastBuildDate)).
		Categories(categoryBuilders(c.Categories)...).Generator(c.Generator).Docs(urlString(c.Docs)).
		Rating(c.Rating).SkipHours(c.SkipHours...).Extensions(c.Extensions...)
	if c.Cloud != nil {
		b.Cloud(c.Cloud.ToBuilder())
	}
	if c.TTL != nil {
		b.TTL(*c.TTL)
	}
	if c.Image != nil {
		b.Image(c.Image.ToBuilder())
	}
	if c.TextInput != nil {
		b.TextInput(c.TextInput.ToBuilder())
	}
	for _, d := range c.SkipDays {
		b.SkipDays(d.String())
	}
	for _, item := range c.Items {
		b.Items(item.ToBuilder())
	}
	for prefix, uri := range c.Namespaces {
		b.Namespace(prefix, uri)
	}
	return b
}

// Clone returns a deep copy of the channel, suitable for reuse in another feed
func (c Channel) Clone() Channel {
	res := c
	res.Link = cloneURL(c.Link)
	res.PubDate = cloneTime(c.PubDate)
	res.LastBuildDate = cloneTime(c.LastBuildDate)
	res.Categories = cloneCategories(c.Categories)
	res.Docs = cloneURL(c.Docs)
	if c.Cloud != nil {
		cloud := c.Cloud.Clone()
		res.Cloud = &cloud
	}
	if c.TTL != nil {
		ttl := *c.TTL
		res.TTL = &ttl
	}
	if c.Image != nil {
		img := c.Image.Clone()
		res.Image = &img
	}
	if c.TextInput != nil {
		ti := c.TextInput.Clone()
		res.TextInput = &ti
	}
	if c.SkipHours != nil {
		res.SkipHours = append([]int64(nil), c.SkipHours...)
	}
	if c.SkipDays != nil {
		res.SkipDays = append([]time.Weekday(nil), c.SkipDays...)
	}
	if c.Items != nil {
		res.Items = make([]Item, len(c.Items))
		for i, item := range c.Items {
			res.Items[i] = item.Clone()
		}
	}
	res.Extensions = cloneExtensions(c.Extensions)
	res.Namespaces = maps.Clone(c.Namespaces)
	return res
}
