package rss

import (
	"net/url"
	"time"
)

// Item is a story of a channel, it has at least a title or a description
type Item struct {
	Title       string
	Link        *url.URL
	Description string
	Author      string
	Categories  []Category
	Comments    *url.URL
	Enclosure   *Enclosure
	Guid        *Guid
	PubDate     *time.Time
	Source      *Source
	Extensions  []Extension
}

// ItemBuilder accumulates fields of an Item
type ItemBuilder struct {
	title       string
	link        string
	description string
	author      string
	categories  []*CategoryBuilder
	comments    string
	enclosure   *EnclosureBuilder
	guid        *GuidBuilder
	pubDate     string
	source      *SourceBuilder
	extensions  []Extension
}

// NewItemBuilder makes an empty item builder
func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{}
}

// Title sets the title of the item
func (b *ItemBuilder) Title(title string) *ItemBuilder {
	b.title = title
	return b
}

// Link sets the url of the item
func (b *ItemBuilder) Link(link string) *ItemBuilder {
	b.link = link
	return b
}

// Description sets the synopsis of the item
func (b *ItemBuilder) Description(description string) *ItemBuilder {
	b.description = description
	return b
}

// Author sets the email address of the author
func (b *ItemBuilder) Author(author string) *ItemBuilder {
	b.author = author
	return b
}

// Categories appends categories
func (b *ItemBuilder) Categories(categories ...*CategoryBuilder) *ItemBuilder {
	b.categories = append(b.categories, categories...)
	return b
}

// Comments sets the url of the comments page
func (b *ItemBuilder) Comments(comments string) *ItemBuilder {
	b.comments = comments
	return b
}

// Enclosure sets the attached media object, nil removes it
func (b *ItemBuilder) Enclosure(enclosure *EnclosureBuilder) *ItemBuilder {
	b.enclosure = enclosure
	return b
}

// Guid sets the unique identifier, nil removes it
func (b *ItemBuilder) Guid(guid *GuidBuilder) *ItemBuilder {
	b.guid = guid
	return b
}

// PubDate sets the publication date, rfc 2822
func (b *ItemBuilder) PubDate(pubDate string) *ItemBuilder {
	b.pubDate = pubDate
	return b
}

// Source sets the channel the item came from, nil removes it
func (b *ItemBuilder) Source(source *SourceBuilder) *ItemBuilder {
	b.source = source
	return b
}

// Extensions appends opaque namespaced elements
func (b *ItemBuilder) Extensions(ext ...Extension) *ItemBuilder {
	b.extensions = append(b.extensions, ext...)
	return b
}

// Finalize validates the accumulated fields and makes an Item.
// It fails on the first invalid field: scalar conversions first, then the
// title-or-description rule, then nested elements in field order.
func (b *ItemBuilder) Finalize() (Item, error) {
	title, err := ParseText("title", b.title)
	if err != nil {
		return Item{}, err
	}
	description, err := ParseText("description", b.description)
	if err != nil {
		return Item{}, err
	}
	author, err := ParseText("author", b.author)
	if err != nil {
		return Item{}, err
	}
	link, err := optionalURL("link", b.link)
	if err != nil {
		return Item{}, err
	}
	comments, err := optionalURL("comments", b.comments)
	if err != nil {
		return Item{}, err
	}
	pubDate, err := optionalTimestamp("pubDate", b.pubDate)
	if err != nil {
		return Item{}, err
	}

	if title == "" && description == "" {
		return Item{}, &RequiredFieldError{Entity: "item", Rule: "either title or description must have a value"}
	}

	res := Item{
		Title:       title,
		Link:        link,
		Description: description,
		Author:      author,
		Comments:    comments,
		PubDate:     pubDate,
	}

	if res.Categories, err = finalizeCategories("categories", b.categories); err != nil {
		return Item{}, err
	}
	if res.Extensions, err = finalizeExtensions(b.extensions); err != nil {
		return Item{}, err
	}
	if b.enclosure != nil {
		enc, err := b.enclosure.Finalize()
		if err != nil {
			return Item{}, &FieldError{Field: "enclosure", Err: err}
		}
		res.Enclosure = &enc
	}
	if b.guid != nil {
		guid, err := b.guid.Finalize()
		if err != nil {
			return Item{}, &FieldError{Field: "guid", Err: err}
		}
		res.Guid = &guid
	}
	if b.source != nil {
		src, err := b.source.Finalize()
		if err != nil {
			return Item{}, &FieldError{Field: "source", Err: err}
		}
		res.Source = &src
	}
	return res, nil
}

// ToBuilder makes a builder prefilled with the item's fields
func (i Item) ToBuilder() *ItemBuilder {
	b := NewItemBuilder().Title(i.Title).Link(urlString(i.Link)).Description(i.Description).
		Author(i.Author).Categories(categoryBuilders(i.Categories)...).Comments(urlString(i.Comments)).
		PubDate(timeString(i.PubDate)).Extensions(i.Extensions...)
	if i.Enclosure != nil {
		b.Enclosure(i.Enclosure.ToBuilder())
	}
	if i.Guid != nil {
		b.Guid(i.Guid.ToBuilder())
	}
	if i.Source != nil {
		b.Source(i.Source.ToBuilder())
	}
	return b
}

// Clone returns a deep copy of the item
func (i Item) Clone() Item {
	res := i
	res.Link = cloneURL(i.Link)
	res.Comments = cloneURL(i.Comments)
	res.PubDate = cloneTime(i.PubDate)
	res.Categories = cloneCategories(i.Categories)
	res.Extensions = cloneExtensions(i.Extensions)
	if i.Enclosure != nil {
		enc := i.Enclosure.Clone()
		res.Enclosure = &enc
	}
	if i.Guid != nil {
		guid := *i.Guid
		res.Guid = &guid
	}
	if i.Source != nil {
		src := i.Source.Clone()
		res.Source = &src
	}
	return res
}
