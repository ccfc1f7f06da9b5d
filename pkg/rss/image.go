package rss

import "net/url"

// image size limits and defaults of rss 2.0
const (
	DefaultImageWidth  = 88
	DefaultImageHeight = 31
	MaxImageWidth      = 144
	MaxImageHeight     = 400
)

// Image is a picture displayed with the channel
type Image struct {
	URL         *url.URL
	Title       string
	Link        *url.URL
	Width       int64
	Height      int64
	Description string
}

// ImageBuilder accumulates fields of an Image
type ImageBuilder struct {
	url         string
	title       string
	link        string
	width       *int64
	height      *int64
	description string
}

// NewImageBuilder makes an image builder with default width and height
func NewImageBuilder() *ImageBuilder {
	return &ImageBuilder{}
}

// URL sets the location of the picture
func (b *ImageBuilder) URL(u string) *ImageBuilder {
	b.url = u
	return b
}

// Title sets the alt text of the picture
func (b *ImageBuilder) Title(title string) *ImageBuilder {
	b.title = title
	return b
}

// Link sets the url the picture links to
func (b *ImageBuilder) Link(link string) *ImageBuilder {
	b.link = link
	return b
}

// Width sets the width, clamped to [0,144] on Finalize
func (b *ImageBuilder) Width(width int64) *ImageBuilder {
	b.width = &width
	return b
}

// Height sets the height, clamped to [0,400] on Finalize
func (b *ImageBuilder) Height(height int64) *ImageBuilder {
	b.height = &height
	return b
}

// Description sets the optional title attribute of the link
func (b *ImageBuilder) Description(description string) *ImageBuilder {
	b.description = description
	return b
}

// Finalize validates the accumulated fields and makes an Image
func (b *ImageBuilder) Finalize() (Image, error) {
	u, err := optionalURL("url", b.url)
	if err != nil {
		return Image{}, err
	}
	link, err := optionalURL("link", b.link)
	if err != nil {
		return Image{}, err
	}
	title, err := ParseText("title", b.title)
	if err != nil {
		return Image{}, err
	}
	description, err := ParseText("description", b.description)
	if err != nil {
		return Image{}, err
	}
	res := Image{
		URL:         u,
		Title:       title,
		Link:        link,
		Width:       DefaultImageWidth,
		Height:      DefaultImageHeight,
		Description: description,
	}
	if b.width != nil {
		res.Width = clamp(*b.width, 0, MaxImageWidth)
	}
	if b.height != nil {
		res.Height = clamp(*b.height, 0, MaxImageHeight)
	}
	return res, nil
}

// ToBuilder makes a builder prefilled with the image's fields
func (i Image) ToBuilder() *ImageBuilder {
	return NewImageBuilder().URL(urlString(i.URL)).Title(i.Title).Link(urlString(i.Link)).
		Width(i.Width).Height(i.Height).Description(i.Description)
}

// Clone returns a deep copy of the image
func (i Image) Clone() Image {
	i.URL = cloneURL(i.URL)
	i.Link = cloneURL(i.Link)
	return i
}

func clamp(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}
