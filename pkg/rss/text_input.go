package rss

import "net/url"

// TextInput is a text box displayed with the channel
type TextInput struct {
	Title       string
	Description string
	Name        string
	Link        *url.URL
}

// TextInputBuilder accumulates fields of a TextInput
type TextInputBuilder struct {
	title       string
	description string
	name        string
	link        string
}

// NewTextInputBuilder makes an empty text input builder
func NewTextInputBuilder() *TextInputBuilder {
	return &TextInputBuilder{}
}

// Title sets the label of the submit button
func (b *TextInputBuilder) Title(title string) *TextInputBuilder {
	b.title = title
	return b
}

// Description sets the explanation of the text box
func (b *TextInputBuilder) Description(description string) *TextInputBuilder {
	b.description = description
	return b
}

// Name sets the name of the text object
func (b *TextInputBuilder) Name(name string) *TextInputBuilder {
	b.name = name
	return b
}

// Link sets the url of the script processing the request
func (b *TextInputBuilder) Link(link string) *TextInputBuilder {
	b.link = link
	return b
}

// Finalize validates the accumulated fields and makes a TextInput, all four fields are required
func (b *TextInputBuilder) Finalize() (TextInput, error) {
	link, err := optionalURL("link", b.link)
	if err != nil {
		return TextInput{}, err
	}
	res := TextInput{Link: link}
	for _, f := range []struct {
		name string
		dst  *string
		src  string
	}{
		{"title", &res.Title, b.title}, {"description", &res.Description, b.description}, {"name", &res.Name, b.name},
	} {
		if *f.dst, err = ParseText(f.name, f.src); err != nil {
			return TextInput{}, err
		}
	}
	for _, f := range []struct{ name, value string }{
		{"title", res.Title}, {"description", res.Description}, {"name", res.Name}, {"link", b.link},
	} {
		if f.value == "" {
			return TextInput{}, &RequiredFieldError{Entity: "textInput", Rule: f.name + " is required"}
		}
	}
	return res, nil
}

// ToBuilder makes a builder prefilled with the text input's fields
func (t TextInput) ToBuilder() *TextInputBuilder {
	return NewTextInputBuilder().Title(t.Title).Description(t.Description).Name(t.Name).Link(urlString(t.Link))
}

// Clone returns a deep copy of the text input
func (t TextInput) Clone() TextInput {
	t.Link = cloneURL(t.Link)
	return t
}
