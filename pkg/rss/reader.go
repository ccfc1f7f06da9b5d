package rss

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a node of the decoded document tree
type element struct {
	name     xml.Name
	attrs    []xml.Attr
	text     strings.Builder
	children []*element
}

func (e *element) attr(local string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) value() string {
	return strings.TrimSpace(e.text.String())
}

// ReadString parses an rss document from a string
func ReadString(s string) (Channel, error) {
	return Read(strings.NewReader(s))
}

// ReadBytes parses an rss document from a byte slice
func ReadBytes(b []byte) (Channel, error) {
	return Read(bytes.NewReader(b))
}

// Read parses an rss document and returns its validated channel.
// Recognised elements are fed into builders, namespaced elements are kept as
// extensions and unknown plain elements are skipped. Any conversion or validation
// failure aborts the whole document.
func Read(r io.Reader) (Channel, error) {
	root, err := decodeTree(r)
	if err != nil {
		return Channel{}, err
	}
	if root.name.Local != "rss" {
		return Channel{}, &XMLError{Msg: fmt.Sprintf("root element is <%s>, expected <rss>", root.name.Local)}
	}

	var chEl *element
	for _, c := range root.children {
		if c.name.Local == "channel" && c.name.Space == root.name.Space {
			chEl = c
			break
		}
	}
	if chEl == nil {
		return Channel{}, &XMLError{Msg: "no <channel> element"}
	}

	b, err := readChannel(chEl, root.name.Space)
	if err != nil {
		return Channel{}, err
	}
	for _, el := range []*element{root, chEl} {
		for _, a := range el.attrs {
			if a.Name.Space == "xmlns" {
				b.Namespace(a.Name.Local, a.Value)
			}
		}
	}
	return b.Finalize()
}

// decodeTree reads the whole document into an element tree
func decodeTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name, attrs: t.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, &XMLError{Msg: "multiple root elements"}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, &XMLError{Msg: "empty document"}
	}
	return root, nil
}

func decodeError(err error) error {
	var synErr *xml.SyntaxError
	if errors.As(err, &synErr) {
		if synErr.Msg == "invalid UTF-8" {
			return &Utf8DecodeError{Line: synErr.Line}
		}
		return &XMLError{Line: synErr.Line, Msg: synErr.Msg}
	}
	return &XMLError{Msg: err.Error()}
}

func readChannel(el *element, ns string) (*ChannelBuilder, error) {
	b := NewChannelBuilder()
	items := 0
	for _, c := range el.children {
		if c.name.Space != ns {
			if c.name.Space != "" {
				b.Extensions(toExtension(c))
			}
			continue
		}
		switch c.name.Local {
		case "title":
			b.Title(c.value())
		case "link":
			b.Link(c.value())
		case "description":
			b.Description(c.value())
		case "language":
			b.Language(c.value())
		case "copyright":
			b.Copyright(c.value())
		case "managingEditor":
			b.ManagingEditor(c.value())
		case "webMaster":
			b.WebMaster(c.value())
		case "pubDate":
			b.PubDate(c.value())
		case "lastBuildDate":
			b.LastBuildDate(c.value())
		case "category":
			b.Categories(readCategory(c))
		case "generator":
			b.Generator(c.value())
		case "docs":
			b.Docs(c.value())
		case "cloud":
			cb, err := readCloud(c)
			if err != nil {
				return nil, &FieldError{Field: "cloud", Err: err}
			}
			b.Cloud(cb)
		case "ttl":
			ttl, err := ParseInt("ttl", c.value())
			if err != nil {
				return nil, err
			}
			b.TTL(ttl)
		case "image":
			ib, err := readImage(c, ns)
			if err != nil {
				return nil, &FieldError{Field: "image", Err: err}
			}
			b.Image(ib)
		case "rating":
			b.Rating(c.value())
		case "textInput", "textinput":
			b.TextInput(readTextInput(c, ns))
		case "skipHours":
			for _, h := range childrenNamed(c, ns, "hour") {
				hour, err := ParseInt("skipHours", h.value())
				if err != nil {
					return nil, err
				}
				b.SkipHours(hour)
			}
		case "skipDays":
			for _, d := range childrenNamed(c, ns, "day") {
				b.SkipDays(d.value())
			}
		case "item":
			ib, err := readItem(c, ns)
			if err != nil {
				return nil, &FieldError{Field: indexed("items", items), Err: err}
			}
			b.Items(ib)
			items++
		}
	}
	return b, nil
}

func readItem(el *element, ns string) (*ItemBuilder, error) {
	b := NewItemBuilder()
	for _, c := range el.children {
		if c.name.Space != ns {
			if c.name.Space != "" {
				b.Extensions(toExtension(c))
			}
			continue
		}
		switch c.name.Local {
		case "title":
			b.Title(c.value())
		case "link":
			b.Link(c.value())
		case "description":
			b.Description(c.value())
		case "author":
			b.Author(c.value())
		case "category":
			b.Categories(readCategory(c))
		case "comments":
			b.Comments(c.value())
		case "enclosure":
			eb, err := readEnclosure(c)
			if err != nil {
				return nil, &FieldError{Field: "enclosure", Err: err}
			}
			b.Enclosure(eb)
		case "guid":
			gb, err := readGuid(c)
			if err != nil {
				return nil, &FieldError{Field: "guid", Err: err}
			}
			b.Guid(gb)
		case "pubDate":
			b.PubDate(c.value())
		case "source":
			url, _ := c.attr("url")
			b.Source(NewSourceBuilder().URL(strings.TrimSpace(url)).Title(c.value()))
		}
	}
	return b, nil
}

func readCategory(el *element) *CategoryBuilder {
	domain, _ := el.attr("domain")
	return NewCategoryBuilder().Name(el.value()).Domain(strings.TrimSpace(domain))
}

func readCloud(el *element) (*CloudBuilder, error) {
	b := NewCloudBuilder()
	if v, ok := el.attr("domain"); ok {
		b.Domain(strings.TrimSpace(v))
	}
	if v, ok := el.attr("port"); ok {
		port, err := ParseInt("port", v)
		if err != nil {
			return nil, err
		}
		b.Port(port)
	}
	if v, ok := el.attr("path"); ok {
		b.Path(v)
	}
	if v, ok := el.attr("registerProcedure"); ok {
		b.RegisterProcedure(v)
	}
	if v, ok := el.attr("protocol"); ok {
		b.Protocol(strings.TrimSpace(v))
	}
	return b, nil
}

func readImage(el *element, ns string) (*ImageBuilder, error) {
	b := NewImageBuilder()
	for _, c := range el.children {
		if c.name.Space != ns {
			continue
		}
		switch c.name.Local {
		case "url":
			b.URL(c.value())
		case "title":
			b.Title(c.value())
		case "link":
			b.Link(c.value())
		case "width":
			w, err := ParseInt("width", c.value())
			if err != nil {
				return nil, err
			}
			b.Width(w)
		case "height":
			h, err := ParseInt("height", c.value())
			if err != nil {
				return nil, err
			}
			b.Height(h)
		case "description":
			b.Description(c.value())
		}
	}
	return b, nil
}

func readTextInput(el *element, ns string) *TextInputBuilder {
	b := NewTextInputBuilder()
	for _, c := range el.children {
		if c.name.Space != ns {
			continue
		}
		switch c.name.Local {
		case "title":
			b.Title(c.value())
		case "description":
			b.Description(c.value())
		case "name":
			b.Name(c.value())
		case "link":
			b.Link(c.value())
		}
	}
	return b
}

func readEnclosure(el *element) (*EnclosureBuilder, error) {
	b := NewEnclosureBuilder()
	if v, ok := el.attr("url"); ok {
		b.URL(strings.TrimSpace(v))
	}
	if v, ok := el.attr("length"); ok && strings.TrimSpace(v) != "" {
		length, err := ParseInt("length", v)
		if err != nil {
			return nil, err
		}
		b.Length(length)
	}
	if v, ok := el.attr("type"); ok {
		b.MimeType(strings.TrimSpace(v))
	}
	return b, nil
}

func readGuid(el *element) (*GuidBuilder, error) {
	b := NewGuidBuilder().Value(el.value())
	if v, ok := el.attr("isPermaLink"); ok {
		permalink, err := ParseBool("isPermaLink", strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		b.Permalink(permalink)
	}
	return b, nil
}

func childrenNamed(el *element, ns, local string) []*element {
	var res []*element
	for _, c := range el.children {
		if c.name.Space == ns && c.name.Local == local {
			res = append(res, c)
		}
	}
	return res
}

// toExtension converts a subtree into an opaque extension, whitespace around text is dropped
func toExtension(el *element) Extension {
	ext := Extension{Name: el.name, Text: el.value()}
	if len(el.attrs) > 0 {
		ext.Attrs = append([]xml.Attr(nil), el.attrs...)
	}
	for _, c := range el.children {
		ext.Children = append(ext.Children, toExtension(c))
	}
	return ext
}
