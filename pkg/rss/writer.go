package rss

import (
	"encoding/xml"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

const xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// WriteString renders the channel as an rss 2.0 document
func WriteString(ch Channel) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, ch); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write renders the channel as an rss 2.0 document in canonical field order.
// Absent optional fields are omitted, the output is deterministic for the same channel.
func Write(w io.Writer, ch Channel) error {
	ns := newNSResolver(ch.Namespaces)
	channel, err := toChannelXML(ch, ns)
	if err != nil {
		return err
	}
	doc := rssXML{Version: "2.0", Namespaces: ns.declarations(), Channel: channel}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rss: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write rss: %w", err)
	}
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("write rss: %w", err)
	}
	return nil
}

func toChannelXML(ch Channel, ns *nsResolver) (channelXML, error) {
	res := channelXML{
		Title:          ch.Title,
		Link:           urlString(ch.Link),
		Description:    ch.Description,
		Language:       ch.Language,
		Copyright:      ch.Copyright,
		ManagingEditor: ch.ManagingEditor,
		WebMaster:      ch.WebMaster,
		PubDate:        timeString(ch.PubDate),
		LastBuildDate:  timeString(ch.LastBuildDate),
		Categories:     toCategoriesXML(ch.Categories),
		Generator:      ch.Generator,
		Docs:           urlString(ch.Docs),
		TTL:            ch.TTL,
		Rating:         ch.Rating,
	}
	if c := ch.Cloud; c != nil {
		res.Cloud = &cloudXML{
			Domain:            urlString(c.Domain),
			Port:              c.Port,
			Path:              c.Path,
			RegisterProcedure: c.RegisterProcedure,
			Protocol:          c.Protocol.String(),
		}
	}
	if img := ch.Image; img != nil {
		res.Image = &imageXML{
			URL:         urlString(img.URL),
			Title:       img.Title,
			Link:        urlString(img.Link),
			Width:       img.Width,
			Height:      img.Height,
			Description: img.Description,
		}
	}
	if ti := ch.TextInput; ti != nil {
		res.TextInput = &textInputXML{Title: ti.Title, Description: ti.Description, Name: ti.Name, Link: urlString(ti.Link)}
	}
	if len(ch.SkipHours) > 0 {
		res.SkipHours = &skipHoursXML{Hours: ch.SkipHours}
	}
	if len(ch.SkipDays) > 0 {
		days := make([]string, len(ch.SkipDays))
		for i, d := range ch.SkipDays {
			days[i] = d.String()
		}
		res.SkipDays = &skipDaysXML{Days: days}
	}
	for _, item := range ch.Items {
		ix, err := toItemXML(item, ns)
		if err != nil {
			return channelXML{}, err
		}
		res.Items = append(res.Items, ix)
	}
	var err error
	if res.Extensions, err = toExtensionsXML(ch.Extensions, ns); err != nil {
		return channelXML{}, err
	}
	return res, nil
}

func toItemXML(item Item, ns *nsResolver) (itemXML, error) {
	res := itemXML{
		Title:       item.Title,
		Link:        urlString(item.Link),
		Description: item.Description,
		Author:      item.Author,
		Categories:  toCategoriesXML(item.Categories),
		Comments:    urlString(item.Comments),
		PubDate:     timeString(item.PubDate),
	}
	if enc := item.Enclosure; enc != nil {
		res.Enclosure = &enclosureXML{URL: urlString(enc.URL), Length: enc.Length}
		if enc.MimeType.Type != "" {
			res.Enclosure.Type = enc.MimeType.String()
		}
	}
	if g := item.Guid; g != nil {
		res.GUID = &guidXML{IsPermaLink: FormatBool(g.Permalink), Value: g.Value}
	}
	if src := item.Source; src != nil {
		res.Source = &sourceXML{URL: urlString(src.URL), Title: src.Title}
	}
	var err error
	if res.Extensions, err = toExtensionsXML(item.Extensions, ns); err != nil {
		return itemXML{}, err
	}
	return res, nil
}

func toCategoriesXML(cats []Category) []categoryXML {
	if len(cats) == 0 {
		return nil
	}
	res := make([]categoryXML, len(cats))
	for i, c := range cats {
		res[i] = categoryXML{Domain: urlString(c.Domain), Name: c.Name}
	}
	return res
}

func toExtensionsXML(exts []Extension, ns *nsResolver) ([]extensionXML, error) {
	if len(exts) == 0 {
		return nil, nil
	}
	res := make([]extensionXML, 0, len(exts))
	for _, e := range exts {
		name, err := ns.qualify(e.Name, false)
		if err != nil {
			return nil, err
		}
		ex := extensionXML{XMLName: xml.Name{Local: name}, Text: e.Text}
		for _, a := range e.Attrs {
			attrName, err := ns.qualify(a.Name, true)
			if err != nil {
				return nil, err
			}
			ex.Attrs = append(ex.Attrs, xml.Attr{Name: xml.Name{Local: attrName}, Value: a.Value})
		}
		if ex.Children, err = toExtensionsXML(e.Children, ns); err != nil {
			return nil, err
		}
		res = append(res, ex)
	}
	return res, nil
}

// nsResolver maps namespace urls of extensions to prefixes, declaring
// generated prefixes for urls the channel doesn't declare
type nsResolver struct {
	byURI map[string]string
	decls map[string]string
	seq   int
}

func newNSResolver(declared map[string]string) *nsResolver {
	r := &nsResolver{byURI: map[string]string{}, decls: map[string]string{}}
	for _, prefix := range slices.Sorted(maps.Keys(declared)) {
		uri := declared[prefix]
		r.decls[prefix] = uri
		if _, ok := r.byURI[uri]; !ok {
			r.byURI[uri] = prefix
		}
	}
	return r
}

func (r *nsResolver) qualify(n xml.Name, attr bool) (string, error) {
	var prefix string
	switch {
	case n.Space == "":
	case attr && n.Space == "xmlns":
		prefix = "xmlns"
	case n.Space == xmlNamespaceURI:
		prefix = "xml"
	default:
		p, ok := r.byURI[n.Space]
		if !ok {
			p = r.prefixFor(n.Space)
		}
		prefix = p
	}

	name := n.Local
	if prefix != "" {
		name = prefix + ":" + n.Local
	}
	if !isNCName(n.Local) || (prefix != "" && !isNCName(prefix)) {
		return "", &TagConstructionError{Tag: name}
	}
	return name, nil
}

// prefixFor returns a prefix for an undeclared namespace. A bare prefix left by the
// reader for an undeclared namespace is used as is, urls get generated prefixes.
func (r *nsResolver) prefixFor(space string) string {
	if isNCName(space) {
		return space
	}
	for {
		r.seq++
		p := "ns" + strconv.Itoa(r.seq)
		if _, taken := r.decls[p]; !taken {
			r.decls[p] = space
			r.byURI[space] = p
			return p
		}
	}
}

func (r *nsResolver) declarations() []xml.Attr {
	if len(r.decls) == 0 {
		return nil
	}
	res := make([]xml.Attr, 0, len(r.decls))
	for _, prefix := range slices.Sorted(maps.Keys(r.decls)) {
		res = append(res, xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: r.decls[prefix]})
	}
	return res
}

// isNCName reports whether s is a valid xml name without a colon
func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || unicode.IsLetter(c):
		case i > 0 && (c == '-' || c == '.' || unicode.IsDigit(c)):
		default:
			return false
		}
	}
	return true
}
