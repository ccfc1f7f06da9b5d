package rss

import "encoding/xml"

// Extension is an opaque namespaced element (itunes, media, dc, ...) carried through
// reading and writing without interpretation. Name.Space holds the namespace URI as
// resolved by the reader, or the bare prefix if the document never declared it.
type Extension struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []Extension
}

// Clone returns a deep copy of the extension
func (e Extension) Clone() Extension {
	res := Extension{Name: e.Name, Text: e.Text}
	if e.Attrs != nil {
		res.Attrs = append([]xml.Attr(nil), e.Attrs...)
	}
	res.Children = cloneExtensions(e.Children)
	return res
}

func cloneExtensions(src []Extension) []Extension {
	if src == nil {
		return nil
	}
	res := make([]Extension, len(src))
	for i, e := range src {
		res[i] = e.Clone()
	}
	return res
}

// finalizeExtensions validates and copies the extensions of an entity. A top-level
// extension must be namespaced, otherwise the reader would take it for a core field.
func finalizeExtensions(exts []Extension) ([]Extension, error) {
	if exts == nil {
		return nil, nil
	}
	res := make([]Extension, len(exts))
	for i, e := range exts {
		if e.Name.Space == "" {
			return nil, &FieldError{Field: indexed("extensions", i),
				Err: &RequiredFieldError{Entity: "extension", Rule: "namespace is required"}}
		}
		ext, err := finalizeExtension(e)
		if err != nil {
			return nil, &FieldError{Field: indexed("extensions", i), Err: err}
		}
		res[i] = ext
	}
	return res, nil
}

func finalizeExtension(e Extension) (Extension, error) {
	text, err := ParseText("text", e.Text)
	if err != nil {
		return Extension{}, err
	}
	res := Extension{Name: e.Name, Text: text}
	for _, a := range e.Attrs {
		if err := checkXMLChars(a.Name.Local, a.Value); err != nil {
			return Extension{}, err
		}
		res.Attrs = append(res.Attrs, a)
	}
	for i, c := range e.Children {
		child, err := finalizeExtension(c)
		if err != nil {
			return Extension{}, &FieldError{Field: indexed("children", i), Err: err}
		}
		res.Children = append(res.Children, child)
	}
	return res, nil
}

// declareNamespaces adds the prefixes the writer generates for extension namespaces
// missing from declared, so a written channel reads back with the same declarations
func declareNamespaces(declared map[string]string, groups ...[]Extension) map[string]string {
	r := newNSResolver(declared)
	var walk func(exts []Extension)
	walk = func(exts []Extension) {
		for _, e := range exts {
			_, _ = r.qualify(e.Name, false)
			for _, a := range e.Attrs {
				_, _ = r.qualify(a.Name, true)
			}
			walk(e.Children)
		}
	}
	for _, g := range groups {
		walk(g)
	}
	if len(r.decls) == len(declared) {
		return declared
	}
	return r.decls
}
