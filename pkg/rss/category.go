package rss

import "net/url"

// Category is a category of a channel or an item
type Category struct {
	Name   string
	Domain *url.URL
}

// CategoryBuilder accumulates fields of a Category
type CategoryBuilder struct {
	name   string
	domain string
}

// NewCategoryBuilder makes an empty category builder
func NewCategoryBuilder() *CategoryBuilder {
	return &CategoryBuilder{}
}

// Name sets the category name, required
func (b *CategoryBuilder) Name(name string) *CategoryBuilder {
	b.name = name
	return b
}

// Domain sets the optional domain url
func (b *CategoryBuilder) Domain(domain string) *CategoryBuilder {
	b.domain = domain
	return b
}

// Finalize validates the accumulated fields and makes a Category
func (b *CategoryBuilder) Finalize() (Category, error) {
	name, err := ParseText("name", b.name)
	if err != nil {
		return Category{}, err
	}
	res := Category{Name: name}
	if b.domain != "" {
		u, err := ParseURL("domain", b.domain)
		if err != nil {
			return Category{}, err
		}
		res.Domain = u
	}
	if res.Name == "" {
		return Category{}, &RequiredFieldError{Entity: "category", Rule: "name is required"}
	}
	return res, nil
}

// ToBuilder makes a builder prefilled with the category's fields
func (c Category) ToBuilder() *CategoryBuilder {
	return NewCategoryBuilder().Name(c.Name).Domain(urlString(c.Domain))
}

// Clone returns a deep copy of the category
func (c Category) Clone() Category {
	return Category{Name: c.Name, Domain: cloneURL(c.Domain)}
}

func finalizeCategories(field string, builders []*CategoryBuilder) ([]Category, error) {
	if len(builders) == 0 {
		return nil, nil
	}
	res := make([]Category, 0, len(builders))
	for i, cb := range builders {
		c, err := cb.Finalize()
		if err != nil {
			return nil, &FieldError{Field: indexed(field, i), Err: err}
		}
		res = append(res, c)
	}
	return res, nil
}

func categoryBuilders(cats []Category) []*CategoryBuilder {
	if len(cats) == 0 {
		return nil
	}
	res := make([]*CategoryBuilder, len(cats))
	for i, c := range cats {
		res[i] = c.ToBuilder()
	}
	return res
}

func cloneCategories(cats []Category) []Category {
	if cats == nil {
		return nil
	}
	res := make([]Category, len(cats))
	for i, c := range cats {
		res[i] = c.Clone()
	}
	return res
}
