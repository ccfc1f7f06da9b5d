package rss

// Guid identifies an item. Permalink tells the value is a url to the item.
type Guid struct {
	Value     string
	Permalink bool
}

// GuidBuilder accumulates fields of a Guid
type GuidBuilder struct {
	value     string
	permalink bool
}

// NewGuidBuilder makes a guid builder, permalink defaults to true
func NewGuidBuilder() *GuidBuilder {
	return &GuidBuilder{permalink: true}
}

// Value sets the identifier
func (b *GuidBuilder) Value(value string) *GuidBuilder {
	b.value = value
	return b
}

// Permalink sets whether the value is a permanent link
func (b *GuidBuilder) Permalink(permalink bool) *GuidBuilder {
	b.permalink = permalink
	return b
}

// Finalize makes a Guid, failing only on a value xml can't carry
func (b *GuidBuilder) Finalize() (Guid, error) {
	value, err := ParseText("value", b.value)
	if err != nil {
		return Guid{}, err
	}
	return Guid{Value: value, Permalink: b.permalink}, nil
}

// ToBuilder makes a builder prefilled with the guid's fields
func (g Guid) ToBuilder() *GuidBuilder {
	return NewGuidBuilder().Value(g.Value).Permalink(g.Permalink)
}
