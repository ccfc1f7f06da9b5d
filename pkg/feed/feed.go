// Package feed reads rss documents from urls, files and strings into a validated
// rss.Channel and writes them back as canonical xml.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rsskit/pkg/rss"
)

var (
	// ErrInvalidSourceExtension is returned for urls whose path doesn't end in .xml
	ErrInvalidSourceExtension = errors.New("source url must point to an .xml document")
	// ErrEmptyFeed is returned by Finalize when no source was supplied
	ErrEmptyFeed = errors.New("no channel supplied")
)

// Feed wraps a single validated channel
type Feed struct {
	channel rss.Channel
}

// Channel returns a deep copy of the feed's channel
func (f *Feed) Channel() rss.Channel {
	return f.channel.Clone()
}

// ToXML renders the feed as an rss 2.0 document. Same feed always renders to the same text.
func (f *Feed) ToXML() (string, error) {
	return rss.WriteString(f.channel)
}

// WriteTo writes the rendered document to w
func (f *Feed) WriteTo(w io.Writer) (int64, error) {
	s, err := f.ToXML()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, s)
	if err != nil {
		return int64(n), fmt.Errorf("write feed: %w", err)
	}
	return int64(n), nil
}

// Option customizes a Builder
type Option func(b *Builder)

// WithFetcher sets the fetcher used by ReadFromURL
func WithFetcher(f Fetcher) Option {
	return func(b *Builder) { b.fetcher = f }
}

// WithSanitizer makes Finalize clean channel and item html with the given sanitizer
func WithSanitizer(s *Sanitizer) Option {
	return func(b *Builder) { b.sanitizer = s }
}

// Builder obtains a channel from one source and produces a Feed. Read steps record
// the first error, later steps are skipped after a failure and Finalize reports it.
// The last successful step wins.
type Builder struct {
	fetcher   Fetcher
	sanitizer *Sanitizer

	channel *rss.Channel
	err     error
}

// NewBuilder makes a feed builder, the default fetcher is an HTTPFetcher with default config
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.fetcher == nil {
		b.fetcher = NewHTTPFetcher(FetcherConfig{})
	}
	return b
}

// ReadFromURL fetches and parses the document at rawURL. The url path must end in .xml,
// this is checked before any network access.
func (b *Builder) ReadFromURL(ctx context.Context, rawURL string) *Builder {
	if b.err != nil {
		return b
	}
	if !IsXMLURL(rawURL) {
		b.err = fmt.Errorf("read %s: %w", rawURL, ErrInvalidSourceExtension)
		return b
	}
	data, err := b.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		lgr.Printf("[WARN] can't fetch %s: %v", rawURL, err)
		b.err = fmt.Errorf("read %s: %w", rawURL, err)
		return b
	}
	return b.parse(rawURL, data)
}

// ReadFromFile reads and parses a local document
func (b *Builder) ReadFromFile(path string) *Builder {
	if b.err != nil {
		return b
	}
	data, err := os.ReadFile(path) //nolint:gosec // reading user supplied feed files is the point
	if err != nil {
		b.err = fmt.Errorf("read file: %w", err)
		return b
	}
	return b.parse(path, data)
}

// ReadFromString parses a document held in memory
func (b *Builder) ReadFromString(s string) *Builder {
	if b.err != nil {
		return b
	}
	return b.parse("string", []byte(s))
}

// Channel uses an already built channel
func (b *Builder) Channel(ch rss.Channel) *Builder {
	if b.err != nil {
		return b
	}
	ch = ch.Clone()
	b.channel = &ch
	return b
}

// Finalize returns the feed or the first error recorded by a read step
func (b *Builder) Finalize() (*Feed, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.channel == nil {
		return nil, ErrEmptyFeed
	}
	ch := *b.channel
	if b.sanitizer != nil {
		var err error
		if ch, err = b.sanitizer.Channel(ch); err != nil {
			return nil, fmt.Errorf("sanitize: %w", err)
		}
	}
	return &Feed{channel: ch}, nil
}

func (b *Builder) parse(source string, data []byte) *Builder {
	ch, err := rss.ReadBytes(data)
	if err != nil {
		b.err = fmt.Errorf("parse %s: %w", source, err)
		return b
	}
	lgr.Printf("[DEBUG] parsed %s, %d items", source, len(ch.Items))
	b.channel = &ch
	return b
}

// IsXMLURL reports whether s is an absolute url with a path ending in .xml
func IsXMLURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".xml")
}
