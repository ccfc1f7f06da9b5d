package rss

import (
	"fmt"
	"mime"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// timestampLayouts lists accepted RFC 2822 shapes, all with a numeric zone.
// Named zones are rewritten to numeric offsets before parsing.
var timestampLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 -0700",
	"02 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 -0700",
}

// rfc2822Zones maps zone names allowed by RFC 2822 to numeric offsets
var rfc2822Zones = map[string]string{
	"UT": "+0000", "GMT": "+0000", "Z": "+0000",
	"EST": "-0500", "EDT": "-0400",
	"CST": "-0600", "CDT": "-0500",
	"MST": "-0700", "MDT": "-0600",
	"PST": "-0800", "PDT": "-0700",
}

// ParseBool converts case-sensitive "true" or "false"
func ParseBool(field, s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &ConversionError{Field: field, Value: s, Kind: ErrInvalidBoolean}
}

// FormatBool is the inverse of ParseBool
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ParseInt converts a signed decimal integer
func ParseInt(field, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ConversionError{Field: field, Value: s, Kind: ErrInvalidInteger}
	}
	return v, nil
}

// ParseText trims surrounding whitespace the way the reader does and rejects
// characters an xml 1.0 document can't carry
func ParseText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := checkXMLChars(field, s); err != nil {
		return "", err
	}
	return s, nil
}

// checkXMLChars accepts the xml 1.0 Char production, whitespace is kept as is
func checkXMLChars(field, s string) error {
	if !utf8.ValidString(s) {
		return &ConversionError{Field: field, Value: s, Kind: ErrInvalidText}
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= utf8.MaxRune:
		default:
			return &ConversionError{Field: field, Value: s, Kind: ErrInvalidText}
		}
	}
	return nil
}

// ParseTimestamp converts an RFC 2822 date-time with a fixed offset
func ParseTimestamp(field, s string) (time.Time, error) {
	v := strings.Join(strings.Fields(s), " ")
	if i := strings.LastIndexByte(v, ' '); i > 0 {
		if off, ok := rfc2822Zones[v[i+1:]]; ok {
			v = v[:i+1] + off
		}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ConversionError{Field: field, Value: s, Kind: ErrInvalidTimestamp}
}

// FormatTimestamp renders t as RFC 1123 with a numeric zone, keeping t's offset
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

// ParseURL converts an absolute URL
func ParseURL(field, s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !u.IsAbs() || (u.Opaque == "" && u.Host == "") {
		return nil, &ConversionError{Field: field, Value: s, Kind: ErrInvalidURL}
	}
	return u, nil
}

// MimeType is a validated media type
type MimeType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// ParseMimeType converts "type/subtype" with optional parameters
func ParseMimeType(field, s string) (MimeType, error) {
	mt, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MimeType{}, &ConversionError{Field: field, Value: s, Kind: ErrInvalidMimeType}
	}
	typ, sub, ok := strings.Cut(mt, "/")
	if !ok || typ == "" || sub == "" || strings.Contains(sub, "/") {
		return MimeType{}, &ConversionError{Field: field, Value: s, Kind: ErrInvalidMimeType}
	}
	if len(params) == 0 {
		params = nil
	}
	return MimeType{Type: typ, Subtype: sub, Params: params}, nil
}

// String renders the media type, parameters sorted by name
func (m MimeType) String() string {
	if len(m.Params) == 0 {
		return m.Type + "/" + m.Subtype
	}
	return mime.FormatMediaType(m.Type+"/"+m.Subtype, m.Params)
}

// CloudProtocol is the protocol of a cloud subscription
type CloudProtocol int

// supported cloud protocols
const (
	CloudXMLRPC CloudProtocol = iota
	CloudSOAP
	CloudHTTPPost
)

var cloudProtocols = map[string]CloudProtocol{
	"xml-rpc":   CloudXMLRPC,
	"soap":      CloudSOAP,
	"http-post": CloudHTTPPost,
}

// ParseCloudProtocol converts one of "xml-rpc", "soap" or "http-post"
func ParseCloudProtocol(field, s string) (CloudProtocol, error) {
	if p, ok := cloudProtocols[s]; ok {
		return p, nil
	}
	return 0, &ConversionError{Field: field, Value: s, Kind: ErrInvalidProtocol}
}

func (p CloudProtocol) String() string {
	switch p {
	case CloudXMLRPC:
		return "xml-rpc"
	case CloudSOAP:
		return "soap"
	case CloudHTTPPost:
		return "http-post"
	}
	return fmt.Sprintf("CloudProtocol(%d)", int(p))
}

// ParseWeekday converts an English weekday name as used by skipDays, e.g. "Monday"
func ParseWeekday(field, s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, &ConversionError{Field: field, Value: s, Kind: ErrInvalidWeekday}
}
