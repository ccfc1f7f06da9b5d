package rss

import (
	"errors"
	"fmt"
)

// conversion kinds, used as ConversionError.Kind and matchable with errors.Is
var (
	ErrInvalidBoolean   = errors.New("invalid boolean")
	ErrInvalidInteger   = errors.New("invalid integer")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidURL       = errors.New("invalid url")
	ErrInvalidMimeType  = errors.New("invalid mime type")
	ErrInvalidProtocol  = errors.New("invalid cloud protocol")
	ErrInvalidWeekday   = errors.New("invalid weekday")
	ErrInvalidText      = errors.New("invalid xml text")
)

// ConversionError reports a raw value that can't be converted to the field's type
type ConversionError struct {
	Field string
	Value string
	Kind  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %v %q", e.Field, e.Kind, e.Value)
}

func (e *ConversionError) Unwrap() error { return e.Kind }

// NegativeValueError reports a negative number in a field documented as non-negative
type NegativeValueError struct {
	Field string
	Value int64
}

func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("%s: negative value %d", e.Field, e.Value)
}

// RangeError reports a number outside of the allowed inclusive range
type RangeError struct {
	Field    string
	Value    int64
	Min, Max int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value %d out of range [%d,%d]", e.Field, e.Value, e.Min, e.Max)
}

// RequiredFieldError reports a violated structural rule of an entity,
// e.g. an item without title and description
type RequiredFieldError struct {
	Entity string
	Rule   string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Rule)
}

// FieldError attaches the name of a nested field to the failure of its builder.
// Nested errors chain, so the message reads as a path like "items[2]: enclosure: ..."
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

// Utf8DecodeError reports element content that is not valid UTF-8
type Utf8DecodeError struct {
	Line int
}

func (e *Utf8DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 content at line %d", e.Line)
}

// XMLError reports a document that is not well-formed or not shaped as <rss><channel>
type XMLError struct {
	Line int
	Msg  string
}

func (e *XMLError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed rss document at line %d: %s", e.Line, e.Msg)
	}
	return "malformed rss document: " + e.Msg
}

// TagConstructionError reports a tag name the writer can't emit
type TagConstructionError struct {
	Tag string
}

func (e *TagConstructionError) Error() string {
	return fmt.Sprintf("can't construct tag %q", e.Tag)
}

// FieldPath returns the dotted path of nested field names carried by err,
// e.g. "items[2].enclosure.length". Empty if err carries no field information.
func FieldPath(err error) string {
	var path string
	add := func(name string) {
		if path == "" {
			path = name
			return
		}
		path += "." + name
	}
	for err != nil {
		switch e := err.(type) { //nolint:errorlint // walking the chain explicitly
		case *FieldError:
			add(e.Field)
		case *ConversionError:
			add(e.Field)
			return path
		case *NegativeValueError:
			add(e.Field)
			return path
		case *RangeError:
			add(e.Field)
			return path
		}
		err = errors.Unwrap(err)
	}
	return path
}
