package rss

import (
	"net/url"
	"strconv"
	"time"
)

func indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	res := *u
	if u.User != nil {
		user := *u.User
		res.User = &user
	}
	return &res
}

func timeString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTimestamp(*t)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	res := *t
	return &res
}

// optionalURL converts s unless it is empty
func optionalURL(field, s string) (*url.URL, error) {
	if s == "" {
		return nil, nil
	}
	return ParseURL(field, s)
}

// optionalTimestamp converts s unless it is empty
func optionalTimestamp(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
