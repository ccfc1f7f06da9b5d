package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/rsskit/pkg/feed"
)

// feedHandler fetches the feed at ?url= and serves it as canonical rss.
// ?sanitize=true|false overrides the server default.
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("url")
	if src == "" {
		renderError(w, r, errors.New("url parameter is required"), http.StatusBadRequest)
		return
	}

	sanitize := s.sanitizer != nil
	if v := r.URL.Query().Get("sanitize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			renderError(w, r, errors.New("sanitize must be true or false"), http.StatusBadRequest)
			return
		}
		sanitize = b
	}

	opts := []feed.Option{feed.WithFetcher(s.fetcher)}
	if sanitize {
		sanitizer := s.sanitizer
		if sanitizer == nil {
			sanitizer = feed.NewSanitizer()
		}
		opts = append(opts, feed.WithSanitizer(sanitizer))
	}

	f, err := feed.NewBuilder(opts...).ReadFromURL(r.Context(), src).Finalize()
	if err != nil {
		log.Printf("[WARN] can't serve feed %s: %v", src, err)
		var te *feed.TransportError
		switch {
		case errors.Is(err, feed.ErrInvalidSourceExtension):
			renderError(w, r, err, http.StatusBadRequest)
		case errors.As(err, &te):
			renderError(w, r, err, http.StatusBadGateway)
		default:
			renderError(w, r, err, http.StatusUnprocessableEntity)
		}
		return
	}

	out, err := f.ToXML()
	if err != nil {
		log.Printf("[ERROR] failed to render feed %s: %v", src, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
