package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/umputun/rsskit/pkg/feed"
	"github.com/umputun/rsskit/pkg/rss"
)

// channelSummary is the validate response for a correct document
type channelSummary struct {
	Title       string            `json:"title"`
	Link        string            `json:"link"`
	Description string            `json:"description"`
	Language    string            `json:"language,omitempty"`
	PubDate     *time.Time        `json:"pub_date,omitempty"`
	Categories  int               `json:"categories"`
	Items       int               `json:"items"`
	Extensions  int               `json:"extensions"`
	Namespaces  map[string]string `json:"namespaces,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// validateHandler parses the posted document and reports the channel summary,
// or the first validation error with the path of the failed field
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	if err != nil {
		renderError(w, r, err, http.StatusRequestEntityTooLarge)
		return
	}

	f, err := feed.NewBuilder(feed.WithFetcher(s.fetcher)).ReadFromString(string(body)).Finalize()
	if err != nil {
		log.Printf("[DEBUG] invalid document posted: %v", err)
		renderJSON(w, r, http.StatusUnprocessableEntity, map[string]string{"error": err.Error(), "field": rss.FieldPath(err)})
		return
	}

	ch := f.Channel()
	summary := channelSummary{
		Title:       ch.Title,
		Description: ch.Description,
		Language:    ch.Language,
		PubDate:     ch.PubDate,
		Categories:  len(ch.Categories),
		Items:       len(ch.Items),
		Extensions:  len(ch.Extensions),
		Namespaces:  ch.Namespaces,
	}
	if ch.Link != nil {
		summary.Link = ch.Link.String()
	}
	renderJSON(w, r, http.StatusOK, summary)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
