package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rsskit/pkg/config"
	"github.com/umputun/rsskit/pkg/feed"
)

// testServer creates a server with a real fetcher and no retries
func testServer(t *testing.T, sanitizer *feed.Sanitizer) *Server {
	t.Helper()
	return New(Params{
		Config:    config.ServerConfig{Listen: ":8080", Timeout: 30 * time.Second, MaxBody: 64 * 1024},
		Fetcher:   feed.NewHTTPFetcher(feed.FetcherConfig{Timeout: 5 * time.Second}),
		Sanitizer: sanitizer,
		Version:   "test",
	})
}

func TestServer_New(t *testing.T) {
	srv := New(Params{Config: config.ServerConfig{Listen: ":8080"}, Version: "1.0.0"})
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.Equal(t, int64(1024*1024), srv.cfg.MaxBody)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := New(Params{
		Config:  config.ServerConfig{Listen: fmt.Sprintf("127.0.0.1:%d", port), Timeout: 30 * time.Second},
		Fetcher: feed.NewHTTPFetcher(feed.FetcherConfig{}),
		Version: "1.0.0",
		Debug:   true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "rsskit", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_statusHandler(t *testing.T) {
	srv := testServer(t, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])
	assert.NotEmpty(t, status["time"])
}

func TestRenderJSON(t *testing.T) {
	data := map[string]string{
		"message": "test",
		"status":  "ok",
	}

	req := httptest.NewRequest("GET", "/test", http.NoBody)
	w := httptest.NewRecorder()

	renderJSON(w, req, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, data, result)
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{name: "with error", err: fmt.Errorf("something failed"), code: http.StatusBadRequest, want: "something failed"},
		{name: "nil error", err: nil, code: http.StatusInternalServerError, want: "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", http.NoBody)
			w := httptest.NewRecorder()

			renderError(w, req, tt.err, tt.code)

			assert.Equal(t, tt.code, w.Code)
			var result map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Equal(t, tt.want, result["error"])
		})
	}
}
