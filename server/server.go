package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/rsskit/pkg/config"
	"github.com/umputun/rsskit/pkg/feed"
)

// Server represents HTTP server instance
type Server struct {
	cfg       config.ServerConfig
	fetcher   feed.Fetcher
	sanitizer *feed.Sanitizer
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params defines server dependencies. Sanitizer is optional, with it set feeds are
// sanitized by default, otherwise only on ?sanitize=true.
type Params struct {
	Config    config.ServerConfig
	Fetcher   feed.Fetcher
	Sanitizer *feed.Sanitizer
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		cfg:       p.Config,
		fetcher:   p.Fetcher,
		sanitizer: p.Sanitizer,
		version:   p.Version,
		debug:     p.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}
	if s.cfg.MaxBody <= 0 {
		s.cfg.MaxBody = 1024 * 1024
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.cfg.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.Timeout,
		ReadTimeout:       s.cfg.Timeout,
		WriteTimeout:      s.cfg.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("rsskit", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(s.cfg.MaxBody))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /validate", s.validateHandler)
		r.HandleFunc("GET /feed", s.feedHandler)
	})
}

// Handler returns the http handler with all middlewares and routes
func (s *Server) Handler() http.Handler {
	return s.router
}
