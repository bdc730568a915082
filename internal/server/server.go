// package server contains middleware & handlers for the song site
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/shared"
	"github.com/desertthunder/songsite/internal/tasks"
	"github.com/desertthunder/songsite/internal/web"
	"github.com/go-chi/chi/v5/middleware"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request ids, panic recovery, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the song site.
// Implementations handle specific endpoints (index, downloads, admin operations).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

const shutdownTimeout = 10 * time.Second

// Options wires the site's dependencies.
type Options struct {
	Store        *catalog.Store
	Resolver     *tasks.Resolver
	Renderer     *web.Renderer
	AdminKey     string
	DownloadsDir string
	Logger       *log.Logger
}

// NewSite builds the site's router with every route and middleware registered.
func NewSite(opts Options) (*BasicRouter, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: catalog store", shared.ErrMissingConfig)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Resolver == nil {
		opts.Resolver = tasks.NewResolver(tasks.ResolverOpts{Store: opts.Store, Logger: opts.Logger})
	}
	if opts.Renderer == nil {
		r, err := web.NewRenderer()
		if err != nil {
			return nil, err
		}
		opts.Renderer = r
	}

	router := NewBasicRouter()
	router.Use(middleware.RequestID, middleware.RealIP, Logging(opts.Logger), middleware.Recoverer)

	router.Handle(http.MethodGet, "/{$}", &IndexHandler{store: opts.Store, resolver: opts.Resolver, renderer: opts.Renderer, logger: opts.Logger})
	router.Handle(http.MethodGet, "/download/{key}", &FileHandler{store: opts.Store, attachment: true, logger: opts.Logger})
	router.Handle(http.MethodGet, "/stream/{key}", &FileHandler{store: opts.Store, logger: opts.Logger})
	router.Handle(http.MethodGet, "/health", &HealthHandler{store: opts.Store, resolver: opts.Resolver})
	router.Handler(&AdminHandler{
		store:        opts.Store,
		secret:       opts.AdminKey,
		downloadsDir: opts.DownloadsDir,
		logger:       opts.Logger,
	})

	return router, nil
}

// Server runs an [http.Server] until its context is cancelled.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// New wraps handler in an [http.Server] listening on addr.
func New(addr string, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
//
// File transfers have no write timeout; shutdown waits up to ten seconds for them.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
