// Package server exposes document rendering over HTTP.
//
// Routes:
//
//	GET  /healthz            build information
//	GET  /styles             every style of the template's cascade
//	GET  /styles/{name}      one resolved style
//	POST /render             render a document, returns its id
//	GET  /documents/{id}     document metadata, or ?format=pdf for bytes
//
// Rendered documents are kept in memory for a limited time. Requests are
// rate limited per client IP.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	gocache "github.com/patrickmn/go-cache"

	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/pipeline"
	"github.com/matzehuels/folio/pkg/style"
)

// Defaults.
const (
	DefaultDocumentTTL  = time.Hour
	DefaultRateLimit    = 60
	DefaultRateWindow   = time.Minute
	DefaultMaxBodyBytes = 4 << 20
	DefaultTimeout      = 60 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithRunner sets the pipeline runner. The default runner does not cache.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithTemplate sets the template every document is built from.
func WithTemplate(tpl *document.Template) Option {
	return func(s *Server) {
		if tpl != nil {
			s.template = tpl
		}
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRateLimit allows n requests per client IP per window. n <= 0
// disables limiting.
func WithRateLimit(n int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = n
		s.rateWindow = window
	}
}

// WithDocumentTTL sets how long rendered documents stay retrievable.
func WithDocumentTTL(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.documentTTL = d
		}
	}
}

// WithMaxBodyBytes limits the size of render requests.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// Server serves the HTTP API.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	template *document.Template
	cascade  *style.Cascade
	docs     *gocache.Cache
	logger   *log.Logger

	rateLimit   int
	rateWindow  time.Duration
	documentTTL time.Duration
	maxBody     int64
}

// New creates a server. It fails when the template's style sheet is invalid.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		template:    document.DefaultTemplate(),
		logger:      log.New(io.Discard),
		rateLimit:   DefaultRateLimit,
		rateWindow:  DefaultRateWindow,
		documentTTL: DefaultDocumentTTL,
		maxBody:     DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	c, err := document.NewComposer(s.template)
	if err != nil {
		return nil, err
	}
	s.cascade = c.Cascade()
	s.docs = gocache.New(s.documentTTL, s.documentTTL/2)
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultTimeout))
	if s.rateLimit > 0 {
		r.Use(httprate.LimitByIP(s.rateLimit, s.rateWindow))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/styles", func(r chi.Router) {
		r.Get("/", s.handleStyles)
		r.Get("/{name}", s.handleStyle)
	})
	r.Post("/render", s.handleRender)
	r.Get("/documents/{id}", s.handleDocument)
	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
