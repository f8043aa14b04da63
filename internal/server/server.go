// Package server exposes ontology sessions over HTTP.
//
// Every client works on its own session, created with POST /sessions. All
// other session routes take the id as the first path element:
//
//	POST   /sessions                          create an empty session
//	DELETE /sessions/{id}                     drop it
//	GET    /sessions/{id}/dag                 every category, root first
//	GET    /sessions/{id}/dag/image           render (format=svg|png|dot)
//	POST   /sessions/{id}/nodes               put
//	GET    /sessions/{id}/nodes/{name}        one category
//	DELETE /sessions/{id}/nodes/{name}        remove
//	GET    /sessions/{id}/query?cat=a,b       common subcategories
//	GET    /sessions/{id}/query/dag?cat=a,b   query result as a graph
//	GET    /sessions/{id}/query/export?cat=   query result as json, yaml or owl
//	POST   /sessions/{id}/prune?cat=a,b       keep only what relates to cat
//	POST   /sessions/{id}/import?format=      merge an uploaded ontology
//	GET    /sessions/{id}/export?format=      download
//	POST   /sessions/{id}/persist             save a snapshot
//	POST   /sessions/{id}/restore             load the snapshot back
//
// Errors are JSON objects of the form
//
//	{"error": {"code": "UNKNOWN_CATEGORY", "message": "unknown category \"Dog\""}}
//
// with the HTTP status taken from [errors.HTTPStatus].
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ontodag/pkg/observability"
	"github.com/matzehuels/ontodag/pkg/session"
)

// maxBodyBytes bounds uploaded documents and request bodies.
const maxBodyBytes = 32 << 20

// Options configures a [Server].
type Options struct {
	// Sessions holds the live ontologies. Required.
	Sessions *session.Manager

	// Logger receives one line per request. Defaults to a discarding logger.
	Logger *log.Logger

	// Optimized is the insertion mode used when a put request does not
	// choose one.
	Optimized bool

	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

// Server routes HTTP requests to session operations.
type Server struct {
	sessions  *session.Manager
	logger    *log.Logger
	optimized bool
	router    chi.Router
}

// New builds the router.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Server{
		sessions:  opts.Sessions,
		logger:    opts.Logger,
		optimized: opts.Optimized,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Post("/sessions", s.createSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Delete("/", s.deleteSession)

		r.Get("/dag", s.getDAG)
		r.Get("/dag/image", s.getDAGImage)

		r.Post("/nodes", s.putNode)
		r.Get("/nodes/{name}", s.getNode)
		r.Delete("/nodes/{name}", s.removeNode)

		r.Get("/query", s.query)
		r.Get("/query/dag", s.queryDAG)
		r.Get("/query/export", s.exportQuery)
		r.Post("/prune", s.prune)

		r.Post("/import", s.importOntology)
		r.Get("/export", s.exportOntology)

		r.Post("/persist", s.persist)
		r.Post("/restore", s.restore)
	})

	s.router = r
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// instrument logs every request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
