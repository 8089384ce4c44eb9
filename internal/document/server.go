package document

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

const (
	serviceName = "Document Extractor API"

	// DefaultMaxUploadBytes caps the request body of an upload
	DefaultMaxUploadBytes = 16 << 20
)

// Config holds the server settings built in main
type Config struct {
	Version        string
	MaxUploadBytes int64
}

// Server handles HTTP requests for document extraction
type Server struct {
	service *Service
	journal Journal
	config  Config
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates a new Server with default mux. A nil journal disables journaling.
func NewServer(service *Service, journal Journal, config Config) *Server {
	return NewServerWithMux(service, journal, config, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, journal Journal, config Config, mux *http.ServeMux) *Server {
	if journal == nil {
		journal = nopJournal{}
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		service: service,
		journal: journal,
		config:  config,
		mux:     mux,
	}
	s.registerRoutes()
	s.handler = s.logRequests(s.corsMiddleware(s.recoverPanics(s.mux)))
	return s
}

// registerRoutes registers all API routes on the server's mux
func (s *Server) registerRoutes() {
	for _, doc := range Documents() {
		s.mux.HandleFunc("POST /api/extract/"+doc.Slug, s.handleExtract(doc))
	}

	s.mux.HandleFunc("GET /api/extractions", s.handleListExtractions)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// recoverPanics turns a handler panic into the generic server error envelope
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Panic while handling request",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				writeServerError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs every request once it has been served
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// HTTPServer wraps the server in an http.Server listening on addr.
// WriteTimeout leaves room for slow extraction calls.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
