// Package server exposes the merge pipeline over HTTP.
//
// Routes:
//
//	GET  /health          liveness probe
//	POST /v1/transform    apply an edit script to a document
//
// Every response carries an X-Request-ID header; the same ID is attached to
// log lines written while handling the request.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	pkgio "github.com/matzehuels/xmlmerge/pkg/io"
	"github.com/matzehuels/xmlmerge/pkg/pipeline"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second

	// maxBodySize leaves room for JSON escaping of a maximum-size document
	// plus its script.
	maxBodySize = 2*pkgio.MaxDocumentSize + 1<<20
)

// Server represents the API server.
type Server struct {
	Addr   string
	router *chi.Mux
	server *http.Server
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server that runs transforms through runner.
// A nil logger discards output.
func NewServer(addr string, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		Addr:   addr,
		router: chi.NewRouter(),
		runner: runner,
		logger: logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, for embedding or tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.accessLog)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(requestTimeout))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.RequestSize(maxBodySize))
		r.Post("/transform", s.handleTransform)
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.Addr)
		errc <- s.Start()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Response represents a standard API response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Error writes an error response.
func (s *Server) Error(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Success: false, Error: message, Code: code})
}

// Success writes a success response.
func (s *Server) Success(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
