// Package api exposes the extraction service over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/service"
)

// DefaultBasePath is the prefix of the extraction routes.
const DefaultBasePath = "/api/plugins/xml-extractor"

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	svc      *service.Service
	logger   logging.Logger
	basePath string
}

// NewServer creates and configures the HTTP server. An empty basePath uses
// DefaultBasePath.
func NewServer(svc *service.Service, logger logging.Logger, basePath string) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	basePath = "/" + strings.Trim(basePath, "/")
	if basePath == "/" {
		basePath = DefaultBasePath
	}
	s := &Server{svc: svc, logger: logger, basePath: basePath}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route(s.basePath, func(r chi.Router) {
		r.Get("/extract/{alertID}", s.handleExtract)
		r.Get("/download/*", s.handleDownload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logging.F("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("HTTP server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
