// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf2tex/internal/pipeline"
	"github.com/pdiddy/pdf2tex/pkg/types"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Server is the conversion web frontend.
type Server struct {
	cfg      types.Config
	pipeline *pipeline.Pipeline
	renderer *Renderer
	log      *logrus.Logger
	mux      *http.ServeMux
}

// New builds a Server. A nil logger is replaced with the logrus
// standard logger.
func New(cfg types.Config, pl *pipeline.Pipeline, log *logrus.Logger) (*Server, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		pipeline: pl,
		renderer: renderer,
		log:      log,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /upload", s.handleUpload)
	s.mux.HandleFunc("GET /download/tex/{filename}", s.handleDownloadTex)
	s.mux.HandleFunc("GET /download/zip/{name}", s.handleDownloadZip)
}

// Handler returns the server's handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Server.ListenAddr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).Round(time.Millisecond).String(),
		}).Info("request")
	})
}
