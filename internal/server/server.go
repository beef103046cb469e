// Package server exposes the gap analyzer and the feature table over HTTP so
// several browser sessions can explore the same data at once.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwiater/gapview/internal/features"
	"github.com/mwiater/gapview/internal/gap"
	"github.com/mwiater/gapview/internal/logging"
	"github.com/mwiater/gapview/internal/report"
)

const requestIDHeader = "X-Request-ID"

// Config holds what the server serves.
type Config struct {
	Addr     string
	Analyzer *gap.Analyzer
	Features []features.Row
	Report   report.Options
}

// Server is the HTTP API surface of gapview. It keeps no per-session state;
// every request carries the metric and override it wants evaluated.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a Server and registers its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Analyzer == nil {
		return nil, errors.New("server: analyzer is required")
	}
	if cfg.Features == nil {
		cfg.Features = features.DefaultRows()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	s := &Server{cfg: cfg, router: chi.NewRouter()}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(requestIDMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleDashboard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/metrics", s.handleListMetrics)
		r.Get("/metrics/{metric}", s.handleEvaluate)
		r.Get("/summary", s.handleSummary)
		r.Get("/features", s.handleFeatures)
	})
}

// requestIDMiddleware keeps the caller's request id or assigns a new one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.router.ServeHTTP(w, r)
	logging.LogEvent("[HTTP] method=%s path=%s query=%q request_id=%s duration=%s",
		r.Method, r.URL.Path, r.URL.RawQuery, w.Header().Get(requestIDHeader), time.Since(start))
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("[HTTP] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		logging.LogEvent("[HTTP] server on %s stopped", srv.Addr)
		return nil
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- HTTP handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": s.cfg.Analyzer.Table().Entries(),
		"labels":  s.cfg.Analyzer.Labels(),
		"policy":  s.cfg.Analyzer.Policy(),
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "metric")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	var override *float64
	if raw := r.URL.Query().Get("override"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("override %q is not a number", raw))
			return
		}
		override = &v
	}

	res, err := s.cfg.Analyzer.Analyze(gap.MetricName(name), override)
	switch {
	case errors.Is(err, gap.ErrUnknownMetric):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, gap.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logging.LogEvaluation(res, override)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.cfg.Analyzer.Summarize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	desc := false
	if raw := q.Get("desc"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("desc %q is not a boolean", raw))
			return
		}
		desc = v
	}

	table, err := features.NewTable(s.cfg.Features).Filter(q.Get("q")).Sort(q.Get("sort"), desc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"columns":  features.Columns(),
		"features": table.Rows(),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := report.Build(s.cfg.Analyzer, s.cfg.Features, s.cfg.Report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	page, err := report.GenerateHTML(d)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}
