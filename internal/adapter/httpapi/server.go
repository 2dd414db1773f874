// Package httpapi exposes the aggregated conditions snapshot over HTTP. The
// API always answers with the snapshot JSON shape, error responses included,
// so browser clients never need a second schema.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shorecast/swellboard/internal/domain"
)

// Snapshotter produces the current aggregated snapshot.
type Snapshotter interface {
	Snapshot(ctx context.Context) domain.Snapshot
}

// Server exposes the conditions, health, and metrics HTTP endpoints.
type Server struct {
	httpServer     *http.Server
	snapshots      Snapshotter
	requestTimeout time.Duration
	logger         *slog.Logger
}

// NewServer creates the HTTP server. requestTimeout bounds the fan-out of a
// single conditions request.
func NewServer(addr string, snapshots Snapshotter, requestTimeout time.Duration, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		snapshots:      snapshots,
		requestTimeout: requestTimeout,
		logger:         logger,
	}

	// Registered without a method so OPTIONS preflights reach the handler.
	mux.HandleFunc("/api/v1/conditions", s.handleConditions)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleConditions(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet:
	default:
		s.writeErrorSnapshot(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	// A panic anywhere in the fan-out still yields the snapshot JSON shape.
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("conditions request panicked", "panic", rec)
			s.writeErrorSnapshot(w, http.StatusInternalServerError, "internal error")
		}
	}()

	snap := s.snapshots.Snapshot(ctx)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeErrorSnapshot answers with an all-null snapshot carrying the error
// message, keeping the response schema identical to the success path.
func (s *Server) writeErrorSnapshot(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, domain.Snapshot{
		GeneratedAt: domain.Clock().Now(),
		Buoys:       []domain.Observation{},
		Error:       msg,
	})
}

func writeCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
