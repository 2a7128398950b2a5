package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agbru/zzint"
	"github.com/agbru/zzint/internal/logging"
)

// Timeouts for the metrics endpoint. The payload is small, so short limits
// keep a stuck client from pinning a connection.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server is the HTTP server exposing the metrics and health endpoints.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	httpSrv  *http.Server
}

// New creates a server listening on addr with the default security
// configuration.
func New(addr string, metrics *Metrics, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		metrics:  metrics,
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Metrics returns the server's metrics bundle.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the server until the context is canceled, then shuts it down
// gracefully. It blocks and returns the first listener error, if any.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	s.httpSrv = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", s.addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("metrics server shutdown failed", err)
		return err
	}
	return <-errCh
}

// metricsMiddleware tracks request metrics around the next handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus endpoint. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		if s.logger != nil {
			s.logger.Debug("method not allowed on /metrics", logging.String("method", r.Method))
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness together with the engine version and the
// live temporary count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","version":%q,"tracked_temps":%d}`+"\n",
		zzint.Version(), zzint.TrackedTemps())
}
