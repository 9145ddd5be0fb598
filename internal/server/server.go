// Package server runs the optional debug/metrics HTTP surface
// (SPEC_FULL.md §4.12): a chi router exposing /metrics (via promhttp) and
// /healthz, started only when Config.MetricsAddr is non-empty and shut
// down on context cancellation when the Driver finishes. It never
// participates in the sequential pipeline's control flow.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status reports the current pass for /healthz, updated by the Driver as
// it progresses.
type Status struct {
	RunID       string
	CurrentPass string
}

// Server wraps an http.Server and its chi router.
type Server struct {
	httpServer *http.Server
}

// New builds a Server listening on addr, serving /metrics from registry
// and /healthz from status. statusFn is called fresh on every request so
// /healthz always reflects the Driver's live progress.
func New(addr string, registry *prometheus.Registry, statusFn func() Status) *Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		st := statusFn()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"run_id":"` + st.RunID + `","pass":"` + st.CurrentPass + `"}`))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving in a background goroutine. Errors other than
// http.ErrServerClosed are sent on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully stops the server, honoring ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
