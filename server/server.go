package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/logger"
)

type Server struct {
	router     *mux.Router
	log        logger.Logger
	httpServer *http.Server
	handler    *ConversionHandler
	registry   *promclient.Registry
}

// NewServer wires the conversion API. HTTP and conversion metrics are
// registered on registry and exposed under /metrics.
func NewServer(service ConversionService, fetcher converter.QuoteFetcher, log logger.Logger, registry *promclient.Registry) *Server {
	if registry == nil {
		registry = promclient.NewRegistry()
	}

	server := &Server{
		log:      log,
		router:   mux.NewRouter(),
		handler:  NewConversionHandler(service, fetcher, log),
		registry: registry,
	}

	server.router.Use(loggingMiddleware(server.log))

	mw := middleware.New(middleware.Config{
		Recorder: prometheus.NewRecorder(prometheus.Config{Registry: registry}),
	})

	server.router.Use(func(next http.Handler) http.Handler {
		return std.Handler("", mw, next)
	})

	server.RegisterRoutes()

	return server
}

func (s *Server) RegisterRoutes() {
	s.router.Use(Recovery(s.log))

	s.handler.RegisterRoutes(s.router)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       9 * time.Second,
		WriteTimeout:      12 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 6 * time.Second,
	}

	s.httpServer = srv

	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	var shutdownErr error

	go func() {
		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(ctx); err != nil {
				s.log.Error("failed to shutdown HTTP server", logger.ErrorField("error", err))
				shutdownErr = fmt.Errorf("HTTP server shutdown error: %w", err)
			}
		}

		close(done)
	}()

	select {
	case <-done:
		return shutdownErr
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
