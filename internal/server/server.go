package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/service"
)

// Server is the HTTP front end of the evaluation service.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	registry       *metrics.Registry
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer builds a server evaluating with the engines of factory.
// cfg supplies the port, the default engine, the digit limit and the
// evaluation timeout.
func NewServer(factory engine.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stderr, "server"),
		securityConfig: DefaultSecurityConfig(),
		timeouts:       DefaultServerTimeouts(),
	}
	s.securityConfig.MaxDigits = cfg.MaxDigits
	if cfg.Timeout > 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = metrics.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	if s.service == nil {
		svcLogger := zerolog.Nop()
		if z, ok := s.logger.(*logging.ZerologAdapter); ok {
			svcLogger = z.Zerolog()
		}
		s.service = service.NewEvaluationService(factory, s.securityConfig.MaxDigits,
			service.WithRecorder(s.registry),
			service.WithLogger(svcLogger),
		)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	s.route(mux, "/v1/eval", s.handleEval)
	s.route(mux, "/v1/compare", s.handleCompare)
	s.route(mux, "/v1/engines", s.handleEngines)
	s.route(mux, "/health", s.handleHealth)
	s.route(mux, "/metrics", s.handleMetrics)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// route registers handler behind the middleware chain:
// Security -> RateLimit -> Logging -> Metrics -> Recover -> handler.
func (s *Server) route(mux *http.ServeMux, path string, handler http.HandlerFunc) {
	wrapped := s.recoverMiddleware(handler)
	wrapped = s.metricsMiddleware(path, wrapped)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	mux.HandleFunc(path, wrapped)
}

// Handler returns the root handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured port and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			logging.String("addr", ln.Addr().String()),
			logging.Int("max_digits", s.securityConfig.MaxDigits),
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
	case err, ok := <-errCh:
		if ok {
			return apperrors.NewServerError("server stopped unexpectedly", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	s.logger.Info("server stopped")
	return nil
}
