package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"aeroreduce/internal/config"
	apierrors "aeroreduce/internal/errors"
	"aeroreduce/internal/infrastructure"
	customMiddleware "aeroreduce/internal/middleware"
	"aeroreduce/internal/services"
	handlers "aeroreduce/internal/transport/http"
	"aeroreduce/pkg/contracts"
)

// Application represents the reduction API server and its dependencies
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics
	Reduction     *services.ReductionService
	Health        *services.HealthService

	errorHandler *apierrors.ErrorHandler
	listener     net.Listener
	ready        chan struct{}
	serveErr     chan error
}

// NewApplication wires the logger, telemetry, services and router for cfg.
// A nil cfg is loaded from the usual file and environment sources.
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return newApplication(cfg, logger)
}

func newApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetVersionString()))

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	metrics, err := infrastructure.CreateMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		errorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Level == "debug"),
		ready:         make(chan struct{}),
		serveErr:      make(chan error, 1),
	}

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	a.setupRouter()
	a.createServer()
	return a, nil
}

func (a *Application) initializeServices() error {
	reduction, err := services.NewReductionService(a.Config, a.OTelProviders.Tracer, a.Metrics, a.Logger)
	if err != nil {
		return err
	}
	a.Reduction = reduction
	a.Health = services.NewHealthService(reduction, a.Logger)
	return nil
}

// setupRouter builds the middleware chain and mounts every route. Order:
// RequestID, RealIP, OTel, logger, recovery, security headers, rate limit.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(a.errorHandler.RecoveryMiddleware)
	r.Use(customMiddleware.SecurityHeaders)

	if rl := a.Config.Security.RateLimit; rl.Enabled {
		r.Use(customMiddleware.NewRateLimiter(rl.RPS, rl.Burst, a.Logger, a.errorHandler).Handler)
	}

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		handlers.NewHealthHandler(a.Health, a.Logger).RegisterRoutes(r)

		r.Route("/v1", func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))
			r.Use(customMiddleware.MaxBodySize(a.Config.Server.MaxBodyBytes))
			r.Use(customMiddleware.ContentTypeValidator(a.errorHandler, "application/json"))

			handlers.NewReductionHandler(a.Reduction, a.errorHandler, a.Logger).RegisterRoutes(r)
		})
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Start binds the listen address and serves in the background. Bind errors
// are returned; later serve errors end Run.
func (a *Application) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln
	close(a.ready)

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			a.serveErr <- err
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", ln.Addr().String()),
		slog.String("level", a.Config.Logging.Level),
		slog.Int("max_concurrency", a.Config.Sweep.MaxConcurrency))
	return nil
}

// Ready is closed once Start has bound the listen address
func (a *Application) Ready() <-chan struct{} {
	return a.ready
}

// Addr returns the bound listen address, or the configured one before Start
func (a *Application) Addr() string {
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.Server.Addr
}

// Stop drains the server and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run starts the server and blocks until ctx ends, SIGINT or SIGTERM arrives,
// or the server fails, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("received shutdown signal")
	case serveErr = <-a.serveErr:
	}

	if err := a.Stop(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	return serveErr
}
