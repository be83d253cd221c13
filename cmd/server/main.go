// Package main provides the speakroots HTTP server: daily quizzes, pools, scoring and live play.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"speakroots/internal/config"
	"speakroots/internal/di"
	"speakroots/internal/handlers"
	"speakroots/internal/observability"
	contextutils "speakroots/internal/utils"
	"speakroots/internal/version"
)

// Application encapsulates the main application logic and can be tested
type Application struct {
	container di.ServiceContainerInterface
	server    *http.Server
}

// NewApplication creates a new application instance
func NewApplication(container di.ServiceContainerInterface) (*Application, error) {
	quizService, err := container.GetQuizService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get quiz service")
	}

	dispatcher, err := container.GetDispatcher()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get dispatcher")
	}

	plays, err := container.GetPlaySessionManager()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get play session manager")
	}

	cfg := container.GetConfig()
	router := handlers.NewRouter(cfg, quizService, dispatcher, plays, container.GetLogger())

	return &Application{
		container: container,
		server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: config.DefaultHTTPTimeout,
		},
	}, nil
}

// Run serves until ctx is cancelled or the listener fails
func (a *Application) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		return contextutils.WrapError(err, "server failed")
	}
}

// Shutdown stops accepting requests and releases the container's resources
func (a *Application) Shutdown(ctx context.Context) error {
	serverErr := a.server.Shutdown(ctx)
	containerErr := a.container.Shutdown(ctx)
	return errors.Join(serverErr, containerErr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.OpenTelemetry.ServiceVersion = version.Version

	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, handlers.ServiceName,
		observability.ParseLevel(cfg.Server.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if tp != nil {
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "Error shutting down tracer provider", map[string]interface{}{"error": err.Error()})
			}
		}
		if mp != nil {
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "Error shutting down meter provider", map[string]interface{}{"error": err.Error()})
			}
		}
		_ = logger.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "Starting speakroots server", map[string]interface{}{
		"version":  version.Version,
		"port":     cfg.Server.Port,
		"store":    cfg.Store.Backend,
		"logLevel": cfg.Server.LogLevel,
	})

	container := di.NewServiceContainer(cfg, logger)
	if cfg.OpenTelemetry.EnableMetrics {
		container.WithMetrics(observability.DefaultQuizMetrics())
	}
	if err := container.Initialize(ctx); err != nil {
		logger.Error(ctx, "Failed to initialize services", err)
		os.Exit(1)
	}

	app, err := NewApplication(container)
	if err != nil {
		logger.Error(ctx, "Failed to create application", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "Application failed", err)
	} else {
		logger.Info(ctx, "Received shutdown signal, shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Error during application shutdown", err)
		return
	}
	logger.Info(shutdownCtx, "Shutdown completed successfully")
}
