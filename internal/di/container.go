// Package di provides dependency injection container for managing service lifecycle and dependencies.
package di

import (
	"context"
	"sync"

	"speakroots/internal/config"
	"speakroots/internal/daily"
	"speakroots/internal/kvstore"
	"speakroots/internal/observability"
	"speakroots/internal/quizgen"
	"speakroots/internal/services"
	contextutils "speakroots/internal/utils"
)

// Service names
const (
	ServiceStore      = "store"
	ServiceSelector   = "selector"
	ServiceBuilder    = "builder"
	ServiceQuiz       = "quiz"
	ServiceDispatcher = "dispatcher"
	ServicePlay       = "play"
)

// ServiceContainerInterface defines the interface for service containers
type ServiceContainerInterface interface {
	GetService(name string) (interface{}, error)
	GetStore() (kvstore.Store, error)
	GetSelector() (*daily.Selector, error)
	GetQuizService() (services.QuizServiceInterface, error)
	GetDispatcher() (*services.Dispatcher, error)
	GetPlaySessionManager() (*services.PlaySessionManager, error)
	GetConfig() *config.Config
	GetLogger() *observability.Logger
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceContainer owns the application state: the store, the quiz services built on it,
// and the shutdown hooks that release them
type ServiceContainer struct {
	cfg           *config.Config
	logger        *observability.Logger
	metrics       *observability.QuizMetrics
	services      map[string]interface{}
	order         []string
	mu            sync.RWMutex
	shutdownFuncs []func(context.Context) error
}

// NewServiceContainer creates a new dependency injection container
func NewServiceContainer(cfg *config.Config, logger *observability.Logger) *ServiceContainer {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &ServiceContainer{
		cfg:      cfg,
		logger:   logger,
		services: make(map[string]interface{}),
	}
}

// WithMetrics records quiz metrics on m; call before Initialize
func (sc *ServiceContainer) WithMetrics(m *observability.QuizMetrics) *ServiceContainer {
	sc.metrics = m
	return sc
}

// Initialize sets up all services and their dependencies
func (sc *ServiceContainer) Initialize(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	store, err := kvstore.Open(ctx, sc.cfg, sc.logger)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to open %s store", sc.cfg.Store.Backend)
	}
	sc.shutdownFuncs = append(sc.shutdownFuncs, func(_ context.Context) error {
		return store.Close()
	})
	sc.register(ServiceStore, store)

	if err := sc.initializeServices(store); err != nil {
		_ = sc.cleanup(ctx)
		return err
	}

	if err := sc.startupServices(ctx); err != nil {
		_ = sc.cleanup(ctx)
		return contextutils.WrapErrorf(err, "failed to startup services")
	}

	sc.logger.Info(ctx, "Services initialized", map[string]interface{}{
		"store":    sc.cfg.Store.Backend,
		"services": len(sc.services),
	})
	return nil
}

// GetService retrieves a service by name with type assertion
func (sc *ServiceContainer) GetService(name string) (interface{}, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	service, exists := sc.services[name]
	if !exists {
		return nil, contextutils.ErrorWithContextf("service %s not found", name)
	}
	return service, nil
}

// GetServiceAs performs type-safe service retrieval
func GetServiceAs[T any](sc *ServiceContainer, name string) (T, error) {
	var zero T
	service, err := sc.GetService(name)
	if err != nil {
		return zero, err
	}

	typed, ok := service.(T)
	if !ok {
		return zero, contextutils.ErrorWithContextf("service %s is not of expected type %T", name, zero)
	}
	return typed, nil
}

// GetStore returns the key-value store
func (sc *ServiceContainer) GetStore() (kvstore.Store, error) {
	return GetServiceAs[kvstore.Store](sc, ServiceStore)
}

// GetSelector returns the daily selector
func (sc *ServiceContainer) GetSelector() (*daily.Selector, error) {
	return GetServiceAs[*daily.Selector](sc, ServiceSelector)
}

// GetQuizService returns the quiz service
func (sc *ServiceContainer) GetQuizService() (services.QuizServiceInterface, error) {
	return GetServiceAs[services.QuizServiceInterface](sc, ServiceQuiz)
}

// GetDispatcher returns the event dispatcher
func (sc *ServiceContainer) GetDispatcher() (*services.Dispatcher, error) {
	return GetServiceAs[*services.Dispatcher](sc, ServiceDispatcher)
}

// GetPlaySessionManager returns the play session manager
func (sc *ServiceContainer) GetPlaySessionManager() (*services.PlaySessionManager, error) {
	return GetServiceAs[*services.PlaySessionManager](sc, ServicePlay)
}

// GetConfig returns the configuration
func (sc *ServiceContainer) GetConfig() *config.Config {
	return sc.cfg
}

// GetLogger returns the logger
func (sc *ServiceContainer) GetLogger() *observability.Logger {
	return sc.logger
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.cleanup(ctx)
}

func (sc *ServiceContainer) register(name string, service interface{}) {
	sc.services[name] = service
	sc.order = append(sc.order, name)
}

// startupServices starts, in registration order, the services that have a Startup method
func (sc *ServiceContainer) startupServices(ctx context.Context) error {
	for _, name := range sc.order {
		lifecycleService, ok := sc.services[name].(interface{ Startup(context.Context) error })
		if !ok {
			continue
		}
		sc.logger.Info(ctx, "Starting service", map[string]interface{}{"service": name})
		if err := lifecycleService.Startup(ctx); err != nil {
			return contextutils.WrapErrorf(err, "failed to startup service %s", name)
		}
	}
	return nil
}

// cleanup runs the shutdown hooks in reverse order and forgets all services
func (sc *ServiceContainer) cleanup(ctx context.Context) error {
	var errs []error
	for i := len(sc.shutdownFuncs) - 1; i >= 0; i-- {
		if err := sc.shutdownFuncs[i](ctx); err != nil {
			sc.logger.Error(ctx, "Shutdown hook failed", err)
			errs = append(errs, err)
		}
	}
	sc.shutdownFuncs = nil
	sc.services = make(map[string]interface{})
	sc.order = nil

	if len(errs) > 0 {
		return contextutils.ErrorWithContextf("shutdown errors: %v", errs)
	}
	return nil
}

// initializeServices builds the quiz services on top of store
func (sc *ServiceContainer) initializeServices(store kvstore.Store) error {
	selector := daily.NewSelector(store, sc.logger,
		daily.WithLocation(sc.cfg.Location()),
		daily.WithMetrics(sc.metrics),
	)
	sc.register(ServiceSelector, selector)

	builder := quizgen.NewBuilder(
		quizgen.WithAttemptBudget(sc.cfg.Quiz.AttemptBudget),
		quizgen.WithLogger(sc.logger),
		quizgen.WithMetrics(sc.metrics),
	)
	sc.register(ServiceBuilder, builder)

	quizService, err := services.NewQuizService(sc.cfg, store, selector, builder, sc.logger)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to create quiz service")
	}
	sc.register(ServiceQuiz, quizService)

	sc.register(ServiceDispatcher, services.NewDispatcher(quizService, sc.logger))
	sc.register(ServicePlay, services.NewPlaySessionManager(quizService, sc.logger))
	return nil
}
