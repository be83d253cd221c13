// Package commands provides CLI commands for the admin tool
package commands

import (
	"context"
	"sync"

	"speakroots/internal/config"
	"speakroots/internal/di"
	"speakroots/internal/observability"
)

// Runtime carries what commands share. The service container, and with it the store,
// is only opened by commands that need it.
type Runtime struct {
	Config *config.Config
	Logger *observability.Logger

	mu        sync.Mutex
	container *di.ServiceContainer
}

// NewRuntime creates a runtime over cfg
func NewRuntime(cfg *config.Config, logger *observability.Logger) *Runtime {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Runtime{Config: cfg, Logger: logger}
}

// Container initializes the service container on first use
func (r *Runtime) Container(ctx context.Context) (*di.ServiceContainer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.container != nil {
		return r.container, nil
	}
	container := di.NewServiceContainer(r.Config, r.Logger)
	if err := container.Initialize(ctx); err != nil {
		return nil, err
	}
	r.container = container
	return container, nil
}

// Close shuts the container down if it was opened
func (r *Runtime) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.container == nil {
		return nil
	}
	err := r.container.Shutdown(ctx)
	r.container = nil
	return err
}
