// Package shutdown coordinates graceful teardown of console components. It
// handles SIGTERM/SIGINT, stops accepting new requests, waits for in-flight
// operations up to a timeout, and closes resources cleanly.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultTimeout is the default graceful shutdown timeout.
const DefaultTimeout = 30 * time.Second

// Component is anything that can be gracefully shut down.
type Component interface {
	// Name returns the component name for logging.
	Name() string
	// Shutdown gracefully shuts down the component. It should return
	// within the given context deadline.
	Shutdown(ctx context.Context) error
}

// Coordinator manages graceful shutdown of registered components.
type Coordinator struct {
	components []Component
	timeout    time.Duration
	logger     *slog.Logger
	mu         sync.Mutex

	// signalCh lets tests inject signals.
	signalCh chan os.Signal

	shutdownOnce sync.Once
	shutdownDone chan struct{}
	exitCode     int
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout sets the shutdown timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithSignalChannel sets a custom signal channel (for testing).
func WithSignalChannel(ch chan os.Signal) Option {
	return func(c *Coordinator) {
		c.signalCh = ch
	}
}

// NewCoordinator creates a new shutdown coordinator.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		components:   make([]Component, 0),
		timeout:      DefaultTimeout,
		logger:       slog.Default(),
		shutdownDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a component to be shut down during graceful shutdown.
// Components are shut down in reverse order of registration (LIFO).
func (c *Coordinator) Register(component Component) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.components = append(c.components, component)
	c.logger.Debug("registered shutdown component", "name", component.Name())
}

// WaitForSignal blocks until SIGTERM or SIGINT, then initiates graceful
// shutdown.
func (c *Coordinator) WaitForSignal() {
	sigCh := c.signalCh
	if sigCh == nil {
		sigCh = make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	}

	sig := <-sigCh
	c.logger.Info("received shutdown signal", "signal", sig)

	c.Shutdown()
}

// Shutdown initiates graceful shutdown of all registered components, waiting
// for in-flight operations up to the configured timeout.
func (c *Coordinator) Shutdown() {
	c.shutdownOnce.Do(func() {
		c.logger.Info("initiating graceful shutdown", "timeout", c.timeout)

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		c.mu.Lock()
		components := make([]Component, len(c.components))
		copy(components, c.components)
		c.mu.Unlock()

		var wg sync.WaitGroup
		for i := len(components) - 1; i >= 0; i-- {
			component := components[i]
			wg.Add(1)
			go func(comp Component) {
				defer wg.Done()
				c.logger.Info("shutting down component", "name", comp.Name())
				if err := comp.Shutdown(ctx); err != nil {
					c.logger.Error("component shutdown error",
						"name", comp.Name(),
						"error", err,
					)
				} else {
					c.logger.Info("component shutdown complete", "name", comp.Name())
				}
			}(component)
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			c.logger.Info("all components shut down successfully")
			c.exitCode = 0
		case <-ctx.Done():
			c.logger.Warn("shutdown timeout exceeded, forcing termination")
			c.exitCode = 1
		}

		close(c.shutdownDone)
	})
}

// Wait blocks until shutdown is complete.
func (c *Coordinator) Wait() {
	<-c.shutdownDone
}

// ExitCode returns 0 for a clean shutdown, 1 for forced termination.
func (c *Coordinator) ExitCode() int {
	return c.exitCode
}
