package connector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/brochure/internal/logging"
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/ports"
)

// Connector establishes readiness of the remote data service once per lifetime
// and exposes its query handle afterwards.
// All exported methods are safe for concurrent use; the connector is the only writer of its state.
type Connector struct {
	service ports.Service
	timeout time.Duration
	hooks   domain.Hooks
	logger  *slog.Logger

	mu     sync.RWMutex
	state  domain.ConnectionState
	handle ports.Database
	err    error
	done   chan struct{}
}

// Option configures the Connector.
type Option func(*Connector)

// WithLogger configures a logger for initialization outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// WithTimeout bounds the dependency check. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Connector) {
		c.timeout = d
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Connector) {
		c.hooks = hooks
	}
}

// New creates an uninitialized connector for service.
func New(service ports.Service, opts ...Option) *Connector {
	c := &Connector{
		service: service,
		logger:  logging.NewNop(),
		state:   domain.StateUninitialized,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize starts the dependency check in the background and returns immediately.
// Only the first call has any effect: later calls never re-run the check or regress state.
// The check runs detached from ctx cancellation but keeps its values.
func (c *Connector) Initialize(ctx context.Context) {
	c.mu.Lock()
	if c.state != domain.StateUninitialized {
		c.mu.Unlock()
		return
	}
	c.state = domain.StateInitializing
	c.mu.Unlock()

	c.logger.Debug("initializing data service")
	go c.run(context.WithoutCancel(ctx))
}

func (c *Connector) run(ctx context.Context) {
	start := time.Now()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	status, err := c.check(ctx)

	var handle ports.Database
	switch {
	case err != nil:
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("dependency check timed out after %v: %w", c.timeout, err)
		}
		err = fmt.Errorf("%w (%s): %w", domain.ErrInitializationFailed, status, err)
	case status != domain.DependencyAvailable:
		err = fmt.Errorf("%w: dependency status %s", domain.ErrInitializationFailed, status)
	default:
		handle = c.service.Database()
	}

	c.mu.Lock()
	if err != nil {
		c.state = domain.StateFailed
		c.err = err
	} else {
		c.state = domain.StateReady
		c.handle = handle
	}
	state := c.state
	close(c.done)
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("data service initialization failed", "status", status.String(), "error", err)
	} else {
		c.logger.Info("data service ready", "duration", time.Since(start))
	}

	if c.hooks.OnInitialized != nil {
		c.hooks.OnInitialized(ctx, &domain.InitEvent{
			Timestamp: time.Now(),
			State:     state,
			Status:    status,
			Err:       err,
			Duration:  time.Since(start),
		})
	}
}

// check bounds CheckDependencies by ctx even when the service ignores it.
func (c *Connector) check(ctx context.Context) (domain.DependencyStatus, error) {
	type result struct {
		status domain.DependencyStatus
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		status, err := c.service.CheckDependencies(ctx)
		ch <- result{status: status, err: err}
	}()

	select {
	case r := <-ch:
		return r.status, r.err
	case <-ctx.Done():
		return domain.DependencyUnavailableOther, ctx.Err()
	}
}

// HandleIfReady returns the query handle only when the state is Ready.
func (c *Connector) HandleIfReady() (ports.Database, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != domain.StateReady {
		return nil, false
	}
	return c.handle, true
}

// State returns the current connection state.
func (c *Connector) State() domain.ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Err returns the recorded failure reason, if initialization failed.
func (c *Connector) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Done is closed once the connector reaches Ready or Failed.
func (c *Connector) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until initialization finishes or ctx is done.
// It does not start initialization.
func (c *Connector) Wait(ctx context.Context) (domain.ConnectionState, error) {
	select {
	case <-c.done:
		return c.State(), c.Err()
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}
