package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/ports"
)

// Service implements ports.Service around an in-memory Database.
// The dependency check result is configurable and every check is counted.
type Service struct {
	db *Database

	mu     sync.Mutex
	status domain.DependencyStatus
	err    error
	delay  time.Duration

	checks atomic.Int64
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithStatus sets the status reported by CheckDependencies.
func WithStatus(status domain.DependencyStatus) ServiceOption {
	return func(s *Service) {
		s.status = status
	}
}

// WithCheckError makes CheckDependencies fail with err.
func WithCheckError(err error) ServiceOption {
	return func(s *Service) {
		s.err = err
	}
}

// WithCheckDelay makes CheckDependencies take d (context-aware).
func WithCheckDelay(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.delay = d
	}
}

// NewService wraps db. By default the check reports DependencyAvailable immediately.
func NewService(db *Database, opts ...ServiceOption) *Service {
	s := &Service{
		db:     db,
		status: domain.DependencyAvailable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckDependencies reports the configured status.
func (s *Service) CheckDependencies(ctx context.Context) (domain.DependencyStatus, error) {
	s.checks.Add(1)

	s.mu.Lock()
	status, err, delay := s.status, s.err, s.delay
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.DependencyUnavailableOther, ctx.Err()
		case <-timer.C:
		}
	}
	return status, err
}

// Database returns the wrapped database.
func (s *Service) Database() ports.Database {
	return s.db
}

// Checks returns how many dependency checks ran.
func (s *Service) Checks() int64 {
	return s.checks.Load()
}
