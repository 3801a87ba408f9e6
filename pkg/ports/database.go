package ports

import (
	"context"

	"github.com/aretw0/brochure/pkg/domain"
)

// Database is the query handle of the remote key-value service.
type Database interface {
	// Get reads the value stored at a slash-delimited path (e.g. "brochures/car_01").
	// The value is a generic structure: map[string]any for objects, or a scalar.
	// Returns domain.ErrRecordNotFound if nothing exists at the path.
	// Any other error is a transport or server fault.
	Get(ctx context.Context, path string) (any, error)
}

// WritableDatabase is a Database that can also store values. Used for seeding.
type WritableDatabase interface {
	Database

	// Set stores value at path, replacing what was there.
	Set(ctx context.Context, path string, value any) error
}

// Service is the remote data service as seen before it is ready.
type Service interface {
	// CheckDependencies verifies the environment can reach the service.
	// Only domain.DependencyAvailable allows the connector to become ready.
	CheckDependencies(ctx context.Context) (domain.DependencyStatus, error)

	// Database returns the query handle. Only called after a successful check.
	Database() Database
}
