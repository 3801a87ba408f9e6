package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every record key.
const DefaultPrefix = "brochure:"

// Store implements ports.Service and ports.WritableDatabase using Redis.
// Each path is stored as a JSON document under prefix + path,
// e.g. "brochure:brochures/car_01".
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for values written with Set.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(path string) string {
	return s.prefix + path
}

// CheckDependencies pings the server.
func (s *Store) CheckDependencies(ctx context.Context) (domain.DependencyStatus, error) {
	if err := s.client.Ping(ctx).Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domain.DependencyUnavailableOther, err
		}
		return domain.DependencyUnavailableMissing, fmt.Errorf("failed to ping redis: %w", err)
	}
	return domain.DependencyAvailable, nil
}

// Database returns the store itself; the client is shared.
func (s *Store) Database() ports.Database {
	return s
}

// Get reads and decodes the JSON document at path.
// A value that is not valid JSON is returned as a raw string.
func (s *Store) Get(ctx context.Context, path string) (any, error) {
	val, err := s.client.Get(ctx, s.key(path)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var value any
	if err := json.Unmarshal([]byte(val), &value); err != nil {
		return val, nil
	}
	return value, nil
}

// Set encodes value as JSON and stores it at path.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := s.client.Set(ctx, s.key(path), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
