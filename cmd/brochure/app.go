package main

import (
	"context"
	"fmt"

	"github.com/aretw0/brochure"
	"github.com/aretw0/brochure/internal/config"
	"github.com/aretw0/brochure/internal/seed"
	"github.com/aretw0/brochure/pkg/adapters/memory"
	"github.com/aretw0/brochure/pkg/adapters/redis"
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/ports"
)

// backend is the opened data service plus its writable view (for seeding).
type backend struct {
	service ports.Service
	db      ports.WritableDatabase
	close   func() error
}

// openBackend builds the data service selected by cfg.
func openBackend(cfg *config.Config) *backend {
	switch cfg.Backend {
	case config.BackendMemory:
		db := memory.NewDatabase()
		return &backend{service: memory.NewService(db), db: db, close: func() error { return nil }}
	default:
		store := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		return &backend{service: store, db: store, close: store.Close}
	}
}

// seedFrom applies a seed file when path is set.
func (b *backend) seedFrom(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	f, err := seed.ParseFile(path)
	if err != nil {
		return err
	}
	n, err := f.Apply(ctx, b.db)
	if err != nil {
		return err
	}
	logger.Info("seeded data service", "records", n, "file", path)
	return nil
}

// newClient wires a brochure client from cfg.
func newClient(service ports.Service, opts ...brochure.Option) (*brochure.Client, error) {
	opts = append([]brochure.Option{
		brochure.WithLogger(logger),
		brochure.WithInitTimeout(cfg.Timeouts.Init),
		brochure.WithFetchTimeout(cfg.Timeouts.Fetch),
	}, opts...)
	return brochure.New(service, cfg.Identifier, opts...)
}

// outcomeError converts a non-Found outcome into a command error.
func outcomeError(o domain.FetchOutcome) error {
	if o.Kind == domain.OutcomeFound {
		return nil
	}
	if o.Err != nil {
		return fmt.Errorf("%s: %w", o.Kind, o.Err)
	}
	return fmt.Errorf("%s", o.Kind)
}
