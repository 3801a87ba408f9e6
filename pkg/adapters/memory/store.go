package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/brochure/pkg/domain"
)

// Database implements ports.WritableDatabase in memory.
// Safe for concurrent use. Counts reads and can inject latency or faults,
// which makes it the test double for the remote service.
type Database struct {
	mu     sync.RWMutex
	data   map[string]any
	delays map[string]time.Duration
	delay  time.Duration
	fault  error

	reads atomic.Int64
}

// NewDatabase creates an empty in-memory database.
func NewDatabase() *Database {
	return &Database{
		data:   make(map[string]any),
		delays: make(map[string]time.Duration),
	}
}

// NewFromRecords creates a database seeded with identifier -> fields under the brochures collection.
func NewFromRecords(records map[string]map[string]any) *Database {
	db := NewDatabase()
	for id, fields := range records {
		db.data[domain.RecordPath(id)] = copyValue(fields)
	}
	return db
}

// Get reads the value at path, honoring injected latency and faults.
func (d *Database) Get(ctx context.Context, path string) (any, error) {
	d.reads.Add(1)

	d.mu.RLock()
	delay, ok := d.delays[path]
	if !ok {
		delay = d.delay
	}
	fault := d.fault
	d.mu.RUnlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if fault != nil {
		return nil, fault
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	value, ok := d.data[path]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	// Copy on read so callers can't mutate stored values through the map.
	return copyValue(value), nil
}

// Set stores value at path.
func (d *Database) Set(ctx context.Context, path string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data[path] = copyValue(value)
	return nil
}

// Delete removes the value at path.
func (d *Database) Delete(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.data, path)
}

// Reads returns how many Get calls were made.
func (d *Database) Reads() int64 {
	return d.reads.Load()
}

// SetDelay makes every Get wait d before answering. Zero disables it.
func (d *Database) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

// SetPathDelay overrides the delay for a single path.
func (d *Database) SetPathDelay(path string, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delays[path] = delay
}

// SetFault makes every Get fail with err. Nil restores normal reads.
func (d *Database) SetFault(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fault = err
}

func copyValue(value any) any {
	fields, ok := value.(map[string]any)
	if !ok {
		return value
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return copied
}
