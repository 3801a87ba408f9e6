package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/brochure/internal/logging"
	"github.com/aretw0/brochure/pkg/display"
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/ports"
)

// DefaultTimeout bounds a single read unless WithTimeout says otherwise.
const DefaultTimeout = 10 * time.Second

// Gate is the readiness check consulted before every request.
// *connector.Connector implements it.
type Gate interface {
	HandleIfReady() (ports.Database, bool)
}

// Fetcher executes record lookups and binds their outcomes to the display.
// Load may be called from any goroutine; every display write goes through the dispatcher.
type Fetcher struct {
	gate       Gate
	binding    *display.Binding
	dispatcher ports.Dispatcher
	timeout    time.Duration
	hooks      domain.Hooks
	logger     *slog.Logger

	// seq is the number of the latest issued request. Completions carrying an older
	// number are discarded on the dispatcher, so the last request wins.
	seq atomic.Uint64
}

// Option configures the Fetcher.
type Option func(*Fetcher)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithTimeout bounds each read. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(f *Fetcher) {
		f.hooks = hooks
	}
}

// New creates a Fetcher writing through binding on dispatcher.
func New(gate Gate, binding *display.Binding, dispatcher ports.Dispatcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		gate:       gate,
		binding:    binding,
		dispatcher: dispatcher,
		timeout:    DefaultTimeout,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load fetches brochures/<id> and binds the result. It never blocks on the network.
// The returned channel receives exactly one outcome, after its display update ran
// (or was discarded as superseded), and is then closed. If the dispatcher was closed
// before the outcome could be handed back, the channel is closed without a value.
func (f *Fetcher) Load(ctx context.Context, id string) <-chan domain.FetchOutcome {
	out := make(chan domain.FetchOutcome, 1)
	seq := f.seq.Add(1)
	start := time.Now()
	path := domain.RecordPath(id)

	if f.hooks.OnFetchStarted != nil {
		f.hooks.OnFetchStarted(ctx, &domain.FetchEvent{
			Timestamp:  start,
			Identifier: id,
			Path:       path,
			Seq:        seq,
		})
	}

	if err := domain.ValidateIdentifier(id); err != nil {
		f.logger.Warn("fetch requested without identifier")
		f.finish(ctx, out, id, path, start, domain.FetchOutcome{Kind: domain.OutcomeMissing, Err: err, Seq: seq})
		return out
	}

	db, ok := f.gate.HandleIfReady()
	if !ok {
		f.logger.Warn("data service not ready", "id", id)
		f.finish(ctx, out, id, path, start, domain.FetchOutcome{Kind: domain.OutcomeNotReady, Err: domain.ErrNotReady, Seq: seq})
		return out
	}

	f.dispatcher.Post(func() {
		if f.latest(seq) {
			f.binding.Placeholder()
		}
	})

	go func() {
		readCtx := ctx
		if f.timeout > 0 {
			var cancel context.CancelFunc
			readCtx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}

		value, err := get(readCtx, db, path)
		if errors.Is(err, context.DeadlineExceeded) && f.timeout > 0 {
			err = fmt.Errorf("read %s timed out after %v: %w", path, f.timeout, err)
		}

		outcome := Classify(value, err)
		outcome.Seq = seq
		f.report(id, outcome)
		f.finish(ctx, out, id, path, start, outcome)
	}()

	return out
}

type result struct {
	value any
	err   error
}

// get bounds db.Get by ctx even when the backend ignores it.
// The abandoned call finishes into a buffered channel nobody reads.
func get(ctx context.Context, db ports.Database, path string) (any, error) {
	ch := make(chan result, 1)
	go func() {
		value, err := db.Get(ctx, path)
		ch <- result{value: value, err: err}
	}()

	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// rejecter is implemented by dispatchers that can refuse work, like a closed display.Loop.
type rejecter interface {
	TryPost(fn func()) bool
}

// finish hands the outcome to the dispatcher, which binds it (unless superseded)
// and then delivers it to the caller. If the dispatcher no longer accepts work,
// the outcome is dropped and the channel closed without a value.
func (f *Fetcher) finish(ctx context.Context, out chan<- domain.FetchOutcome, id, path string, start time.Time, outcome domain.FetchOutcome) {
	outcome.Duration = time.Since(start)
	deliver := func() {
		if f.latest(outcome.Seq) {
			f.binding.Apply(outcome)
		} else {
			outcome.Superseded = true
			f.logger.Debug("discarding superseded fetch", "id", id, "seq", outcome.Seq)
		}
		f.completed(ctx, id, path, outcome)
		out <- outcome
		close(out)
	}

	r, ok := f.dispatcher.(rejecter)
	if !ok {
		f.dispatcher.Post(deliver)
		return
	}
	if r.TryPost(deliver) {
		return
	}

	f.logger.Debug("display closed, dropping fetch outcome", "id", id, "seq", outcome.Seq)
	outcome.Superseded = true
	f.completed(ctx, id, path, outcome)
	close(out)
}

func (f *Fetcher) completed(ctx context.Context, id, path string, outcome domain.FetchOutcome) {
	if f.hooks.OnFetchCompleted == nil {
		return
	}
	f.hooks.OnFetchCompleted(ctx, &domain.FetchEvent{
		Timestamp:  time.Now(),
		Identifier: id,
		Path:       path,
		Seq:        outcome.Seq,
		Kind:       outcome.Kind,
		Superseded: outcome.Superseded,
		Duration:   outcome.Duration,
	})
}

func (f *Fetcher) report(id string, outcome domain.FetchOutcome) {
	switch {
	case outcome.Kind == domain.OutcomeFaulted:
		f.logger.Error("record read failed", "id", id, "error", outcome.Err)
	case errors.Is(outcome.Err, domain.ErrMalformedPayload):
		f.logger.Warn("record is not a field mapping", "id", id, "error", outcome.Err)
	case outcome.Kind == domain.OutcomeMissing:
		f.logger.Warn("record not found", "id", id)
	default:
		f.logger.Debug("record loaded", "id", id)
	}
}

func (f *Fetcher) latest(seq uint64) bool {
	return f.seq.Load() == seq
}

// Latest returns the sequence number of the most recently issued request.
func (f *Fetcher) Latest() uint64 {
	return f.seq.Load()
}
