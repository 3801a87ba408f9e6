package domain

import (
	"context"
	"time"
)

// InitEvent is emitted once when a connector reaches a terminal state.
type InitEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	State     ConnectionState  `json:"state"`
	Status    DependencyStatus `json:"status"`
	Err       error            `json:"-"`
	Duration  time.Duration    `json:"duration"`
}

// FetchEvent describes one fetch invocation.
type FetchEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Identifier string        `json:"identifier"`
	Path       string        `json:"path"`
	Seq        uint64        `json:"seq"`
	Kind       OutcomeKind   `json:"kind,omitempty"` // empty on start
	Superseded bool          `json:"superseded,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// Hooks defines callbacks for observability. Nil entries are skipped.
type Hooks struct {
	OnInitialized    func(context.Context, *InitEvent)
	OnFetchStarted   func(context.Context, *FetchEvent)
	OnFetchCompleted func(context.Context, *FetchEvent)
}

// Merge returns hooks that call h first, then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnInitialized:    chain(h.OnInitialized, other.OnInitialized),
		OnFetchStarted:   chain(h.OnFetchStarted, other.OnFetchStarted),
		OnFetchCompleted: chain(h.OnFetchCompleted, other.OnFetchCompleted),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
