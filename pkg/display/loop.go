package display

import (
	"context"
	"sync"
)

// Loop is a single-goroutine executor: the logical execution context that owns the display.
// Posted functions run one at a time in FIFO order on the goroutine calling Run.
// Post never blocks, so background work can always hand results back.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
}

// NewLoop creates an idle loop. Call Run to start draining it.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post enqueues fn. Posts after Close are dropped.
func (l *Loop) Post(fn func()) {
	l.TryPost(fn)
}

// TryPost enqueues fn and reports whether it was accepted.
// It returns false once Close has been called.
func (l *Loop) TryPost(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run drains the queue until ctx is done or Close is called.
// On Close, functions already queued still run before Run returns nil.
// Only one Run may be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}

		// Nothing can be queued after Close, so this batch was the last.
		if closed {
			return nil
		}

		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting posts and lets Run return once the queue is empty.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Sync blocks until every function posted before it has run.
func (l *Loop) Sync(ctx context.Context) error {
	done := make(chan struct{})
	l.Post(func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inline is a Dispatcher that runs functions immediately on the caller's goroutine.
// Only suitable when every caller already serializes its own calls.
type Inline struct {
	mu sync.Mutex
}

// Post runs fn under a mutex so overlapping callers still execute one at a time.
func (i *Inline) Post(fn func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	fn()
}
