package brochure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/brochure/internal/logging"
	"github.com/aretw0/brochure/pkg/connector"
	"github.com/aretw0/brochure/pkg/display"
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/fetcher"
	"github.com/aretw0/brochure/pkg/ports"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// Client is one configured brochure component: a record identifier, a pair of
// display sinks, and the connector/fetcher pair wired between them.
// It is the high-level entry point for hosts; the packages under pkg/ can be wired by hand too.
type Client struct {
	Identifier string

	connector *connector.Connector
	fetcher   *fetcher.Fetcher
	loop      *display.Loop // nil when the host supplies its own dispatcher
	dispatch  ports.Dispatcher

	title ports.TextSink
	price ports.TextSink

	text         domain.StatusText
	initTimeout  time.Duration
	fetchTimeout time.Duration
	hooks        domain.Hooks
	logger       *slog.Logger

	startOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	loopDone  chan struct{}
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSinks binds caller-owned title and price sinks. Defaults are in-memory Labels.
func WithSinks(title, price ports.TextSink) Option {
	return func(c *Client) {
		c.title = title
		c.price = price
	}
}

// WithDispatcher runs display writes on a host-owned execution context
// instead of the client's own Loop.
func WithDispatcher(d ports.Dispatcher) Option {
	return func(c *Client) {
		c.dispatch = d
	}
}

// WithStatusText overrides the status strings. Empty entries keep their defaults.
func WithStatusText(text domain.StatusText) Option {
	return func(c *Client) {
		c.text = text
	}
}

// WithInitTimeout bounds the dependency check. Zero means no limit.
func WithInitTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.initTimeout = d
	}
}

// WithFetchTimeout bounds each read. Zero means no limit.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.fetchTimeout = d
	}
}

// WithHooks registers observability hooks on both the connector and the fetcher.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Client) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// New wires a Client for identifier against service. Nothing runs until Start.
func New(service ports.Service, identifier string, opts ...Option) (*Client, error) {
	if err := domain.ValidateIdentifier(identifier); err != nil {
		return nil, fmt.Errorf("invalid identifier: %w", err)
	}

	c := &Client{
		Identifier:   identifier,
		text:         domain.DefaultStatusText(),
		fetchTimeout: fetcher.DefaultTimeout,
		loopDone:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.logger = c.logger.With("brochure", identifier)

	if c.title == nil {
		c.title = display.NewLabel("")
	}
	if c.price == nil {
		c.price = display.NewLabel("")
	}
	if c.dispatch == nil {
		c.loop = display.NewLoop()
		c.dispatch = c.loop
	}

	c.connector = connector.New(service,
		connector.WithLogger(c.logger),
		connector.WithTimeout(c.initTimeout),
		connector.WithHooks(c.hooks),
	)
	c.fetcher = fetcher.New(c.connector,
		display.NewBinding(c.title, c.price, c.text),
		c.dispatch,
		fetcher.WithLogger(c.logger),
		fetcher.WithTimeout(c.fetchTimeout),
		fetcher.WithHooks(c.hooks),
	)

	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c, nil
}

// Start runs the display loop (if the client owns one) and begins initialization.
// It returns immediately; calling it again has no effect.
func (c *Client) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		if c.loop != nil {
			go func() {
				defer close(c.loopDone)
				// Run only returns once Close drained the queue.
				_ = c.loop.Run(context.Background())
			}()
		} else {
			close(c.loopDone)
		}
		c.connector.Initialize(ctx)
	})
}

// Trigger loads the configured record. It is the entry point for recognition/UI events
// and never blocks. The outcome is delivered once its display update has run.
func (c *Client) Trigger() <-chan domain.FetchOutcome {
	return c.fetcher.Load(c.ctx, c.Identifier)
}

// WaitReady blocks until initialization finishes.
func (c *Client) WaitReady(ctx context.Context) (domain.ConnectionState, error) {
	return c.connector.Wait(ctx)
}

// State returns the connection state.
func (c *Client) State() domain.ConnectionState {
	return c.connector.State()
}

// Err returns the initialization failure reason, if any.
func (c *Client) Err() error {
	return c.connector.Err()
}

// Display returns the current sink texts, read on the display context.
// Sinks that cannot be read back report an empty string.
func (c *Client) Display(ctx context.Context) (string, string, error) {
	type texts struct{ title, price string }
	ch := make(chan texts, 1)
	c.dispatch.Post(func() {
		var t texts
		if r, ok := c.title.(ports.TextReader); ok {
			t.title = r.Text()
		}
		if r, ok := c.price.(ports.TextReader); ok {
			t.price = r.Text()
		}
		ch <- t
	})

	select {
	case t := <-ch:
		return t.title, t.price, nil
	case <-ctx.Done():
		return "", "", ctx.Err()
	}
}

// StatusText returns the status strings in use.
func (c *Client) StatusText() domain.StatusText {
	return c.text.WithDefaults()
}

// Close cancels in-flight reads and stops the display loop after it drains.
// Outcomes of reads still in flight are dropped with the loop; their Trigger
// channels are closed without a value.
func (c *Client) Close() {
	c.cancel()
	// A client closed before Start never starts.
	c.startOnce.Do(func() { close(c.loopDone) })
	if c.loop != nil {
		c.loop.Close()
	}
	<-c.loopDone
}
