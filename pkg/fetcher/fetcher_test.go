package fetcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/brochure/pkg/adapters/memory"
	"github.com/aretw0/brochure/pkg/connector"
	"github.com/aretw0/brochure/pkg/display"
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/fetcher"
	"github.com/aretw0/brochure/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	db      *memory.Database
	conn    *connector.Connector
	loop    *display.Loop
	title   *display.Label
	price   *display.Label
	fetcher *fetcher.Fetcher
}

func newHarness(t *testing.T, records map[string]map[string]any, opts ...fetcher.Option) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := &harness{
		db:    memory.NewFromRecords(records),
		loop:  display.NewLoop(),
		title: display.NewLabel(""),
		price: display.NewLabel(""),
	}
	go h.loop.Run(ctx)

	h.conn = connector.New(memory.NewService(h.db))
	binding := display.NewBinding(h.title, h.price, domain.DefaultStatusText())
	h.fetcher = fetcher.New(h.conn, binding, h.loop, opts...)
	return h
}

func (h *harness) ready(t *testing.T) {
	t.Helper()
	h.conn.Initialize(context.Background())
	state, err := h.conn.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.StateReady, state)
}

func await(t *testing.T, ch <-chan domain.FetchOutcome) domain.FetchOutcome {
	t.Helper()
	select {
	case o, ok := <-ch:
		require.True(t, ok, "outcome channel closed without a value")
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch outcome")
		return domain.FetchOutcome{}
	}
}

func TestLoad_NotReadyIssuesNoRead(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{"car_01": {"title": "Sedan Z"}})
	h.title.SetText("Scan a brochure")

	outcome := await(t, h.fetcher.Load(context.Background(), "car_01"))

	assert.Equal(t, domain.OutcomeNotReady, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domain.ErrNotReady)
	assert.Equal(t, int64(0), h.db.Reads())
	assert.Equal(t, "Bağlantı hazır değil", h.title.Text())
}

func TestLoad_FailedConnectorIssuesNoRead(t *testing.T) {
	db := memory.NewDatabase()
	conn := connector.New(memory.NewService(db, memory.WithStatus(domain.DependencyUnavailableDisabled)))
	conn.Initialize(context.Background())
	_, err := conn.Wait(context.Background())
	require.Error(t, err)

	f := fetcher.New(conn, display.NewBinding(display.NewLabel(""), display.NewLabel(""), domain.StatusText{}), &display.Inline{})
	for i := 0; i < 3; i++ {
		outcome := await(t, f.Load(context.Background(), "car_01"))
		assert.Equal(t, domain.OutcomeNotReady, outcome.Kind)
	}
	assert.Equal(t, int64(0), db.Reads())
}

func TestLoad_Found(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{
		"car_01": {"title": "Model X", "price": "30000"},
	})
	h.ready(t)

	outcome := await(t, h.fetcher.Load(context.Background(), "car_01"))

	require.Equal(t, domain.OutcomeFound, outcome.Kind)
	assert.Equal(t, "Model X", *outcome.Record.Title)
	assert.Equal(t, "Model X", h.title.Text())
	assert.Equal(t, "30000", h.price.Text())
	assert.Equal(t, int64(1), h.db.Reads())
}

func TestLoad_ScenarioSedan(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{
		"car_01": {"title": "Sedan Z", "price": "25000"},
	})
	h.ready(t)

	await(t, h.fetcher.Load(context.Background(), "car_01"))

	assert.Equal(t, "Sedan Z", h.title.Text())
	assert.Equal(t, "25000", h.price.Text())
}

func TestLoad_AbsentPriceKeepsPreCallValue(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{
		"car_01": {"title": "Model X"},
	})
	h.price.SetText("12000")
	h.ready(t)

	outcome := await(t, h.fetcher.Load(context.Background(), "car_01"))

	assert.Equal(t, domain.OutcomeFound, outcome.Kind)
	assert.Nil(t, outcome.Record.Price)
	assert.Equal(t, "Model X", h.title.Text())
	assert.Equal(t, "12000", h.price.Text())
}

func TestLoad_FaultKeepsPricePlaceholder(t *testing.T) {
	h := newHarness(t, nil)
	h.ready(t)
	boom := errors.New("503 service unavailable")
	h.db.SetFault(boom)

	outcome := await(t, h.fetcher.Load(context.Background(), "car_01"))

	assert.Equal(t, domain.OutcomeFaulted, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, boom)
	assert.Equal(t, "Hata", h.title.Text())
	assert.Equal(t, "...", h.price.Text())
}

func TestLoad_MissingRecord(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{
		"car_01": {"title": "Sedan Z", "price": "25000"},
	})
	h.price.SetText("25000")
	h.ready(t)

	outcome := await(t, h.fetcher.Load(context.Background(), "car_99"))

	assert.Equal(t, domain.OutcomeMissing, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domain.ErrRecordNotFound)
	assert.Equal(t, "Veri Yok", h.title.Text())
	assert.Equal(t, "", h.price.Text())
	assert.Equal(t, int64(1), h.db.Reads())
}

func TestLoad_EmptyMappingIsMissing(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{"car_01": {}})
	h.ready(t)

	outcome := await(t, h.fetcher.Load(context.Background(), "car_01"))

	assert.Equal(t, domain.OutcomeMissing, outcome.Kind)
	assert.Equal(t, "Veri Yok", h.title.Text())
}

func TestLoad_MalformedPayloadIsMissing(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.db.Set(context.Background(), domain.RecordPath("car_01"), []any{"not", "a", "mapping"}))
	h.ready(t)

	outcome := await(t, h.fetcher.Load(context.Background(), "car_01"))

	assert.Equal(t, domain.OutcomeMissing, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domain.ErrMalformedPayload)
	assert.Equal(t, "Veri Yok", h.title.Text())
}

func TestLoad_TimeoutIsFaulted(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{"car_01": {"title": "Sedan Z"}},
		fetcher.WithTimeout(20*time.Millisecond))
	h.ready(t)
	h.db.SetDelay(time.Second)

	outcome := await(t, h.fetcher.Load(context.Background(), "car_01"))

	assert.Equal(t, domain.OutcomeFaulted, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
	assert.Equal(t, "Hata", h.title.Text())
}

func TestLoad_ShowsPlaceholderWhileInFlight(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{"car_01": {"title": "Sedan Z"}})
	h.ready(t)
	h.db.SetDelay(100 * time.Millisecond)

	ch := h.fetcher.Load(context.Background(), "car_01")
	require.NoError(t, h.loop.Sync(context.Background()))

	assert.Equal(t, "Veri çekiliyor...", h.title.Text())
	assert.Equal(t, "...", h.price.Text())

	await(t, ch)
	assert.Equal(t, "Sedan Z", h.title.Text())
}

func TestLoad_LastRequestWins(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{
		"car_slow": {"title": "Stale", "price": "1"},
		"car_fast": {"title": "Fresh", "price": "2"},
	})
	h.ready(t)
	h.db.SetPathDelay(domain.RecordPath("car_slow"), 150*time.Millisecond)

	slow := h.fetcher.Load(context.Background(), "car_slow")
	fast := h.fetcher.Load(context.Background(), "car_fast")

	fastOutcome := await(t, fast)
	slowOutcome := await(t, slow)

	assert.False(t, fastOutcome.Superseded)
	assert.True(t, slowOutcome.Superseded)
	assert.Equal(t, domain.OutcomeFound, slowOutcome.Kind)
	assert.Equal(t, uint64(2), h.fetcher.Latest())

	assert.Equal(t, "Fresh", h.title.Text())
	assert.Equal(t, "2", h.price.Text())
}

func TestLoad_CallerCancellationIsFaulted(t *testing.T) {
	h := newHarness(t, map[string]map[string]any{"car_01": {"title": "Sedan Z"}})
	h.ready(t)
	h.db.SetDelay(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	ch := h.fetcher.Load(ctx, "car_01")
	cancel()

	outcome := await(t, ch)
	assert.Equal(t, domain.OutcomeFaulted, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}

func TestLoad_EmptyIdentifier(t *testing.T) {
	h := newHarness(t, nil)
	h.ready(t)

	outcome := await(t, h.fetcher.Load(context.Background(), ""))

	assert.Equal(t, domain.OutcomeMissing, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domain.ErrEmptyIdentifier)
	assert.Equal(t, int64(0), h.db.Reads())
}

func TestLoad_Hooks(t *testing.T) {
	var started, completed []*domain.FetchEvent
	hooks := domain.Hooks{
		OnFetchStarted:   func(_ context.Context, e *domain.FetchEvent) { started = append(started, e) },
		OnFetchCompleted: func(_ context.Context, e *domain.FetchEvent) { completed = append(completed, e) },
	}
	h := newHarness(t, map[string]map[string]any{"car_01": {"title": "Sedan Z"}}, fetcher.WithHooks(hooks))
	h.ready(t)

	await(t, h.fetcher.Load(context.Background(), "car_01"))

	require.Len(t, started, 1)
	require.Len(t, completed, 1)
	assert.Equal(t, "brochures/car_01", started[0].Path)
	assert.Equal(t, domain.OutcomeFound, completed[0].Kind)
	assert.Equal(t, uint64(1), completed[0].Seq)
}

func TestLoad_OutcomeChannelCloses(t *testing.T) {
	h := newHarness(t, nil)
	ch := h.fetcher.Load(context.Background(), "car_01")

	await(t, ch)
	_, ok := <-ch
	assert.False(t, ok)
}

// stuckDatabase never answers and ignores its context.
type stuckDatabase struct {
	release chan struct{}
}

func (d *stuckDatabase) Get(_ context.Context, _ string) (any, error) {
	<-d.release
	return nil, nil
}

type openGate struct {
	db ports.Database
}

func (g openGate) HandleIfReady() (ports.Database, bool) {
	return g.db, true
}

func TestLoad_TimeoutWhenBackendIgnoresContext(t *testing.T) {
	db := &stuckDatabase{release: make(chan struct{})}
	t.Cleanup(func() { close(db.release) })

	loop := display.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go loop.Run(ctx)

	title, price := display.NewLabel(""), display.NewLabel("")
	binding := display.NewBinding(title, price, domain.DefaultStatusText())
	f := fetcher.New(openGate{db: db}, binding, loop, fetcher.WithTimeout(50*time.Millisecond))

	outcome := await(t, f.Load(context.Background(), "car_01"))

	assert.Equal(t, domain.OutcomeFaulted, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
	assert.Equal(t, "Hata", title.Text())
	assert.Equal(t, "...", price.Text())
}

func TestLoad_ClosedLoopClosesOutcomeChannel(t *testing.T) {
	var completed []*domain.FetchEvent
	hooks := domain.Hooks{
		OnFetchCompleted: func(_ context.Context, e *domain.FetchEvent) { completed = append(completed, e) },
	}
	h := newHarness(t, map[string]map[string]any{"car_01": {"title": "Sedan Z"}}, fetcher.WithHooks(hooks))
	h.ready(t)
	h.db.SetDelay(50 * time.Millisecond)

	ch := h.fetcher.Load(context.Background(), "car_01")
	h.loop.Close()

	select {
	case o, ok := <-ch:
		assert.False(t, ok, "unexpected outcome %v", o)
	case <-time.After(2 * time.Second):
		t.Fatal("outcome channel was never closed")
	}
	require.Len(t, completed, 1)
	assert.True(t, completed[0].Superseded)
}
