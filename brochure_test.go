package brochure_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/brochure"
	"github.com/aretw0/brochure/pkg/adapters/memory"
	"github.com/aretw0/brochure/pkg/adapters/redis"
	"github.com/aretw0/brochure/pkg/display"
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestClient_ScenarioFound(t *testing.T) {
	db := memory.NewFromRecords(map[string]map[string]any{
		"car_01": {"title": "Sedan Z", "price": "25000"},
	})
	client, err := brochure.New(memory.NewService(db), "car_01")
	require.NoError(t, err)
	defer client.Close()

	ctx := testCtx(t)
	client.Start(ctx)
	_, err = client.WaitReady(ctx)
	require.NoError(t, err)

	outcome := <-client.Trigger()
	assert.Equal(t, domain.OutcomeFound, outcome.Kind)

	title, price, err := client.Display(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sedan Z", title)
	assert.Equal(t, "25000", price)
}

func TestClient_ScenarioNotFound(t *testing.T) {
	db := memory.NewFromRecords(map[string]map[string]any{
		"car_01": {"title": "Sedan Z", "price": "25000"},
	})
	client, err := brochure.New(memory.NewService(db), "car_99")
	require.NoError(t, err)
	defer client.Close()

	ctx := testCtx(t)
	client.Start(ctx)
	_, err = client.WaitReady(ctx)
	require.NoError(t, err)

	outcome := <-client.Trigger()
	assert.Equal(t, domain.OutcomeMissing, outcome.Kind)

	title, price, err := client.Display(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Veri Yok", title)
	assert.Equal(t, "", price)
	assert.Equal(t, int64(1), db.Reads())
}

func TestClient_TriggerBeforeReady(t *testing.T) {
	db := memory.NewDatabase()
	svc := memory.NewService(db, memory.WithCheckDelay(200*time.Millisecond))
	client, err := brochure.New(svc, "car_01")
	require.NoError(t, err)
	defer client.Close()

	client.Start(testCtx(t))

	outcome := <-client.Trigger()
	assert.Equal(t, domain.OutcomeNotReady, outcome.Kind)
	assert.Equal(t, domain.StateInitializing, client.State())
	assert.Equal(t, int64(0), db.Reads())
}

func TestClient_CustomSinksAndText(t *testing.T) {
	title, price := display.NewLabel("Scan a brochure"), display.NewLabel("")
	client, err := brochure.New(
		memory.NewService(memory.NewDatabase(), memory.WithStatus(domain.DependencyUnavailableDisabled)),
		"car_01",
		brochure.WithSinks(title, price),
		brochure.WithDispatcher(&display.Inline{}),
		brochure.WithStatusText(domain.StatusText{NotReady: "Not connected"}),
	)
	require.NoError(t, err)
	defer client.Close()

	ctx := testCtx(t)
	client.Start(ctx)
	state, err := client.WaitReady(ctx)
	assert.Equal(t, domain.StateFailed, state)
	assert.ErrorIs(t, err, domain.ErrInitializationFailed)

	<-client.Trigger()
	assert.Equal(t, "Not connected", title.Text())
	assert.Equal(t, "Hata", client.StatusText().Error)
}

func TestClient_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.New(mr.Addr(), "", 0)
	defer store.Close()

	ctx := testCtx(t)
	require.NoError(t, store.Set(ctx, domain.RecordPath("car_01"), map[string]any{
		"title": "Model X",
		"price": 30000,
	}))

	client, err := brochure.New(store, "car_01", brochure.WithInitTimeout(time.Second))
	require.NoError(t, err)
	defer client.Close()

	client.Start(ctx)
	state, err := client.WaitReady(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.StateReady, state)

	outcome := <-client.Trigger()
	require.Equal(t, domain.OutcomeFound, outcome.Kind)

	title, price, err := client.Display(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Model X", title)
	assert.Equal(t, "30000", price)
}

func TestClient_Hooks(t *testing.T) {
	inits := make(chan domain.ConnectionState, 1)
	var kinds []domain.OutcomeKind

	client, err := brochure.New(memory.NewService(memory.NewDatabase()), "car_01",
		brochure.WithHooks(domain.Hooks{
			OnInitialized:    func(_ context.Context, e *domain.InitEvent) { inits <- e.State },
			OnFetchCompleted: func(_ context.Context, e *domain.FetchEvent) { kinds = append(kinds, e.Kind) },
		}),
	)
	require.NoError(t, err)
	defer client.Close()

	ctx := testCtx(t)
	client.Start(ctx)
	assert.Equal(t, domain.StateReady, <-inits)

	<-client.Trigger()
	assert.Equal(t, []domain.OutcomeKind{domain.OutcomeMissing}, kinds)
}

func TestNew_RejectsEmptyIdentifier(t *testing.T) {
	_, err := brochure.New(memory.NewService(memory.NewDatabase()), "")
	assert.ErrorIs(t, err, domain.ErrEmptyIdentifier)
}

func TestClient_CloseWithoutStart(t *testing.T) {
	client, err := brochure.New(memory.NewService(memory.NewDatabase()), "car_01")
	require.NoError(t, err)
	client.Close()
	assert.Equal(t, domain.StateUninitialized, client.State())
}

// lateDispatcher runs posted functions on another goroutine after a delay.
type lateDispatcher struct {
	delay time.Duration
	wg    sync.WaitGroup
}

func (d *lateDispatcher) Post(fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		time.Sleep(d.delay)
		fn()
	}()
}

func TestClient_DisplayDeadlineBeforeDispatch(t *testing.T) {
	dispatcher := &lateDispatcher{delay: 20 * time.Millisecond}
	client, err := brochure.New(memory.NewService(memory.NewDatabase()), "car_01",
		brochure.WithDispatcher(dispatcher))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	title, price, err := client.Display(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, title)
	assert.Empty(t, price)

	dispatcher.wg.Wait()
}

func TestClient_CloseWithReadInFlight(t *testing.T) {
	db := memory.NewFromRecords(map[string]map[string]any{
		"car_01": {"title": "Sedan Z", "price": "25000"},
	})
	client, err := brochure.New(memory.NewService(db), "car_01")
	require.NoError(t, err)

	ctx := testCtx(t)
	client.Start(ctx)
	_, err = client.WaitReady(ctx)
	require.NoError(t, err)

	db.SetDelay(200 * time.Millisecond)
	ch := client.Trigger()
	client.Close()

	select {
	case <-ch:
		// Either the cancelled read's outcome or a bare close; the channel never hangs.
		_, ok := <-ch
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("trigger channel was never closed")
	}
}
