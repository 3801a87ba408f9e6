package domain_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/brochure/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestConnectionState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", domain.StateUninitialized.String())
	assert.Equal(t, "ready", domain.StateReady.String())
	assert.True(t, domain.StateFailed.Terminal())
	assert.False(t, domain.StateInitializing.Terminal())

	data, err := json.Marshal(map[string]domain.ConnectionState{"state": domain.StateReady})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"state":"ready"}`, string(data))
}

func TestStatusText_WithDefaults(t *testing.T) {
	text := domain.StatusText{NotFound: "No data"}.WithDefaults()
	assert.Equal(t, "No data", text.NotFound)
	assert.Equal(t, "Hata", text.Error)
	assert.Equal(t, "Veri çekiliyor...", text.Loading)
}

func TestHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.Hooks{OnFetchStarted: func(context.Context, *domain.FetchEvent) { calls = append(calls, "a") }}
	b := domain.Hooks{
		OnFetchStarted:   func(context.Context, *domain.FetchEvent) { calls = append(calls, "b") },
		OnFetchCompleted: func(context.Context, *domain.FetchEvent) { calls = append(calls, "done") },
	}

	merged := a.Merge(b)
	merged.OnFetchStarted(context.Background(), &domain.FetchEvent{})
	merged.OnFetchCompleted(context.Background(), &domain.FetchEvent{})

	assert.Equal(t, []string{"a", "b", "done"}, calls)
	assert.Nil(t, merged.OnInitialized)
}
