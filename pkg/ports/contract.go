package ports

import (
	"context"
	"testing"

	"github.com/aretw0/brochure/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDatabaseContract runs a suite of tests to verify that a WritableDatabase implementation
// adheres to the defined interface contract.
func RunDatabaseContract(t *testing.T, db WritableDatabase) {
	ctx := context.Background()

	t.Run("Set and Get mapping", func(t *testing.T) {
		err := db.Set(ctx, domain.RecordPath("contract_01"), map[string]any{
			"title": "Sedan Z",
			"price": 25000,
		})
		require.NoError(t, err)

		value, err := db.Get(ctx, domain.RecordPath("contract_01"))
		require.NoError(t, err)

		// JSON-backed stores turn numbers into float64, so compare through the decoder.
		rec, err := domain.DecodeRecord(value)
		require.NoError(t, err)
		assert.Equal(t, "Sedan Z", *rec.Title)
		assert.Equal(t, "25000", *rec.Price)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := db.Get(ctx, domain.RecordPath("contract_missing"))
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Scalar value", func(t *testing.T) {
		require.NoError(t, db.Set(ctx, domain.RecordPath("contract_scalar"), "not a mapping"))

		value, err := db.Get(ctx, domain.RecordPath("contract_scalar"))
		require.NoError(t, err)
		assert.Equal(t, "not a mapping", value)

		_, err = domain.DecodeRecord(value)
		assert.ErrorIs(t, err, domain.ErrMalformedPayload)
	})

	t.Run("Overwrite", func(t *testing.T) {
		path := domain.RecordPath("contract_overwrite")
		require.NoError(t, db.Set(ctx, path, map[string]any{"title": "Old"}))
		require.NoError(t, db.Set(ctx, path, map[string]any{"title": "New"}))

		value, err := db.Get(ctx, path)
		require.NoError(t, err)
		rec, err := domain.DecodeRecord(value)
		require.NoError(t, err)
		assert.Equal(t, "New", *rec.Title)
		assert.Nil(t, rec.Price)
	})

	t.Run("Paths are isolated", func(t *testing.T) {
		require.NoError(t, db.Set(ctx, domain.RecordPath("contract_a"), map[string]any{"title": "A"}))

		_, err := db.Get(ctx, domain.RecordPath("contract_b"))
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
		_, err = db.Get(ctx, "other/contract_a")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}
