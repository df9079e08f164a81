package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
	"github.com/merchbydz/backoffice/internal/infrastructure/memory"
)

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[entity.Order]()

	o := entity.NewOrder(entity.ChannelRetail, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	o.ID = "o-1"
	require.NoError(t, c.Upsert(ctx, o))

	o.SalePrice = decimal.NewFromInt(999) // no debe afectar a la copia guardada
	got, err := c.GetByID(ctx, "o-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.SalePrice.IsZero())

	missing, err := c.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, c.Delete(ctx, "o-1"))
	assert.ErrorIs(t, c.Delete(ctx, "o-1"), domain.ErrNotFound)
}

func TestCollection_UpsertSinID(t *testing.T) {
	c := memory.NewCollection[entity.Charge]()
	assert.ErrorIs(t, c.Upsert(context.Background(), &entity.Charge{}), domain.ErrInvalidInput)
}

func TestCollection_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[entity.MarketingSpend]()
	for i, ch := range []entity.Channel{entity.ChannelMerch, entity.ChannelRetail, entity.ChannelMerch} {
		require.NoError(t, c.Upsert(ctx, &entity.MarketingSpend{
			ID:      string(rune('a' + i)),
			Date:    time.Date(2026, 1, 10+i, 0, 0, 0, 0, time.UTC),
			Channel: ch,
		}))
	}

	all, err := c.List(ctx, repository.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID, "más reciente primero")

	merch, err := c.List(ctx, repository.RecordFilter{Channel: entity.ChannelMerch})
	require.NoError(t, err)
	assert.Len(t, merch, 2)

	rng, err := ledger.ParseDateRange("2026-01-11", "2026-01-11")
	require.NoError(t, err)
	one, err := c.List(ctx, repository.RecordFilter{Range: rng})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "b", one[0].ID)
}

func TestCollection_InventarioNoSeFiltraPorFecha(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[entity.InventoryItem]()
	require.NoError(t, c.Upsert(ctx, &entity.InventoryItem{ID: "i1", SKU: "X"}))

	rng, err := ledger.ParseDateRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	items, err := c.List(ctx, repository.RecordFilter{Range: rng})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
