package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/inventory"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/infrastructure/cache"
	"github.com/merchbydz/backoffice/internal/infrastructure/memory"
)

func setup(t *testing.T) (*inventory.MovementUseCase, *cache.MemoryCache) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Inventory.Upsert(context.Background(), &entity.InventoryItem{
		ID: "inv-1", SKU: "TS-BLK-001", Name: "T-shirt noir", Quantity: 10, ReorderThreshold: 5,
		UnitCost: decimal.NewFromInt(800),
	}))
	c := cache.NewMemoryCache()
	return inventory.NewMovementUseCase(memory.NewTxRunner(store), c, zerolog.Nop()), c
}

func TestRegister_InThenOut(t *testing.T) {
	ctx := context.Background()
	uc, c := setup(t)
	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, "summary", 1, 0))

	cost := decimal.NewFromInt(1000)
	res, err := uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "in", Quantity: 30, UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, 10, res.PreviousQuantity)
	assert.Equal(t, 40, res.Quantity)
	assert.Equal(t, "950", res.UnitCost.String())
	assert.Equal(t, "38000", res.StockValue.String())

	var v int
	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	hit, err := c.Get(ctx, gen, "summary", &v)
	require.NoError(t, err)
	assert.False(t, hit, "el movimiento invalida la caché")

	res, err = uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "out", Quantity: 36})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Quantity)
	assert.True(t, res.BelowThreshold)
}

func TestRegister_Errors(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	_, err := uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "out", Quantity: 11})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "in", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada sin unit_cost")

	_, err = uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "transfer", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, "nope", dto.MovementRequest{Type: "adjustment", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nada de lo anterior tocó el stock.
	res, err := uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "adjustment", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, res.PreviousQuantity)
}

func TestRegister_ConcurrentOuts(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "out", Quantity: 1}); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, failed)

	res, err := uc.Register(ctx, "inv-1", dto.MovementRequest{Type: "adjustment", Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, res.PreviousQuantity)
}
