package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
)

func TestWeightedAverageCost(t *testing.T) {
	// 10 a 800 + 30 a 1000 → 950
	got := WeightedAverageCost(10, decimal.NewFromInt(800), 30, decimal.NewFromInt(1000))
	assert.True(t, got.Equal(decimal.NewFromInt(950)), got.String())

	// Sin stock previo: el costo de la entrada.
	got = WeightedAverageCost(0, decimal.NewFromInt(999), 5, decimal.NewFromInt(700))
	assert.True(t, got.Equal(decimal.NewFromInt(700)), got.String())

	assert.True(t, WeightedAverageCost(0, decimal.Zero, 0, decimal.Zero).IsZero())

	// Redondeo a céntimos: (1*100 + 2*101) / 3 = 100.666…
	got = WeightedAverageCost(1, decimal.NewFromInt(100), 2, decimal.NewFromInt(101))
	assert.Equal(t, "100.67", got.String())
}

func TestApply(t *testing.T) {
	item := &entity.InventoryItem{SKU: "TS-BLK-001", Quantity: 10, UnitCost: decimal.NewFromInt(800)}

	require.NoError(t, Apply(item, Movement{Type: MovementIn, Quantity: 30, UnitCost: decimal.NewFromInt(1000)}))
	assert.Equal(t, 40, item.Quantity)
	assert.True(t, item.UnitCost.Equal(decimal.NewFromInt(950)))

	require.NoError(t, Apply(item, Movement{Type: MovementOut, Quantity: 15}))
	assert.Equal(t, 25, item.Quantity)
	assert.True(t, item.UnitCost.Equal(decimal.NewFromInt(950)), "la salida no cambia el costo")

	err := Apply(item, Movement{Type: MovementOut, Quantity: 26})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 25, item.Quantity)

	require.NoError(t, Apply(item, Movement{Type: MovementAdjustment, Quantity: 3}))
	assert.Equal(t, 3, item.Quantity)

	assert.ErrorIs(t, Apply(item, Movement{Type: "transfer", Quantity: 1}), domain.ErrInvalidInput)
	assert.ErrorIs(t, Apply(item, Movement{Type: MovementIn, Quantity: 0}), domain.ErrInvalidInput)
	assert.ErrorIs(t, Apply(item, Movement{Type: MovementOut, Quantity: -1}), domain.ErrInvalidInput)
}
