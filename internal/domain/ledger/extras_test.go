package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

func TestSellerBalances(t *testing.T) {
	b := &ledger.Book{
		Orders: []*entity.Order{
			{ID: "1", Channel: entity.ChannelRetail, Date: day("2026-01-01"), SellerName: "Yasmine", Status: entity.StatusDeliveredCollected, Commission: dec(300)},
			{ID: "2", Channel: entity.ChannelRetail, Date: day("2026-01-02"), SellerName: "yasmine ", Status: entity.StatusDeliveredPending, Commission: dec(200)},
			{ID: "3", Channel: entity.ChannelRetail, Date: day("2026-01-03"), SellerName: "Karim", Status: entity.StatusReturned, Commission: dec(100)},
			{ID: "4", Channel: entity.ChannelWholesale, Date: day("2026-01-03"), SellerName: "Karim", Status: entity.StatusDeliveredCollected},
		},
		Payouts: []*entity.Payout{
			{ID: "p", Date: day("2026-01-10"), SellerName: "Yasmine", Amount: dec(250)},
		},
	}
	out := ledger.SellerBalances(b, ledger.Unbounded())
	require.Len(t, out, 2)

	assert.Equal(t, "Karim", out[0].Seller)
	assert.Equal(t, 1, out[0].Orders)
	assert.True(t, out[0].Earned.IsZero())

	assert.Equal(t, "Yasmine", out[1].Seller)
	assert.Equal(t, 2, out[1].Orders)
	assert.Equal(t, 1, out[1].Collected)
	assert.True(t, out[1].Earned.Equal(dec(300)))
	assert.True(t, out[1].Pending.Equal(dec(200)))
	assert.True(t, out[1].Due.Equal(dec(50)))
}

func TestInventory(t *testing.T) {
	b := &ledger.Book{Inventory: []*entity.InventoryItem{
		{ID: "a", SKU: "TS-BLK-M", Quantity: 10, ReorderThreshold: 5, UnitCost: dec(700)},
		{ID: "b", SKU: "HD-WHT-L", Quantity: 2, ReorderThreshold: 4, UnitCost: dec(1500)},
		{ID: "c", SKU: "CAP", Quantity: 3, ReorderThreshold: 3, UnitCost: dec(400)},
	}}
	s := ledger.Inventory(b)

	assert.Equal(t, 3, s.Items)
	assert.Equal(t, 15, s.Units)
	assert.True(t, s.Value.Equal(dec(7000+3000+1200)))
	require.Len(t, s.LowStock, 2)
	assert.Equal(t, "HD-WHT-L", s.LowStock[0].SKU, "el más urgente primero")
	assert.Equal(t, "CAP", s.LowStock[1].SKU)
}

func TestCredits(t *testing.T) {
	b := &ledger.Book{Credits: []*entity.Credit{
		{ID: "1", Date: day("2026-02-01"), ClientName: "Boutique Oran", Amount: dec(10000), Paid: dec(4000)},
		{ID: "2", Date: day("2026-02-03"), ClientName: "boutique oran", Amount: dec(2000)},
		{ID: "3", Date: day("2026-02-04"), ClientName: "Club Alger", Amount: dec(3000), Paid: dec(3000)},
		{ID: "4", Date: day("2025-12-31"), ClientName: "Club Alger", Amount: dec(999)},
	}}
	rng, err := ledger.ParseDateRange("2026-01-01", "")
	require.NoError(t, err)
	s := ledger.Credits(b, rng)

	assert.True(t, s.Amount.Equal(dec(15000)))
	assert.True(t, s.Paid.Equal(dec(7000)))
	assert.True(t, s.Outstanding.Equal(dec(8000)))
	require.Len(t, s.Clients, 2)
	assert.Equal(t, "Boutique Oran", s.Clients[0].Client)
	assert.True(t, s.Clients[0].Outstanding.Equal(dec(8000)))
}
