package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

func TestChannelBreakdown(t *testing.T) {
	b := sampleBook()
	retailCollected := &entity.Order{
		ID: "6", Channel: entity.ChannelRetail, Date: day("2026-03-20"),
		Status: entity.StatusDeliveredCollected, PurchasePrice: dec(600), PrintPrice: dec(100),
		SalePrice: dec(1400), Commission: dec(200), SellerName: "Amine",
	}
	b.Orders = append(b.Orders, retailCollected)
	b.Orders[1].Commission = dec(150)

	out := ledger.ChannelBreakdown(b, ledger.Unbounded())
	require.Len(t, out, 3)

	w := out[0]
	assert.Equal(t, entity.ChannelWholesale, w.Channel)
	assert.Equal(t, 3, w.Orders)
	assert.Equal(t, 2, w.Delivered)
	assert.True(t, w.Revenue.Equal(dec(3200)))
	assert.True(t, w.Production.Equal(dec(1550)))
	assert.True(t, w.Commission.IsZero())
	assert.True(t, w.Marketing.Equal(dec(700)))
	assert.True(t, w.Potential.Equal(dec(400)))
	assert.True(t, w.Net.Equal(dec(3200-1550-700)))

	r := out[1]
	assert.Equal(t, entity.ChannelRetail, r.Channel)
	assert.True(t, r.Revenue.Equal(dec(2900)))
	assert.True(t, r.Production.Equal(dec(1600)))
	assert.True(t, r.Commission.Equal(dec(350)))
	assert.True(t, r.Returns.Equal(dec(1050)))
	assert.True(t, r.Marketing.Equal(dec(2500)))
	assert.True(t, r.Receivable.Equal(dec(1500)))
	assert.Equal(t, 1, r.Returned)
	assert.True(t, r.Net.Equal(dec(2900-1600-350-1050-2500)), "got %s", r.Net)

	m := out[2]
	assert.Equal(t, entity.ChannelMerch, m.Channel)
	assert.Zero(t, m.Orders)
	assert.True(t, m.Net.IsZero())
}

func TestChannelBreakdown_RespetaRango(t *testing.T) {
	rng, err := ledger.ParseDateRange("2026-03-01", "")
	require.NoError(t, err)
	out := ledger.ChannelBreakdown(sampleBook(), rng)

	assert.Equal(t, 1, out[0].Orders)
	assert.True(t, out[0].Revenue.Equal(dec(700)))
	assert.Zero(t, out[1].Orders)
	assert.True(t, out[1].Marketing.IsZero())
}
