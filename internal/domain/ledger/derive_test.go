package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(s string) time.Time {
	t, err := time.Parse(ledger.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func wholesale(status entity.OrderStatus) *entity.Order {
	return &entity.Order{
		ID:            "w-1",
		Channel:       entity.ChannelWholesale,
		Date:          day("2026-03-10"),
		PurchasePrice: dec(1000),
		PrintPrice:    dec(200),
		SalePrice:     dec(2500),
		Status:        status,
	}
}

func TestDerive_EntregadoYCobrado(t *testing.T) {
	d := ledger.Derive(wholesale(entity.StatusDeliveredCollected))

	assert.True(t, d.Cost.Equal(dec(1200)))
	assert.True(t, d.RecognizedProfit.Equal(dec(1300)))
	assert.True(t, d.ExpectedProfit.IsZero())
	assert.True(t, d.Loss.IsZero())
	assert.Equal(t, ledger.BucketRecognized, d.Bucket)
}

func TestDerive_Devuelto(t *testing.T) {
	d := ledger.Derive(wholesale(entity.StatusReturned))

	assert.True(t, d.Loss.Equal(dec(1200)), "la pérdida es el costo completo, sin el precio de venta")
	assert.True(t, d.RecognizedProfit.IsZero())
	assert.True(t, d.ExpectedProfit.IsZero())
}

func TestDerive_EntregadoSinCobrar(t *testing.T) {
	d := ledger.Derive(wholesale(entity.StatusDeliveredPending))

	assert.True(t, d.ExpectedProfit.Equal(dec(1300)))
	assert.True(t, d.RecognizedProfit.IsZero())
	assert.True(t, d.Loss.IsZero())
}

func TestDerive_EnRepartoSoloPotencial(t *testing.T) {
	d := ledger.Derive(wholesale(entity.StatusInDelivery))

	assert.Equal(t, ledger.BucketNone, d.Bucket)
	assert.True(t, d.PotentialProfit.Equal(dec(1300)))
	assert.True(t, d.RecognizedProfit.IsZero())
	assert.True(t, d.ExpectedProfit.IsZero())
	assert.True(t, d.Loss.IsZero())
}

func TestDerive_ImpresionAusente(t *testing.T) {
	o := wholesale(entity.StatusDeliveredCollected)
	o.PrintPrice = decimal.Zero
	d := ledger.Derive(o)

	assert.True(t, d.Cost.Equal(dec(1000)))
	assert.True(t, d.RecognizedProfit.Equal(dec(1500)))
}

func TestBucketOf_TodosLosEstadosClasificados(t *testing.T) {
	for _, s := range entity.AllStatuses {
		_, ok := ledger.BucketOf(s)
		assert.True(t, ok, "estado %q sin clasificar", s)
	}
	_, ok := ledger.BucketOf("lost_in_space")
	assert.False(t, ok)
}

// Para cualquier estado, como mucho un bucket es distinto de cero y el costo no depende del estado.
func TestDerive_ExclusividadDeBuckets(t *testing.T) {
	for _, ch := range entity.Channels {
		for _, s := range ch.Statuses() {
			o := wholesale(s)
			o.Channel = ch
			d := ledger.Derive(o)

			nonZero := 0
			for _, v := range []decimal.Decimal{d.RecognizedProfit, d.ExpectedProfit, d.Loss} {
				if !v.IsZero() {
					nonZero++
				}
			}
			require.LessOrEqual(t, nonZero, 1, "canal %s estado %s", ch, s)
			assert.True(t, d.Cost.Equal(o.PurchasePrice.Add(o.PrintPrice)), "canal %s estado %s", ch, s)
		}
	}
}
