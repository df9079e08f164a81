package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
	"github.com/merchbydz/backoffice/internal/infrastructure/memory"
)

// spyCache cuenta las invalidaciones.
type spyCache struct{ invalidations int }

func (s *spyCache) Generation(context.Context) (int64, error)                    { return 0, nil }
func (s *spyCache) Get(context.Context, int64, string, any) (bool, error)        { return false, nil }
func (s *spyCache) Set(context.Context, int64, string, any, time.Duration) error { return nil }
func (s *spyCache) Invalidate(context.Context) error {
	s.invalidations++
	return nil
}

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newRecords(t *testing.T) (*usecase.Records, *spyCache) {
	t.Helper()
	cache := &spyCache{}
	return usecase.NewRecords(memory.NewStore(), ledger.DefaultRouting(), cache, zerolog.Nop()), cache
}

func TestOrders_AddConValoresPorDefecto(t *testing.T) {
	recs, cache := newRecords(t)
	ctx := context.Background()

	o, err := recs.Orders.Add(ctx, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, entity.ChannelWholesale, o.Channel)
	assert.Equal(t, entity.StatusInProduction, o.Status)
	assert.Equal(t, 1, o.Quantity)
	assert.True(t, o.SalePrice.IsZero())
	assert.Equal(t, 1, cache.invalidations)
}

func TestOrders_AddConCuerpo(t *testing.T) {
	recs, _ := newRecords(t)
	ctx := context.Background()

	o, err := recs.Orders.Add(ctx, &dto.OrderInput{
		Channel:    strPtr("retail"),
		Date:       strPtr("2026-03-10"),
		SellerName: strPtr(" Amine "),
		SalePrice:  decPtr(2500),
		Commission: decPtr(300),
	})
	require.NoError(t, err)

	got, err := recs.Orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ChannelRetail, got.Channel)
	assert.Equal(t, "Amine", got.SellerName)
	assert.Equal(t, "2026-03-10", got.Date.Format(ledger.DateLayout))
	assert.True(t, got.Commission.Equal(decimal.NewFromInt(300)))
}

func TestOrders_AddRechazaComisionFueraDeRetail(t *testing.T) {
	recs, cache := newRecords(t)

	_, err := recs.Orders.Add(context.Background(), &dto.OrderInput{Commission: decPtr(100)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, cache.invalidations)
}

func TestOrders_AddRechazaMontoNegativo(t *testing.T) {
	recs, _ := newRecords(t)

	_, err := recs.Orders.Add(context.Background(), &dto.OrderInput{SalePrice: decPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrders_SaveEsUpsert(t *testing.T) {
	recs, _ := newRecords(t)
	ctx := context.Background()

	o, created, err := recs.Orders.Save(ctx, "ext-1", &dto.OrderInput{Product: strPtr("Hoodie")})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ext-1", o.ID)

	o, created, err = recs.Orders.Save(ctx, "ext-1", &dto.OrderInput{SalePrice: decPtr(4000)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Hoodie", o.Product, "los campos ausentes no se tocan")
	assert.True(t, o.SalePrice.Equal(decimal.NewFromInt(4000)))
}

func TestOrders_CambioDeCanalReiniciaEstadoInvalido(t *testing.T) {
	recs, _ := newRecords(t)
	ctx := context.Background()

	o, err := recs.Orders.Add(ctx, &dto.OrderInput{Channel: strPtr("retail"), Status: strPtr("confirmed")})
	require.NoError(t, err)

	o, _, err = recs.Orders.Save(ctx, o.ID, &dto.OrderInput{Channel: strPtr("merch")})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProduction, o.Status)
}

func TestOrders_UpdateStatus(t *testing.T) {
	recs, cache := newRecords(t)
	ctx := context.Background()
	o, err := recs.Orders.Add(ctx, nil)
	require.NoError(t, err)

	got, err := recs.Orders.UpdateStatus(ctx, o.ID, "delivered_collected")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDeliveredCollected, got.Status)
	assert.Equal(t, 2, cache.invalidations)

	_, err = recs.Orders.UpdateStatus(ctx, o.ID, "confirmed")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "confirmed solo existe en retail")

	_, err = recs.Orders.UpdateStatus(ctx, o.ID, "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = recs.Orders.UpdateStatus(ctx, "nope", "returned")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecords_DeleteYNotFound(t *testing.T) {
	recs, _ := newRecords(t)
	ctx := context.Background()
	c, err := recs.Charges.Add(ctx, &dto.ChargeInput{Label: strPtr("Loyer"), Amount: decPtr(15000)})
	require.NoError(t, err)

	require.NoError(t, recs.Charges.Delete(ctx, c.ID))
	_, err = recs.Charges.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, recs.Charges.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestRecords_ListPorRangoYCanal(t *testing.T) {
	recs, _ := newRecords(t)
	ctx := context.Background()
	for _, in := range []*dto.MarketingInput{
		{Date: strPtr("2026-03-01"), Channel: strPtr("merch"), Amount: decPtr(100)},
		{Date: strPtr("2026-03-15"), Channel: strPtr("retail"), Amount: decPtr(200)},
		{Date: strPtr("2026-04-01"), Channel: strPtr("merch"), Amount: decPtr(300)},
	} {
		_, err := recs.Marketing.Add(ctx, in)
		require.NoError(t, err)
	}

	rng, err := ledger.ParseDateRange("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	got, err := recs.Marketing.List(ctx, repository.RecordFilter{Range: rng, Channel: entity.ChannelMerch})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestSupplierPayments_ProveedorSigueALaCategoria(t *testing.T) {
	recs, _ := newRecords(t)
	ctx := context.Background()

	p, err := recs.SupplierPayments.Add(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryArticle, p.Category)
	assert.Equal(t, "Grossiste textile", p.Supplier, "alta con la primera opción de la categoría")

	p, _, err = recs.SupplierPayments.Save(ctx, p.ID, &dto.SupplierPaymentInput{Category: strPtr("print")})
	require.NoError(t, err)
	assert.Equal(t, "Atelier impression", p.Supplier, "cambio de categoría reinicia el proveedor")

	p, _, err = recs.SupplierPayments.Save(ctx, p.ID, &dto.SupplierPaymentInput{Supplier: strPtr("Atelier broderie")})
	require.NoError(t, err)
	assert.Equal(t, "Atelier broderie", p.Supplier)

	p, _, err = recs.SupplierPayments.Save(ctx, p.ID, &dto.SupplierPaymentInput{Supplier: strPtr("Inconnu")})
	require.NoError(t, err)
	assert.Equal(t, "Atelier impression", p.Supplier, "proveedor fuera de la tabla vuelve a la primera opción")
}

func TestSupplierPayments_CambioDeCategoriaConProveedorCompartido(t *testing.T) {
	routing, err := ledger.NewRouting(
		[]string{"Atelier polyvalent", "Grossiste textile"},
		[]string{"Atelier impression", "Atelier polyvalent"},
	)
	require.NoError(t, err)
	uc := usecase.NewSupplierPaymentUseCase(memory.NewStore().SupplierPayments, routing, nil, zerolog.Nop())
	ctx := context.Background()

	p, err := uc.Add(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Atelier polyvalent", p.Supplier)

	// Elegible en ambas categorías, pero el cambio de categoría la reinicia igual.
	p, _, err = uc.Save(ctx, p.ID, &dto.SupplierPaymentInput{Category: strPtr("print")})
	require.NoError(t, err)
	assert.Equal(t, "Atelier impression", p.Supplier)

	// Categoría y proveedor en la misma edición: se respeta el proveedor elegido.
	p, _, err = uc.Save(ctx, p.ID, &dto.SupplierPaymentInput{Category: strPtr("article"), Supplier: strPtr("Grossiste textile")})
	require.NoError(t, err)
	assert.Equal(t, "Grossiste textile", p.Supplier)

	// Reenviar la misma categoría no toca el proveedor.
	p, _, err = uc.Save(ctx, p.ID, &dto.SupplierPaymentInput{Category: strPtr("article")})
	require.NoError(t, err)
	assert.Equal(t, "Grossiste textile", p.Supplier)
}

func TestInventory_TouchActualizaFecha(t *testing.T) {
	recs, _ := newRecords(t)
	ctx := context.Background()

	it, err := recs.Inventory.Add(ctx, &dto.InventoryInput{SKU: strPtr("TS-BLK-M"), Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.False(t, it.UpdatedAt.IsZero())
}

func intPtr(v int) *int { return &v }
