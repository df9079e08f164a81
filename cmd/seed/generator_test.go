package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/application/importer"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
	"github.com/merchbydz/backoffice/internal/infrastructure/cache"
	"github.com/merchbydz/backoffice/internal/infrastructure/memory"
)

func TestGenerator_CreatesValidRecords(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	routing := ledger.DefaultRouting()
	records := usecase.NewRecords(store, routing, cache.NoopCache{}, zerolog.Nop())
	until := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	counts, err := newGenerator(records, routing, Options{Orders: 40, Days: 60, Until: until, Seed: 42}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, counts["orders"])
	assert.Equal(t, 12, counts["inventory"])

	orders, err := store.Orders.List(ctx, repository.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 40)

	window, err := ledger.ParseDateRange("2026-01-31", "2026-03-31")
	require.NoError(t, err)
	for _, o := range orders {
		assert.True(t, o.Channel.Allows(o.Status), "%s: %s", o.Channel, o.Status)
		assert.True(t, window.Contains(o.Date), o.Date.String())
		assert.True(t, o.SalePrice.GreaterThan(o.Cost()))
		if o.Channel != entity.ChannelRetail {
			assert.Empty(t, o.SellerName)
		}
	}

	payments, err := store.SupplierPayments.List(ctx, repository.RecordFilter{})
	require.NoError(t, err)
	for _, p := range payments {
		assert.Contains(t, routing.Eligible(p.Category), p.Supplier)
	}
}

func TestGenerator_SameSeedSameData(t *testing.T) {
	gen := func() []string {
		store := memory.NewStore()
		routing := ledger.DefaultRouting()
		records := usecase.NewRecords(store, routing, cache.NoopCache{}, zerolog.Nop())
		_, err := newGenerator(records, routing, Options{Orders: 5, Until: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), Seed: 7}).Run(context.Background())
		require.NoError(t, err)
		orders, err := store.Orders.List(context.Background(), repository.RecordFilter{})
		require.NoError(t, err)
		lines := make([]string, 0, len(orders))
		for _, o := range orders {
			lines = append(lines, o.Reference+" "+o.Date.Format(ledger.DateLayout)+" "+o.SalePrice.String())
		}
		sort.Strings(lines)
		return lines
	}
	assert.Equal(t, gen(), gen())
}

func TestWriteCSVs(t *testing.T) {
	store := memory.NewStore()
	routing := ledger.DefaultRouting()
	records := usecase.NewRecords(store, routing, cache.NoopCache{}, zerolog.Nop())
	_, err := newGenerator(records, routing, Options{Orders: 3, Seed: 1}).Run(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, writeCSVs(context.Background(), importer.NewCSVExporter(importer.NewCatalog(records)), dir))

	data, err := os.ReadFile(filepath.Join(dir, "orders.csv"))
	require.NoError(t, err)
	assert.Equal(t, 4, bytes.Count(data, []byte("\n")), "cabecera + 3 pedidos")
}
