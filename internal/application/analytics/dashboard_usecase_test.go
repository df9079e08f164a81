package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/application/analytics"
	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
	"github.com/merchbydz/backoffice/internal/infrastructure/cache"
	"github.com/merchbydz/backoffice/internal/infrastructure/memory"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(s string) time.Time {
	t, err := time.Parse(ledger.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// seed carga el ejemplo de referencia: un pedido mayorista cobrado (margen 1300),
// un gasto puntual de 5000, un cargo de 15000 y 50000 de marketing.
func seed(t *testing.T, store *repository.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Orders.Upsert(ctx, &entity.Order{
		ID: "w-1", Channel: entity.ChannelWholesale, Date: day("2026-03-10"),
		Status: entity.StatusDeliveredCollected, Quantity: 1,
		PurchasePrice: dec(1000), PrintPrice: dec(200), SalePrice: dec(2500),
		ArticleSupplier: "Grossiste textile", PrintSupplier: "Atelier impression",
	}))
	require.NoError(t, store.Offers.Upsert(ctx, &entity.Offer{ID: "of-1", Date: day("2026-03-02"), Kind: entity.OfferExpense, Amount: dec(5000)}))
	require.NoError(t, store.Charges.Upsert(ctx, &entity.Charge{ID: "c-1", Date: day("2026-03-01"), Amount: dec(15000)}))
	require.NoError(t, store.Marketing.Upsert(ctx, &entity.MarketingSpend{ID: "m-1", Date: day("2026-03-05"), Channel: entity.ChannelMerch, Amount: dec(50000)}))
	require.NoError(t, store.SupplierPayments.Upsert(ctx, &entity.SupplierPayment{ID: "sp-1", Date: day("2026-03-12"), Category: entity.CategoryArticle, Supplier: "Grossiste textile", Amount: dec(400)}))
}

func march(t *testing.T) ledger.DateRange {
	r, err := ledger.ParseDateRange("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	return r
}

type recorder struct{ last dto.SummaryDTO }

func (r *recorder) ObserveSummary(s dto.SummaryDTO) { r.last = s }

func newDashboard(store *repository.Store, c ports.SummaryCache) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(store, analytics.DashboardConfig{
		Routing:  ledger.DefaultRouting(),
		CacheTTL: time.Minute,
	}, c, zerolog.Nop())
}

func TestDashboard_SummaryPosicionNeta(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	rec := &recorder{}
	uc := newDashboard(store, cache.NoopCache{}).WithObserver(rec)

	s, err := uc.Summary(context.Background(), march(t))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", s.Period.StartDate)
	assert.True(t, s.Recognized.Equal(dec(1300)))
	assert.True(t, s.AdHocNet.Equal(dec(-5000)))
	assert.True(t, s.NetPosition.Equal(dec(-68700)), "got %s", s.NetPosition)
	assert.False(t, s.IncludesMerch)
	assert.True(t, rec.last.NetPosition.Equal(dec(-68700)))
}

func TestDashboard_CacheInvalidadaPorEscritura(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	c := cache.NewMemoryCache()
	uc := newDashboard(store, c)
	records := usecase.NewRecords(store, ledger.DefaultRouting(), c, zerolog.Nop())
	ctx := context.Background()

	first, err := uc.Summary(ctx, march(t))
	require.NoError(t, err)

	// Escritura directa al repositorio: la caché sigue sirviendo el valor anterior.
	require.NoError(t, store.Charges.Upsert(ctx, &entity.Charge{ID: "c-2", Date: day("2026-03-20"), Amount: dec(1000)}))
	cached, err := uc.Summary(ctx, march(t))
	require.NoError(t, err)
	assert.True(t, cached.NetPosition.Equal(first.NetPosition))

	// A través del caso de uso se invalida.
	_, err = records.Orders.UpdateStatus(ctx, "w-1", string(entity.StatusReturned))
	require.NoError(t, err)
	fresh, err := uc.Summary(ctx, march(t))
	require.NoError(t, err)
	// 0 reconocido − 1200 pérdida − 5000 − 16000 − 50000
	assert.True(t, fresh.NetPosition.Equal(dec(-72200)), "got %s", fresh.NetPosition)
	assert.True(t, fresh.Loss.Equal(dec(1200)))
}

func TestDashboard_CanalesYProveedores(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	uc := newDashboard(store, cache.NoopCache{})
	ctx := context.Background()

	channels, err := uc.Channels(ctx, march(t))
	require.NoError(t, err)
	require.Len(t, channels, 3)
	assert.Equal(t, entity.ChannelWholesale, channels[0].Channel)
	assert.True(t, channels[0].Net.Equal(dec(1300)))
	assert.True(t, channels[2].Marketing.Equal(dec(50000)))
	assert.True(t, channels[2].Net.Equal(dec(-50000)))

	suppliers, err := uc.Suppliers(ctx, march(t))
	require.NoError(t, err)
	byName := map[string]dto.SupplierBalanceDTO{}
	for _, s := range suppliers {
		byName[s.Supplier] = s
	}
	assert.True(t, byName["Grossiste textile"].MustGive.Equal(dec(600)))
	assert.True(t, byName["Atelier impression"].MustGive.Equal(dec(200)))
	assert.True(t, byName["Atelier broderie"].MustGive.IsZero())
}

// gatedOrders retiene la primera lectura de pedidos, ya hecha, hasta que se cierra release.
type gatedOrders struct {
	repository.OrderRepository
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedOrders) List(ctx context.Context, f repository.RecordFilter) ([]*entity.Order, error) {
	orders, err := g.OrderRepository.List(ctx, f)
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return orders, err
}

func TestDashboard_EscrituraDuranteCalculoNoQuedaCacheada(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	gate := &gatedOrders{OrderRepository: store.Orders, entered: make(chan struct{}), release: make(chan struct{})}
	store.Orders = gate
	c := cache.NewMemoryCache()
	uc := newDashboard(store, c)
	records := usecase.NewRecords(store, ledger.DefaultRouting(), c, zerolog.Nop())
	ctx := context.Background()
	r := march(t)

	inFlight := make(chan dto.SummaryDTO, 1)
	go func() {
		s, err := uc.Summary(ctx, r)
		assert.NoError(t, err)
		inFlight <- s
	}()

	<-gate.entered
	date, channel, status := "2026-03-15", "wholesale", "delivered_collected"
	sale := dec(10000)
	_, err := records.Orders.Add(ctx, &dto.OrderInput{Date: &date, Channel: &channel, Status: &status, SalePrice: &sale})
	require.NoError(t, err)
	close(gate.release)

	// El cálculo en curso leyó los pedidos antes de la escritura.
	stale := <-inFlight
	assert.True(t, stale.NetPosition.Equal(dec(-68700)), "got %s", stale.NetPosition)

	fresh, err := uc.Summary(ctx, r)
	require.NoError(t, err)
	assert.True(t, fresh.NetPosition.Equal(dec(-58700)), "got %s", fresh.NetPosition)
}

type failingOrders struct {
	repository.OrderRepository
}

func (failingOrders) List(context.Context, repository.RecordFilter) ([]*entity.Order, error) {
	return nil, errors.New("conexión perdida")
}

func TestDashboard_FalloDeLecturaNoDevuelveParcial(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	store.Orders = failingOrders{store.Orders}
	uc := newDashboard(store, cache.NoopCache{})

	_, err := uc.Summary(context.Background(), march(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "orders")
}
