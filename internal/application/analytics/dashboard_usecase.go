// Package analytics contiene los casos de uso del tablero financiero: carga el libro,
// aplica las funciones de ledger y cachea los resúmenes por rango.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// SummaryObserver recibe cada resumen recalculado (métricas).
type SummaryObserver interface {
	ObserveSummary(s dto.SummaryDTO)
}

// DashboardUseCase genera los KPIs del libro para un rango de fechas.
//
// Fuente de datos: el Store completo. Las colecciones se leen en paralelo y el
// cálculo se hace en una sola pasada secuencial sobre la instantánea (ledger.Book).
type DashboardUseCase struct {
	store    *repository.Store
	routing  ledger.Routing
	opts     ledger.Options
	cache    ports.SummaryCache
	ttl      time.Duration
	observer SummaryObserver
	log      zerolog.Logger
}

// DashboardConfig parámetros del tablero.
type DashboardConfig struct {
	Routing  ledger.Routing
	Options  ledger.Options
	CacheTTL time.Duration
}

// NewDashboardUseCase construye el caso de uso. cache puede ser cache.NoopCache.
func NewDashboardUseCase(store *repository.Store, cfg DashboardConfig, cache ports.SummaryCache, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		store:   store,
		routing: cfg.Routing,
		opts:    cfg.Options,
		cache:   cache,
		ttl:     cfg.CacheTTL,
		log:     log.With().Str("component", "dashboard").Logger(),
	}
}

// WithObserver registra un observador de resúmenes.
func (uc *DashboardUseCase) WithObserver(o SummaryObserver) *DashboardUseCase {
	uc.observer = o
	return uc
}

// Routing tabla de proveedores vigente.
func (uc *DashboardUseCase) Routing() ledger.Routing { return uc.routing }

// LoadBook lee las colecciones del rango. Los artículos de inventario no tienen fecha
// y se cargan siempre completos. Si alguna lectura falla no se devuelve libro parcial.
func (uc *DashboardUseCase) LoadBook(ctx context.Context, r ledger.DateRange) (*ledger.Book, error) {
	f := repository.RecordFilter{Range: r}
	b := &ledger.Book{}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	load := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("dashboard: leer %s: %w", name, err)
				}
				mu.Unlock()
			}
		}()
	}

	load("orders", func() (err error) { b.Orders, err = uc.store.Orders.List(ctx, f); return })
	load("charges", func() (err error) { b.Charges, err = uc.store.Charges.List(ctx, f); return })
	load("offers", func() (err error) { b.Offers, err = uc.store.Offers.List(ctx, f); return })
	load("marketing", func() (err error) { b.Marketing, err = uc.store.Marketing.List(ctx, f); return })
	load("inventory", func() (err error) { b.Inventory, err = uc.store.Inventory.List(ctx, f); return })
	load("credits", func() (err error) { b.Credits, err = uc.store.Credits.List(ctx, f); return })
	load("payouts", func() (err error) { b.Payouts, err = uc.store.Payouts.List(ctx, f); return })
	load("supplier-payments", func() (err error) {
		b.SupplierPayments, err = uc.store.SupplierPayments.List(ctx, f)
		return
	})
	wg.Wait()

	if firstErr != nil {
		uc.log.Error().Err(firstErr).Str("range", r.Key()).Msg("cargar libro")
		return nil, firstErr
	}
	return b, nil
}

// Summary cascada de caja hasta la posición neta.
func (uc *DashboardUseCase) Summary(ctx context.Context, r ledger.DateRange) (dto.SummaryDTO, error) {
	return cached(ctx, uc, "summary", r, func(b *ledger.Book) dto.SummaryDTO {
		s := dto.NewSummaryDTO(r, ledger.Aggregate(b, r, uc.opts), uc.opts.IncludeMerch)
		if uc.observer != nil {
			uc.observer.ObserveSummary(s)
		}
		return s
	})
}

// Channels rentabilidad por canal.
func (uc *DashboardUseCase) Channels(ctx context.Context, r ledger.DateRange) ([]dto.ChannelProfitDTO, error) {
	return cached(ctx, uc, "channels", r, func(b *ledger.Book) []dto.ChannelProfitDTO {
		return dto.NewChannelProfitDTOs(ledger.ChannelBreakdown(b, r))
	})
}

// Suppliers saldo a entregar por proveedor.
func (uc *DashboardUseCase) Suppliers(ctx context.Context, r ledger.DateRange) ([]dto.SupplierBalanceDTO, error) {
	return cached(ctx, uc, "suppliers", r, func(b *ledger.Book) []dto.SupplierBalanceDTO {
		return dto.NewSupplierBalanceDTOs(ledger.SupplierBalances(b, r, uc.routing))
	})
}

// Sellers comisiones por revendedor.
func (uc *DashboardUseCase) Sellers(ctx context.Context, r ledger.DateRange) ([]dto.SellerBalanceDTO, error) {
	return cached(ctx, uc, "sellers", r, func(b *ledger.Book) []dto.SellerBalanceDTO {
		return dto.NewSellerBalanceDTOs(ledger.SellerBalances(b, r))
	})
}

// Inventory valoración de stock (independiente del rango).
func (uc *DashboardUseCase) Inventory(ctx context.Context) (dto.InventoryStatusDTO, error) {
	return cached(ctx, uc, "inventory", ledger.Unbounded(), func(b *ledger.Book) dto.InventoryStatusDTO {
		return dto.NewInventoryStatusDTO(ledger.Inventory(b))
	})
}

// Credits créditos de clientes del rango.
func (uc *DashboardUseCase) Credits(ctx context.Context, r ledger.DateRange) (dto.CreditSummaryDTO, error) {
	return cached(ctx, uc, "credits", r, func(b *ledger.Book) dto.CreditSummaryDTO {
		return dto.NewCreditSummaryDTO(ledger.Credits(b, r))
	})
}

// cached busca kind+rango en la caché; si no está, carga el libro, calcula y guarda.
// La generación se lee antes de cargar: si una escritura invalida la caché durante el
// cálculo, el resultado se devuelve pero no se guarda. Los fallos de la caché se
// registran y se ignoran.
func cached[V any](ctx context.Context, uc *DashboardUseCase, kind string, r ledger.DateRange, compute func(b *ledger.Book) V) (V, error) {
	key := kind + ":" + r.Key()
	var out V
	useCache := uc.cache != nil
	var gen int64
	if useCache {
		var err error
		if gen, err = uc.cache.Generation(ctx); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("leer generación de caché")
			useCache = false
		}
	}
	if useCache {
		hit, err := uc.cache.Get(ctx, gen, key, &out)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("leer caché")
		} else if hit {
			return out, nil
		}
	}

	b, err := uc.LoadBook(ctx, r)
	if err != nil {
		return out, err
	}
	out = compute(b)

	if useCache {
		if err := uc.cache.Set(ctx, gen, key, out, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("guardar caché")
		}
	}
	return out, nil
}
