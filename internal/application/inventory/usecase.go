// Package inventory registra entradas, salidas y ajustes de stock con costo promedio ponderado.
package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/inventory"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// MovementUseCase aplica movimientos sobre los artículos de inventario dentro de una
// transacción. mu serializa las lecturas-escrituras del mismo proceso: el Store en
// memoria no tiene transacciones reales.
type MovementUseCase struct {
	tx    ports.TxRunner
	cache ports.SummaryCache
	log   zerolog.Logger
	now   func() time.Time
	mu    sync.Mutex
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(tx ports.TxRunner, cache ports.SummaryCache, log zerolog.Logger) *MovementUseCase {
	return &MovementUseCase{
		tx:    tx,
		cache: cache,
		log:   log.With().Str("collection", "inventory").Logger(),
		now:   time.Now,
	}
}

// Register aplica req al artículo id. Una salida mayor que el stock devuelve
// domain.ErrInsufficientStock y no escribe nada.
func (uc *MovementUseCase) Register(ctx context.Context, id string, req dto.MovementRequest) (*dto.MovementResponse, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	m := inventory.Movement{Type: req.Type, Quantity: req.Quantity}
	if req.Type == inventory.MovementIn {
		if req.UnitCost == nil {
			return nil, fmt.Errorf("%w: unit_cost es obligatorio en entradas", domain.ErrInvalidInput)
		}
		m.UnitCost = *req.UnitCost
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var (
		item *entity.InventoryItem
		prev int
	)
	err := uc.tx.Run(ctx, func(s *repository.Store) error {
		var err error
		item, err = s.Inventory.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("inventory %s: %w", id, domain.ErrNotFound)
		}
		prev = item.Quantity
		if err := inventory.Apply(item, m); err != nil {
			return err
		}
		item.Touch(uc.now())
		if err := item.Validate(); err != nil {
			return err
		}
		return s.Inventory.Upsert(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("invalidar caché")
		}
	}

	uc.log.Info().Str("id", id).Str("type", m.Type).
		Int("from", prev).Int("to", item.Quantity).Str("unit_cost", item.UnitCost.StringFixed(2)).
		Msg("movimiento de stock")

	return &dto.MovementResponse{
		ID:               item.ID,
		SKU:              item.SKU,
		Type:             m.Type,
		PreviousQuantity: prev,
		Quantity:         item.Quantity,
		UnitCost:         item.UnitCost,
		StockValue:       item.Value().Round(2),
		BelowThreshold:   item.BelowThreshold(),
	}, nil
}
