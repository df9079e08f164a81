package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
)

// InventoryItem artículo en stock. No se descuenta automáticamente con las ventas.
type InventoryItem struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewInventoryItem artículo en blanco.
func NewInventoryItem(now time.Time) *InventoryItem { return &InventoryItem{UpdatedAt: now} }

func (i *InventoryItem) GetID() string   { return i.ID }
func (i *InventoryItem) SetID(id string) { i.ID = id }

// RecordDate el inventario no se filtra por fecha.
func (i *InventoryItem) RecordDate() time.Time { return time.Time{} }

// Value valor del stock a costo unitario.
func (i *InventoryItem) Value() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// BelowThreshold verdadero cuando hay que reponer.
func (i *InventoryItem) BelowThreshold() bool { return i.Quantity <= i.ReorderThreshold }

func (i *InventoryItem) Validate() error {
	if i.Quantity < 0 || i.ReorderThreshold < 0 {
		return fmt.Errorf("%w: cantidades de stock no pueden ser negativas", domain.ErrInvalidInput)
	}
	return requireNonNegative("unit_cost", i.UnitCost)
}

func (i *InventoryItem) Touch(now time.Time) { i.UpdatedAt = now }
