// Package inventory contiene los servicios de dominio de los movimientos de stock.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// Tipos de movimiento.
const (
	MovementIn         = "in"         // entrada de mercancía: recalcula el costo promedio
	MovementOut        = "out"        // salida (venta, muestra, merma)
	MovementAdjustment = "adjustment" // conteo físico: fija la cantidad
)

// Movement cambio de stock sobre un artículo.
type Movement struct {
	Type     string
	Quantity int
	UnitCost decimal.Decimal // solo entradas
}

// WeightedAverageCost costo promedio ponderado tras una entrada:
// ((stock * costo) + (entrada * costoEntrada)) / (stock + entrada).
func WeightedAverageCost(stockQty int, stockCost decimal.Decimal, inQty int, inCost decimal.Decimal) decimal.Decimal {
	sum := decimal.NewFromInt(int64(stockQty + inQty))
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(stockQty)).Mul(stockCost).
		Add(decimal.NewFromInt(int64(inQty)).Mul(inCost))
	return num.DivRound(sum, 2)
}

// Apply aplica m sobre item. El artículo no se modifica si el movimiento es inválido.
func Apply(item *entity.InventoryItem, m Movement) error {
	if m.Quantity < 0 {
		return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	switch m.Type {
	case MovementIn:
		if m.Quantity == 0 {
			return fmt.Errorf("%w: entrada sin cantidad", domain.ErrInvalidInput)
		}
		if m.UnitCost.IsNegative() {
			return fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
		}
		stock := max(item.Quantity, 0)
		item.UnitCost = WeightedAverageCost(stock, item.UnitCost, m.Quantity, m.UnitCost)
		item.Quantity = stock + m.Quantity
	case MovementOut:
		if m.Quantity == 0 {
			return fmt.Errorf("%w: salida sin cantidad", domain.ErrInvalidInput)
		}
		if m.Quantity > item.Quantity {
			return fmt.Errorf("%w: %s tiene %d, se piden %d", domain.ErrInsufficientStock, item.SKU, item.Quantity, m.Quantity)
		}
		item.Quantity -= m.Quantity
	case MovementAdjustment:
		item.Quantity = m.Quantity
	default:
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, m.Type)
	}
	return nil
}
