package dto

import "github.com/shopspring/decimal"

// MovementRequest cuerpo de POST /api/inventory/:id/movements.
// En "adjustment" Quantity es la cantidad contada, no una diferencia.
type MovementRequest struct {
	Type     string           `json:"type" validate:"required,oneof=in out adjustment"`
	Quantity int              `json:"quantity" validate:"gte=0"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// MovementResponse artículo tras el movimiento.
type MovementResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Type             string          `json:"type"`
	PreviousQuantity int             `json:"previous_quantity"`
	Quantity         int             `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	StockValue       decimal.Decimal `json:"stock_value"`
	BelowThreshold   bool            `json:"below_threshold"`
}
