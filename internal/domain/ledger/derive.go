// Package ledger contiene las fórmulas financieras del back-office: derivación por pedido,
// agregación por rango de fechas, rentabilidad por canal y saldos con proveedores.
// Todas las funciones son puras y operan sobre datos ya cargados en memoria.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// Bucket indica en qué KPI cuenta un pedido según su estado.
type Bucket int

const (
	BucketNone       Bucket = iota // informativo: no suma en ningún KPI
	BucketExpected                 // entregado sin cobrar → beneficio esperado
	BucketRecognized               // entregado y cobrado → beneficio reconocido
	BucketLoss                     // devuelto → pérdida del costo completo
)

func (b Bucket) String() string {
	switch b {
	case BucketExpected:
		return "expected"
	case BucketRecognized:
		return "recognized"
	case BucketLoss:
		return "loss"
	}
	return "none"
}

// BucketOf clasifica un estado. ok es falso si el estado no está contemplado:
// todo estado nuevo de entity.AllStatuses debe añadirse aquí.
func BucketOf(s entity.OrderStatus) (b Bucket, ok bool) {
	switch s {
	case entity.StatusInProduction, entity.StatusConfirmed, entity.StatusInDelivery:
		return BucketNone, true
	case entity.StatusDeliveredPending:
		return BucketExpected, true
	case entity.StatusDeliveredCollected:
		return BucketRecognized, true
	case entity.StatusReturned:
		return BucketLoss, true
	}
	return BucketNone, false
}

// Derived pedido aumentado con sus campos calculados.
type Derived struct {
	Bucket           Bucket
	Cost             decimal.Decimal // compra + impresión, para cualquier estado
	RecognizedProfit decimal.Decimal
	ExpectedProfit   decimal.Decimal
	Loss             decimal.Decimal // costo completo; el precio de venta no se recupera
	// PotentialProfit margen aún no realizado de un pedido en reparto. No entra en la posición neta.
	PotentialProfit decimal.Decimal
}

// Derive calcula los campos derivados de un pedido. Como mucho uno de
// RecognizedProfit, ExpectedProfit y Loss es distinto de cero.
func Derive(o *entity.Order) Derived {
	cost := o.Cost()
	margin := o.SalePrice.Sub(cost)
	d := Derived{Cost: cost}
	d.Bucket, _ = BucketOf(o.Status)

	switch d.Bucket {
	case BucketRecognized:
		d.RecognizedProfit = margin
	case BucketExpected:
		d.ExpectedProfit = margin
	case BucketLoss:
		d.Loss = cost
	case BucketNone:
		if o.Status == entity.StatusInDelivery {
			d.PotentialProfit = margin
		}
	}
	return d
}
