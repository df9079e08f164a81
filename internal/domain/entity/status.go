package entity

import (
	"fmt"
	"strings"

	"github.com/merchbydz/backoffice/internal/domain"
)

// OrderStatus etiqueta de estado de un pedido. Es la única señal que decide
// cómo cuenta el pedido en los KPIs; no se guarda historial de transiciones.
type OrderStatus string

const (
	StatusInProduction       OrderStatus = "in_production"
	StatusConfirmed          OrderStatus = "confirmed" // solo red de revendedores
	StatusInDelivery         OrderStatus = "in_delivery"
	StatusDeliveredPending   OrderStatus = "delivered_pending"   // entregado, cobro pendiente
	StatusDeliveredCollected OrderStatus = "delivered_collected" // entregado y cobrado
	StatusReturned           OrderStatus = "returned"
)

// AllStatuses unión de los estados de todos los canales.
var AllStatuses = []OrderStatus{
	StatusInProduction,
	StatusConfirmed,
	StatusInDelivery,
	StatusDeliveredPending,
	StatusDeliveredCollected,
	StatusReturned,
}

// ParseOrderStatus valida un estado recibido como texto (sin considerar el canal).
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
}

// IsDelivered verdadero para los estados "entregado" (cobrado o no).
func (s OrderStatus) IsDelivered() bool {
	return s == StatusDeliveredPending || s == StatusDeliveredCollected
}
