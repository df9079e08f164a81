package ledger

import "github.com/merchbydz/backoffice/internal/domain/entity"

// Book contenedor explícito del estado de la aplicación: una instantánea de todas
// las colecciones sobre la que se recalculan los KPIs.
type Book struct {
	Orders           []*entity.Order
	Charges          []*entity.Charge
	Offers           []*entity.Offer
	Marketing        []*entity.MarketingSpend
	Inventory        []*entity.InventoryItem
	Credits          []*entity.Credit
	Payouts          []*entity.Payout
	SupplierPayments []*entity.SupplierPayment
}

// OrdersIn pedidos del rango, opcionalmente restringidos a un canal ("" = todos).
func (b *Book) OrdersIn(r DateRange, channel entity.Channel) []*entity.Order {
	var out []*entity.Order
	for _, o := range b.Orders {
		if channel != "" && o.Channel != channel {
			continue
		}
		if r.Contains(o.Date) {
			out = append(out, o)
		}
	}
	return out
}
