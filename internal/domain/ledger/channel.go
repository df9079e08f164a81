package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// ChannelProfit contribución neta de un pilar de venta en el período.
type ChannelProfit struct {
	Channel    entity.Channel
	Orders     int
	Delivered  int
	Returned   int
	Revenue    decimal.Decimal // precio de venta de pedidos entregados (cobrados o no)
	Production decimal.Decimal // costo de producción de esos mismos pedidos
	Commission decimal.Decimal // solo red de revendedores
	Returns    decimal.Decimal // pérdida por devoluciones
	Marketing  decimal.Decimal // gasto publicitario etiquetado con el canal
	Net        decimal.Decimal
	Receivable decimal.Decimal // venta entregada pendiente de cobro
	Potential  decimal.Decimal // margen de pedidos en reparto
}

// ChannelBreakdown calcula la rentabilidad de cada canal, en el orden de entity.Channels.
func ChannelBreakdown(b *Book, r DateRange) []ChannelProfit {
	idx := make(map[entity.Channel]*ChannelProfit, len(entity.Channels))
	out := make([]ChannelProfit, len(entity.Channels))
	for i, c := range entity.Channels {
		out[i].Channel = c
		idx[c] = &out[i]
	}

	for _, o := range b.Orders {
		cp, ok := idx[o.Channel]
		if !ok || !r.Contains(o.Date) {
			continue
		}
		d := Derive(o)
		cp.Orders++
		cp.Potential = cp.Potential.Add(d.PotentialProfit)
		if o.Status.IsDelivered() {
			cp.Delivered++
			cp.Revenue = cp.Revenue.Add(o.SalePrice)
			cp.Production = cp.Production.Add(d.Cost)
			if o.Channel == entity.ChannelRetail {
				cp.Commission = cp.Commission.Add(o.Commission)
			}
			if o.Status == entity.StatusDeliveredPending {
				cp.Receivable = cp.Receivable.Add(o.SalePrice)
			}
		}
		if d.Bucket == BucketLoss {
			cp.Returned++
			cp.Returns = cp.Returns.Add(d.Loss)
		}
	}

	for _, m := range b.Marketing {
		if cp, ok := idx[m.Channel]; ok && r.Contains(m.Date) {
			cp.Marketing = cp.Marketing.Add(m.Amount)
		}
	}

	for i := range out {
		cp := &out[i]
		cp.Net = cp.Revenue.Sub(cp.Production).Sub(cp.Commission).Sub(cp.Returns).Sub(cp.Marketing)
	}
	return out
}
