package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// SellerBalance comisiones de un revendedor frente a lo que ya se le pagó.
type SellerBalance struct {
	Seller    string
	Orders    int
	Collected int
	Earned    decimal.Decimal // comisión de pedidos retail entregados y cobrados
	Pending   decimal.Decimal // comisión de pedidos entregados sin cobrar
	Paid      decimal.Decimal
	Due       decimal.Decimal // Earned − Paid
}

// SellerBalances agrupa por revendedor (nombre sin distinguir mayúsculas), ordenado por nombre.
func SellerBalances(b *Book, r DateRange) []SellerBalance {
	idx := make(map[string]*SellerBalance)
	get := func(name string) *SellerBalance {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "—"
		}
		k := strings.ToLower(name)
		if sb, ok := idx[k]; ok {
			return sb
		}
		sb := &SellerBalance{Seller: name}
		idx[k] = sb
		return sb
	}

	for _, o := range b.Orders {
		if o.Channel != entity.ChannelRetail || !r.Contains(o.Date) {
			continue
		}
		sb := get(o.SellerName)
		sb.Orders++
		switch o.Status {
		case entity.StatusDeliveredCollected:
			sb.Collected++
			sb.Earned = sb.Earned.Add(o.Commission)
		case entity.StatusDeliveredPending:
			sb.Pending = sb.Pending.Add(o.Commission)
		}
	}
	for _, p := range b.Payouts {
		if r.Contains(p.Date) {
			sb := get(p.SellerName)
			sb.Paid = sb.Paid.Add(p.Amount)
		}
	}

	out := make([]SellerBalance, 0, len(idx))
	for _, sb := range idx {
		sb.Due = sb.Earned.Sub(sb.Paid)
		out = append(out, *sb)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Seller) < strings.ToLower(out[j].Seller) })
	return out
}

// InventoryStatus valoración del stock y artículos a reponer.
type InventoryStatus struct {
	Items    int
	Units    int
	Value    decimal.Decimal
	LowStock []*entity.InventoryItem
}

// Inventory resume el stock; un artículo está bajo mínimo cuando Quantity ≤ ReorderThreshold.
func Inventory(b *Book) InventoryStatus {
	var s InventoryStatus
	for _, it := range b.Inventory {
		s.Items++
		s.Units += it.Quantity
		s.Value = s.Value.Add(it.Value())
		if it.BelowThreshold() {
			s.LowStock = append(s.LowStock, it)
		}
	}
	sort.SliceStable(s.LowStock, func(i, j int) bool {
		return s.LowStock[i].Quantity-s.LowStock[i].ReorderThreshold <
			s.LowStock[j].Quantity-s.LowStock[j].ReorderThreshold
	})
	return s
}

// ClientCredit saldo de créditos de un cliente.
type ClientCredit struct {
	Client      string
	Amount      decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}

// CreditSummary total de créditos concedidos en el período.
type CreditSummary struct {
	Amount      decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
	Clients     []ClientCredit // ordenados por saldo pendiente descendente
}

// Credits agrupa los créditos del rango por cliente.
func Credits(b *Book, r DateRange) CreditSummary {
	var s CreditSummary
	idx := make(map[string]int)
	for _, c := range b.Credits {
		if !r.Contains(c.Date) {
			continue
		}
		name := strings.TrimSpace(c.ClientName)
		i, ok := idx[strings.ToLower(name)]
		if !ok {
			i = len(s.Clients)
			idx[strings.ToLower(name)] = i
			s.Clients = append(s.Clients, ClientCredit{Client: name})
		}
		cc := &s.Clients[i]
		cc.Amount = cc.Amount.Add(c.Amount)
		cc.Paid = cc.Paid.Add(c.Paid)
		cc.Outstanding = cc.Outstanding.Add(c.Outstanding())
		s.Amount = s.Amount.Add(c.Amount)
		s.Paid = s.Paid.Add(c.Paid)
	}
	s.Outstanding = s.Amount.Sub(s.Paid)
	sort.SliceStable(s.Clients, func(i, j int) bool {
		return s.Clients[i].Outstanding.GreaterThan(s.Clients[j].Outstanding)
	})
	return s
}
