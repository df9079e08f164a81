package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// Options ajustes de la agregación global.
type Options struct {
	// IncludeMerch suma también los pedidos de merch directo en los buckets globales.
	// Por defecto solo cuentan mayorista y red de revendedores.
	IncludeMerch bool
}

// Totals KPIs consolidados de un período.
type Totals struct {
	Orders       int
	Recognized   decimal.Decimal
	Expected     decimal.Decimal
	Loss         decimal.Decimal
	Potential    decimal.Decimal // informativo, fuera de la posición neta
	AdHocRevenue decimal.Decimal
	AdHocExpense decimal.Decimal
	AdHocNet     decimal.Decimal
	Charges      decimal.Decimal
	Marketing    decimal.Decimal
	NetPosition  decimal.Decimal
}

// NetPosition cascada de caja: reconocido + esperado + neto puntual − pérdidas − cargos − marketing.
func NetPosition(recognized, expected, adHocNet, loss, charges, marketing decimal.Decimal) decimal.Decimal {
	return recognized.Add(expected).Add(adHocNet).Sub(loss).Sub(charges).Sub(marketing)
}

// Aggregate recorre una vez cada colección filtrada por rango y suma los campos derivados.
func Aggregate(b *Book, r DateRange, opts Options) Totals {
	var t Totals

	for _, o := range b.Orders {
		if !countsInTotals(o.Channel, opts) || !r.Contains(o.Date) {
			continue
		}
		d := Derive(o)
		t.Orders++
		t.Recognized = t.Recognized.Add(d.RecognizedProfit)
		t.Expected = t.Expected.Add(d.ExpectedProfit)
		t.Loss = t.Loss.Add(d.Loss)
		t.Potential = t.Potential.Add(d.PotentialProfit)
	}

	for _, of := range b.Offers {
		if !r.Contains(of.Date) {
			continue
		}
		switch of.Kind {
		case entity.OfferRevenue:
			t.AdHocRevenue = t.AdHocRevenue.Add(of.Amount)
		case entity.OfferExpense:
			t.AdHocExpense = t.AdHocExpense.Add(of.Amount)
		}
	}
	t.AdHocNet = t.AdHocRevenue.Sub(t.AdHocExpense)

	for _, c := range b.Charges {
		if r.Contains(c.Date) {
			t.Charges = t.Charges.Add(c.Amount)
		}
	}
	for _, m := range b.Marketing {
		if r.Contains(m.Date) {
			t.Marketing = t.Marketing.Add(m.Amount)
		}
	}

	t.NetPosition = NetPosition(t.Recognized, t.Expected, t.AdHocNet, t.Loss, t.Charges, t.Marketing)
	return t
}

func countsInTotals(c entity.Channel, opts Options) bool {
	switch c {
	case entity.ChannelWholesale, entity.ChannelRetail:
		return true
	case entity.ChannelMerch:
		return opts.IncludeMerch
	}
	return false
}
