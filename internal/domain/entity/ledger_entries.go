package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
)

// Charge cargo fijo (alquiler, salarios, suscripciones...). Siempre es gasto.
type Charge struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Label    string          `json:"label"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewCharge cargo en blanco.
func NewCharge(now time.Time) *Charge { return &Charge{Date: Today(now)} }

func (c *Charge) GetID() string         { return c.ID }
func (c *Charge) SetID(id string)       { c.ID = id }
func (c *Charge) RecordDate() time.Time { return c.Date }
func (c *Charge) Validate() error       { return requireNonNegative("amount", c.Amount) }

// OfferKind indica si un movimiento puntual es ingreso o gasto.
type OfferKind string

const (
	OfferRevenue OfferKind = "revenue"
	OfferExpense OfferKind = "expense"
)

// ParseOfferKind valida el tipo de movimiento puntual.
func ParseOfferKind(s string) (OfferKind, error) {
	k := OfferKind(strings.ToLower(strings.TrimSpace(s)))
	if k == OfferRevenue || k == OfferExpense {
		return k, nil
	}
	return "", fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, s)
}

// Offer movimiento puntual de ingreso o gasto sin relación con pedidos.
type Offer struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Label  string          `json:"label"`
	Kind   OfferKind       `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// NewOffer movimiento en blanco; por defecto es un gasto.
func NewOffer(now time.Time) *Offer { return &Offer{Date: Today(now), Kind: OfferExpense} }

func (o *Offer) GetID() string         { return o.ID }
func (o *Offer) SetID(id string)       { o.ID = id }
func (o *Offer) RecordDate() time.Time { return o.Date }

func (o *Offer) Validate() error {
	if _, err := ParseOfferKind(string(o.Kind)); err != nil {
		return err
	}
	return requireNonNegative("amount", o.Amount)
}

// MarketingSpend gasto publicitario imputado a un canal.
type MarketingSpend struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Channel  Channel         `json:"channel"`
	Platform string          `json:"platform"` // meta, tiktok, influencer...
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

// NewMarketingSpend gasto en blanco imputado al merch directo.
func NewMarketingSpend(now time.Time) *MarketingSpend {
	return &MarketingSpend{Date: Today(now), Channel: ChannelMerch}
}

func (m *MarketingSpend) GetID() string          { return m.ID }
func (m *MarketingSpend) SetID(id string)        { m.ID = id }
func (m *MarketingSpend) RecordDate() time.Time  { return m.Date }
func (m *MarketingSpend) RecordChannel() Channel { return m.Channel }

func (m *MarketingSpend) Validate() error {
	if _, err := ParseChannel(string(m.Channel)); err != nil {
		return err
	}
	return requireNonNegative("amount", m.Amount)
}

// Credit crédito concedido a un cliente (importe adeudado y lo ya abonado).
type Credit struct {
	ID         string          `json:"id"`
	Date       time.Time       `json:"date"`
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
	Paid       decimal.Decimal `json:"paid"`
	Note       string          `json:"note"`
}

// NewCredit crédito en blanco.
func NewCredit(now time.Time) *Credit { return &Credit{Date: Today(now)} }

func (c *Credit) GetID() string         { return c.ID }
func (c *Credit) SetID(id string)       { c.ID = id }
func (c *Credit) RecordDate() time.Time { return c.Date }

// Outstanding saldo pendiente del crédito.
func (c *Credit) Outstanding() decimal.Decimal { return c.Amount.Sub(c.Paid) }

func (c *Credit) Validate() error {
	if err := requireNonNegative("amount", c.Amount); err != nil {
		return err
	}
	return requireNonNegative("paid", c.Paid)
}

// Payout pago realizado a un revendedor de la red.
type Payout struct {
	ID         string          `json:"id"`
	Date       time.Time       `json:"date"`
	SellerName string          `json:"seller_name"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

// NewPayout pago en blanco.
func NewPayout(now time.Time) *Payout { return &Payout{Date: Today(now)} }

func (p *Payout) GetID() string         { return p.ID }
func (p *Payout) SetID(id string)       { p.ID = id }
func (p *Payout) RecordDate() time.Time { return p.Date }
func (p *Payout) Validate() error       { return requireNonNegative("amount", p.Amount) }
