package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
)

// Order pedido de cualquiera de los tres canales.
// PurchasePrice, PrintPrice, SalePrice y Commission son totales del pedido, no unitarios.
type Order struct {
	ID              string          `json:"id"`
	Channel         Channel         `json:"channel"`
	Reference       string          `json:"reference"`
	Date            time.Time       `json:"date"`
	ClientName      string          `json:"client_name"`
	SellerName      string          `json:"seller_name"` // revendedor (solo canal retail)
	Product         string          `json:"product"`
	Quantity        int             `json:"quantity"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"` // costo del artículo
	PrintPrice      decimal.Decimal `json:"print_price"`    // costo de impresión, puede ser 0
	SalePrice       decimal.Decimal `json:"sale_price"`
	Commission      decimal.Decimal `json:"commission"` // comisión del revendedor (solo retail)
	Status          OrderStatus     `json:"status"`
	ArticleSupplier string          `json:"article_supplier"`
	PrintSupplier   string          `json:"print_supplier"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewOrder pedido en blanco para la acción "añadir".
func NewOrder(channel Channel, now time.Time) *Order {
	return &Order{
		Channel:   channel,
		Date:      Today(now),
		Quantity:  1,
		Status:    channel.DefaultStatus(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Cost costo de producción = compra + impresión, independiente del estado.
func (o *Order) Cost() decimal.Decimal {
	return o.PurchasePrice.Add(o.PrintPrice)
}

func (o *Order) GetID() string          { return o.ID }
func (o *Order) SetID(id string)        { o.ID = id }
func (o *Order) RecordDate() time.Time  { return o.Date }
func (o *Order) RecordChannel() Channel { return o.Channel }

// Validate exige canal conocido, estado de su enumeración y montos no negativos.
func (o *Order) Validate() error {
	if _, err := ParseChannel(string(o.Channel)); err != nil {
		return err
	}
	if !o.Channel.Allows(o.Status) {
		return fmt.Errorf("%w: %q en canal %s", domain.ErrInvalidStatus, o.Status, o.Channel)
	}
	if o.Quantity < 0 {
		return fmt.Errorf("%w: quantity no puede ser negativo", domain.ErrInvalidInput)
	}
	if o.Channel != ChannelRetail && !o.Commission.IsZero() {
		return fmt.Errorf("%w: la comisión solo aplica al canal retail", domain.ErrInvalidInput)
	}
	for field, v := range map[string]decimal.Decimal{
		"purchase_price": o.PurchasePrice,
		"print_price":    o.PrintPrice,
		"sale_price":     o.SalePrice,
		"commission":     o.Commission,
	} {
		if err := requireNonNegative(field, v); err != nil {
			return err
		}
	}
	return nil
}

// Touch registra la fecha de la última modificación.
func (o *Order) Touch(now time.Time) { o.UpdatedAt = now }
