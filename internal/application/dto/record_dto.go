package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// Los *Input son parches: solo se aplican los campos presentes en el JSON.
// Sirven tanto para el alta (sobre los valores por defecto) como para la edición.

const dateLayout = "2006-01-02"

// OrderInput cuerpo de POST/PUT /api/orders.
type OrderInput struct {
	Channel         *string          `json:"channel" validate:"omitempty,oneof=wholesale retail merch"`
	Reference       *string          `json:"reference" validate:"omitempty,max=64"`
	Date            *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ClientName      *string          `json:"client_name" validate:"omitempty,max=200"`
	SellerName      *string          `json:"seller_name" validate:"omitempty,max=200"`
	Product         *string          `json:"product" validate:"omitempty,max=200"`
	Quantity        *int             `json:"quantity" validate:"omitempty,gte=0"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price" validate:"omitempty,gte=0"`
	PrintPrice      *decimal.Decimal `json:"print_price" validate:"omitempty,gte=0"`
	SalePrice       *decimal.Decimal `json:"sale_price" validate:"omitempty,gte=0"`
	Commission      *decimal.Decimal `json:"commission" validate:"omitempty,gte=0"`
	Status          *string          `json:"status" validate:"omitempty,oneof=in_production confirmed in_delivery delivered_pending delivered_collected returned"`
	ArticleSupplier *string          `json:"article_supplier" validate:"omitempty,max=200"`
	PrintSupplier   *string          `json:"print_supplier" validate:"omitempty,max=200"`
	Notes           *string          `json:"notes" validate:"omitempty,max=2000"`
}

// Apply copia los campos presentes sobre o. Si cambia el canal y el estado actual
// no existe en el nuevo canal, el pedido vuelve al estado inicial de ese canal.
func (in *OrderInput) Apply(o *entity.Order) error {
	if err := Validate(in); err != nil {
		return err
	}
	if in.Channel != nil {
		ch, err := entity.ParseChannel(*in.Channel)
		if err != nil {
			return err
		}
		o.Channel = ch
		if !ch.Allows(o.Status) {
			o.Status = ch.DefaultStatus()
		}
	}
	if in.Status != nil {
		st, err := entity.ParseOrderStatus(*in.Status)
		if err != nil {
			return err
		}
		o.Status = st
	}
	if err := applyDate(&o.Date, in.Date); err != nil {
		return err
	}
	applyString(&o.Reference, in.Reference)
	applyString(&o.ClientName, in.ClientName)
	applyString(&o.SellerName, in.SellerName)
	applyString(&o.Product, in.Product)
	applyString(&o.ArticleSupplier, in.ArticleSupplier)
	applyString(&o.PrintSupplier, in.PrintSupplier)
	applyString(&o.Notes, in.Notes)
	if in.Quantity != nil {
		o.Quantity = *in.Quantity
	}
	applyDecimal(&o.PurchasePrice, in.PurchasePrice)
	applyDecimal(&o.PrintPrice, in.PrintPrice)
	applyDecimal(&o.SalePrice, in.SalePrice)
	applyDecimal(&o.Commission, in.Commission)
	return nil
}

// StatusInput cuerpo de PATCH /api/orders/:id/status.
type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=in_production confirmed in_delivery delivered_pending delivered_collected returned"`
}

// ChargeInput cargo fijo.
type ChargeInput struct {
	Date     *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Label    *string          `json:"label" validate:"omitempty,max=200"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Amount   *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
}

func (in *ChargeInput) Apply(c *entity.Charge) error {
	if err := Validate(in); err != nil {
		return err
	}
	if err := applyDate(&c.Date, in.Date); err != nil {
		return err
	}
	applyString(&c.Label, in.Label)
	applyString(&c.Category, in.Category)
	applyDecimal(&c.Amount, in.Amount)
	return nil
}

// OfferInput ingreso o gasto puntual.
type OfferInput struct {
	Date   *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Label  *string          `json:"label" validate:"omitempty,max=200"`
	Kind   *string          `json:"kind" validate:"omitempty,oneof=revenue expense"`
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
}

func (in *OfferInput) Apply(o *entity.Offer) error {
	if err := Validate(in); err != nil {
		return err
	}
	if err := applyDate(&o.Date, in.Date); err != nil {
		return err
	}
	if in.Kind != nil {
		k, err := entity.ParseOfferKind(*in.Kind)
		if err != nil {
			return err
		}
		o.Kind = k
	}
	applyString(&o.Label, in.Label)
	applyDecimal(&o.Amount, in.Amount)
	return nil
}

// MarketingInput gasto publicitario.
type MarketingInput struct {
	Date     *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Channel  *string          `json:"channel" validate:"omitempty,oneof=wholesale retail merch"`
	Platform *string          `json:"platform" validate:"omitempty,max=100"`
	Amount   *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Note     *string          `json:"note" validate:"omitempty,max=2000"`
}

func (in *MarketingInput) Apply(m *entity.MarketingSpend) error {
	if err := Validate(in); err != nil {
		return err
	}
	if err := applyDate(&m.Date, in.Date); err != nil {
		return err
	}
	if in.Channel != nil {
		ch, err := entity.ParseChannel(*in.Channel)
		if err != nil {
			return err
		}
		m.Channel = ch
	}
	applyString(&m.Platform, in.Platform)
	applyString(&m.Note, in.Note)
	applyDecimal(&m.Amount, in.Amount)
	return nil
}

// InventoryInput artículo de stock.
type InventoryInput struct {
	SKU              *string          `json:"sku" validate:"omitempty,max=64"`
	Name             *string          `json:"name" validate:"omitempty,max=200"`
	Quantity         *int             `json:"quantity" validate:"omitempty,gte=0"`
	ReorderThreshold *int             `json:"reorder_threshold" validate:"omitempty,gte=0"`
	UnitCost         *decimal.Decimal `json:"unit_cost" validate:"omitempty,gte=0"`
}

func (in *InventoryInput) Apply(i *entity.InventoryItem) error {
	if err := Validate(in); err != nil {
		return err
	}
	applyString(&i.SKU, in.SKU)
	applyString(&i.Name, in.Name)
	if in.Quantity != nil {
		i.Quantity = *in.Quantity
	}
	if in.ReorderThreshold != nil {
		i.ReorderThreshold = *in.ReorderThreshold
	}
	applyDecimal(&i.UnitCost, in.UnitCost)
	return nil
}

// CreditInput crédito concedido a un cliente.
type CreditInput struct {
	Date       *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ClientName *string          `json:"client_name" validate:"omitempty,max=200"`
	Amount     *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Paid       *decimal.Decimal `json:"paid" validate:"omitempty,gte=0"`
	Note       *string          `json:"note" validate:"omitempty,max=2000"`
}

func (in *CreditInput) Apply(c *entity.Credit) error {
	if err := Validate(in); err != nil {
		return err
	}
	if err := applyDate(&c.Date, in.Date); err != nil {
		return err
	}
	applyString(&c.ClientName, in.ClientName)
	applyString(&c.Note, in.Note)
	applyDecimal(&c.Amount, in.Amount)
	applyDecimal(&c.Paid, in.Paid)
	return nil
}

// PayoutInput pago de comisiones a un revendedor.
type PayoutInput struct {
	Date       *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	SellerName *string          `json:"seller_name" validate:"omitempty,max=200"`
	Amount     *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Note       *string          `json:"note" validate:"omitempty,max=2000"`
}

func (in *PayoutInput) Apply(p *entity.Payout) error {
	if err := Validate(in); err != nil {
		return err
	}
	if err := applyDate(&p.Date, in.Date); err != nil {
		return err
	}
	applyString(&p.SellerName, in.SellerName)
	applyString(&p.Note, in.Note)
	applyDecimal(&p.Amount, in.Amount)
	return nil
}

// SupplierPaymentInput asiento del libro de proveedores.
type SupplierPaymentInput struct {
	Date     *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Category *string          `json:"category" validate:"omitempty,oneof=article print"`
	Supplier *string          `json:"supplier" validate:"omitempty,max=200"`
	Amount   *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Note     *string          `json:"note" validate:"omitempty,max=2000"`
}

func (in *SupplierPaymentInput) Apply(p *entity.SupplierPayment) error {
	if err := Validate(in); err != nil {
		return err
	}
	if err := applyDate(&p.Date, in.Date); err != nil {
		return err
	}
	if in.Category != nil {
		c, err := entity.ParseCostCategory(*in.Category)
		if err != nil {
			return err
		}
		// Cambiar de categoría sin indicar proveedor lo deja vacío; la tabla de
		// proveedores lo completa con la primera opción de la nueva categoría.
		if c != p.Category && in.Supplier == nil {
			p.Supplier = ""
		}
		p.Category = c
	}
	applyString(&p.Supplier, in.Supplier)
	applyString(&p.Note, in.Note)
	applyDecimal(&p.Amount, in.Amount)
	return nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func applyDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func applyDate(dst *time.Time, v *string) error {
	if v == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*v))
	if err != nil {
		return fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, *v)
	}
	*dst = t
	return nil
}
