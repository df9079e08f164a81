package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
)

// CostCategory categoría de costo de producción que se enruta a proveedores.
type CostCategory string

const (
	CategoryArticle CostCategory = "article" // prenda / artículo en blanco
	CategoryPrint   CostCategory = "print"   // impresión / personalización
)

// CostCategories categorías en orden de presentación.
var CostCategories = []CostCategory{CategoryArticle, CategoryPrint}

// ParseCostCategory valida una categoría de costo.
func ParseCostCategory(s string) (CostCategory, error) {
	c := CostCategory(strings.ToLower(strings.TrimSpace(s)))
	if c == CategoryArticle || c == CategoryPrint {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidCategory, s)
}

// SupplierPayment pago registrado contra un proveedor para una categoría de costo.
type SupplierPayment struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Category CostCategory    `json:"category"`
	Supplier string          `json:"supplier"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

// NewSupplierPayment pago en blanco (categoría artículo; el proveedor lo fija el enrutamiento).
func NewSupplierPayment(now time.Time) *SupplierPayment {
	return &SupplierPayment{Date: Today(now), Category: CategoryArticle}
}

func (p *SupplierPayment) GetID() string         { return p.ID }
func (p *SupplierPayment) SetID(id string)       { p.ID = id }
func (p *SupplierPayment) RecordDate() time.Time { return p.Date }

func (p *SupplierPayment) Validate() error {
	if _, err := ParseCostCategory(string(p.Category)); err != nil {
		return err
	}
	return requireNonNegative("amount", p.Amount)
}
