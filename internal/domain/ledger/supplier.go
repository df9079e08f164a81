package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// Routing tabla fija categoría de costo → proveedores elegibles.
// El primer proveedor de cada categoría es la opción por defecto.
type Routing struct {
	table map[entity.CostCategory][]string
}

// DefaultRouting tabla de proveedores usada cuando la configuración no define otra.
func DefaultRouting() Routing {
	r, _ := NewRouting(
		[]string{"Grossiste textile"},
		[]string{"Atelier impression", "Atelier broderie"},
	)
	return r
}

// NewRouting construye la tabla. Cada categoría necesita al menos un proveedor.
func NewRouting(article, print []string) (Routing, error) {
	clean := func(cat entity.CostCategory, names []string) ([]string, error) {
		var out []string
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: la categoría %s no tiene proveedores", domain.ErrInvalidInput, cat)
		}
		return out, nil
	}
	a, err := clean(entity.CategoryArticle, article)
	if err != nil {
		return Routing{}, err
	}
	p, err := clean(entity.CategoryPrint, print)
	if err != nil {
		return Routing{}, err
	}
	return Routing{table: map[entity.CostCategory][]string{
		entity.CategoryArticle: a,
		entity.CategoryPrint:   p,
	}}, nil
}

// Eligible proveedores válidos para la categoría (copia).
func (r Routing) Eligible(c entity.CostCategory) []string {
	return append([]string(nil), r.table[c]...)
}

// IsEligible indica si el proveedor está habilitado para la categoría.
func (r Routing) IsEligible(c entity.CostCategory, supplier string) bool {
	for _, s := range r.table[c] {
		if s == supplier {
			return true
		}
	}
	return false
}

// Resolve devuelve el proveedor si es elegible; si no, la primera opción válida.
func (r Routing) Resolve(c entity.CostCategory, supplier string) string {
	if r.IsEligible(c, supplier) {
		return supplier
	}
	if opts := r.table[c]; len(opts) > 0 {
		return opts[0]
	}
	return ""
}

// Normalize mantiene coherente un pago: si el proveedor no pertenece a la categoría
// (p. ej. tras cambiar la categoría) se reinicia a la primera opción válida.
// Devuelve true si modificó el pago.
func (r Routing) Normalize(p *entity.SupplierPayment) bool {
	resolved := r.Resolve(p.Category, p.Supplier)
	if resolved == p.Supplier {
		return false
	}
	p.Supplier = resolved
	return true
}

// SupplierBalance saldo "a entregar" a un proveedor en una categoría.
type SupplierBalance struct {
	Category   entity.CostCategory
	Supplier   string
	Orders     int
	Attributed decimal.Decimal // costo de producción imputable al proveedor
	Paid       decimal.Decimal // pagos registrados en el libro de proveedores
	MustGive   decimal.Decimal // Attributed − Paid
}

// SupplierBalances calcula el saldo de cada proveedor de la tabla. El costo de artículo
// se imputa al proveedor de artículo del pedido y el de impresión al de impresión.
func SupplierBalances(b *Book, r DateRange, routing Routing) []SupplierBalance {
	type key struct {
		cat      entity.CostCategory
		supplier string
	}
	var out []SupplierBalance
	idx := make(map[key]int)
	for _, cat := range entity.CostCategories {
		for _, s := range routing.table[cat] {
			idx[key{cat, s}] = len(out)
			out = append(out, SupplierBalance{Category: cat, Supplier: s})
		}
	}
	if len(out) == 0 {
		return out
	}

	attribute := func(cat entity.CostCategory, supplier string, amount decimal.Decimal) {
		i, ok := idx[key{cat, routing.Resolve(cat, supplier)}]
		if !ok || amount.IsZero() {
			return
		}
		out[i].Orders++
		out[i].Attributed = out[i].Attributed.Add(amount)
	}

	for _, o := range b.Orders {
		if !r.Contains(o.Date) {
			continue
		}
		attribute(entity.CategoryArticle, o.ArticleSupplier, o.PurchasePrice)
		attribute(entity.CategoryPrint, o.PrintSupplier, o.PrintPrice)
	}

	for _, p := range b.SupplierPayments {
		if !r.Contains(p.Date) {
			continue
		}
		if i, ok := idx[key{p.Category, routing.Resolve(p.Category, p.Supplier)}]; ok {
			out[i].Paid = out[i].Paid.Add(p.Amount)
		}
	}

	for i := range out {
		out[i].MustGive = out[i].Attributed.Sub(out[i].Paid)
	}
	return out
}
