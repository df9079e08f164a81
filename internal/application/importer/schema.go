package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

type kind int

const (
	kindText kind = iota
	kindDate
	kindAmount
	kindInteger
)

// column columna CSV; name coincide con el tag json del registro y del *Input.
type column struct {
	name string
	kind kind
}

func cols(spec ...any) []column {
	out := make([]column, 0, len(spec)/2)
	for i := 0; i+1 < len(spec); i += 2 {
		out = append(out, column{name: spec[i].(string), kind: spec[i+1].(kind)})
	}
	return out
}

var (
	orderColumns = cols(
		"id", kindText, "channel", kindText, "reference", kindText, "date", kindDate,
		"client_name", kindText, "seller_name", kindText, "product", kindText, "quantity", kindInteger,
		"purchase_price", kindAmount, "print_price", kindAmount, "sale_price", kindAmount,
		"commission", kindAmount, "status", kindText, "article_supplier", kindText,
		"print_supplier", kindText, "notes", kindText,
	)
	chargeColumns    = cols("id", kindText, "date", kindDate, "label", kindText, "category", kindText, "amount", kindAmount)
	offerColumns     = cols("id", kindText, "date", kindDate, "label", kindText, "kind", kindText, "amount", kindAmount)
	marketingColumns = cols("id", kindText, "date", kindDate, "channel", kindText, "platform", kindText, "amount", kindAmount, "note", kindText)
	inventoryColumns = cols("id", kindText, "sku", kindText, "name", kindText, "quantity", kindInteger, "reorder_threshold", kindInteger, "unit_cost", kindAmount)
	creditColumns    = cols("id", kindText, "date", kindDate, "client_name", kindText, "amount", kindAmount, "paid", kindAmount, "note", kindText)
	payoutColumns    = cols("id", kindText, "date", kindDate, "seller_name", kindText, "amount", kindAmount, "note", kindText)
	supplierColumns  = cols("id", kindText, "date", kindDate, "category", kindText, "supplier", kindText, "amount", kindAmount, "note", kindText)
)

// collection enlaza una colección con su caso de uso y su repositorio.
type collection struct {
	name       string
	columns    []column
	build      func(fields map[string]any, id string) (entity.Record, error)
	upsert     func(ctx context.Context, s *repository.Store, rec entity.Record) error
	list       func(ctx context.Context, f repository.RecordFilter) ([]entity.Record, error)
	invalidate func(ctx context.Context)
}

// Catalog colecciones importables/exportables por nombre (orders, charges, ...).
type Catalog struct {
	byName map[string]collection
}

// NewCatalog registra las ocho colecciones del libro.
func NewCatalog(r *usecase.Records) *Catalog {
	c := &Catalog{byName: make(map[string]collection)}
	c.add(bind[entity.Order, *entity.Order, *dto.OrderInput](r.Orders.RecordUseCase, orderColumns,
		func(s *repository.Store) repository.OrderRepository { return s.Orders }))
	c.add(bind[entity.Charge, *entity.Charge, *dto.ChargeInput](r.Charges, chargeColumns,
		func(s *repository.Store) repository.ChargeRepository { return s.Charges }))
	c.add(bind[entity.Offer, *entity.Offer, *dto.OfferInput](r.Offers, offerColumns,
		func(s *repository.Store) repository.OfferRepository { return s.Offers }))
	c.add(bind[entity.MarketingSpend, *entity.MarketingSpend, *dto.MarketingInput](r.Marketing, marketingColumns,
		func(s *repository.Store) repository.MarketingRepository { return s.Marketing }))
	c.add(bind[entity.InventoryItem, *entity.InventoryItem, *dto.InventoryInput](r.Inventory, inventoryColumns,
		func(s *repository.Store) repository.InventoryRepository { return s.Inventory }))
	c.add(bind[entity.Credit, *entity.Credit, *dto.CreditInput](r.Credits, creditColumns,
		func(s *repository.Store) repository.CreditRepository { return s.Credits }))
	c.add(bind[entity.Payout, *entity.Payout, *dto.PayoutInput](r.Payouts, payoutColumns,
		func(s *repository.Store) repository.PayoutRepository { return s.Payouts }))
	c.add(bind[entity.SupplierPayment, *entity.SupplierPayment, *dto.SupplierPaymentInput](r.SupplierPayments, supplierColumns,
		func(s *repository.Store) repository.SupplierPaymentRepository { return s.SupplierPayments }))
	return c
}

func (c *Catalog) add(col collection) { c.byName[col.name] = col }

// Names nombres registrados, ordenados.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.byName))
	for n := range c.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) get(name string) (collection, error) {
	col, ok := c.byName[name]
	if !ok {
		return collection{}, fmt.Errorf("%w: colección %q desconocida", domain.ErrInvalidInput, name)
	}
	return col, nil
}

// bind adapta un RecordUseCase tipado a la vista sin tipos que usan importador y exportador.
// Los campos de cada fila se decodifican en el *Input de la colección (P) vía JSON,
// de modo que la importación aplica exactamente las mismas reglas que la API.
func bind[E any, T interface {
	*E
	entity.Record
}, P interface {
	*D
	usecase.Patch[T]
}, D any](uc *usecase.RecordUseCase[E, T], columns []column, repoOf func(*repository.Store) repository.RecordRepository[T]) collection {
	return collection{
		name:    uc.Name(),
		columns: columns,
		build: func(fields map[string]any, id string) (entity.Record, error) {
			payload, err := json.Marshal(fields)
			if err != nil {
				return nil, err
			}
			var in D
			dec := json.NewDecoder(bytes.NewReader(payload))
			dec.DisallowUnknownFields()
			if err := dec.Decode(P(&in)); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
			rec, err := uc.Build(P(&in), id)
			if err != nil {
				return nil, err
			}
			return rec, nil
		},
		upsert: func(ctx context.Context, s *repository.Store, rec entity.Record) error {
			typed, ok := rec.(T)
			if !ok {
				return fmt.Errorf("importer: tipo %T inesperado en %s", rec, uc.Name())
			}
			return repoOf(s).Upsert(ctx, typed)
		},
		list: func(ctx context.Context, f repository.RecordFilter) ([]entity.Record, error) {
			recs, err := uc.List(ctx, f)
			if err != nil {
				return nil, err
			}
			out := make([]entity.Record, len(recs))
			for i, r := range recs {
				out[i] = r
			}
			return out, nil
		},
		invalidate: uc.Invalidate,
	}
}

// cell convierte el valor JSON de un registro en el texto de su columna.
func cell(c column, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		if c.kind == kindDate {
			t, err := time.Parse(time.RFC3339, x)
			if err != nil || t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		}
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	return fmt.Sprint(v)
}
