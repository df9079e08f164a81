package postgres

import (
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

var _ repository.OrderRepository = (*Collection[*entity.Order])(nil)

var ordersTable = tableSpec[*entity.Order]{
	table: "orders",
	columns: []string{
		"id", "channel", "reference", "date", "client_name", "seller_name", "product", "quantity",
		"purchase_price", "print_price", "sale_price", "commission", "status",
		"article_supplier", "print_supplier", "notes", "created_at", "updated_at",
	},
	insertOnly:    []string{"created_at"},
	dateColumn:    "date",
	channelColumn: "channel",
	orderBy:       "date DESC, created_at DESC",
	newRecord:     func() *entity.Order { return &entity.Order{} },
	fields: func(o *entity.Order) []any {
		return []any{
			&o.ID, &o.Channel, &o.Reference, &o.Date, &o.ClientName, &o.SellerName, &o.Product, &o.Quantity,
			&o.PurchasePrice, &o.PrintPrice, &o.SalePrice, &o.Commission, &o.Status,
			&o.ArticleSupplier, &o.PrintSupplier, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		}
	},
}

var chargesTable = tableSpec[*entity.Charge]{
	table:      "charges",
	columns:    []string{"id", "date", "label", "category", "amount"},
	dateColumn: "date",
	orderBy:    "date DESC, id",
	newRecord:  func() *entity.Charge { return &entity.Charge{} },
	fields: func(c *entity.Charge) []any {
		return []any{&c.ID, &c.Date, &c.Label, &c.Category, &c.Amount}
	},
}

var offersTable = tableSpec[*entity.Offer]{
	table:      "offers",
	columns:    []string{"id", "date", "label", "kind", "amount"},
	dateColumn: "date",
	orderBy:    "date DESC, id",
	newRecord:  func() *entity.Offer { return &entity.Offer{} },
	fields: func(o *entity.Offer) []any {
		return []any{&o.ID, &o.Date, &o.Label, &o.Kind, &o.Amount}
	},
}

var marketingTable = tableSpec[*entity.MarketingSpend]{
	table:         "marketing_spend",
	columns:       []string{"id", "date", "channel", "platform", "amount", "note"},
	dateColumn:    "date",
	channelColumn: "channel",
	orderBy:       "date DESC, id",
	newRecord:     func() *entity.MarketingSpend { return &entity.MarketingSpend{} },
	fields: func(m *entity.MarketingSpend) []any {
		return []any{&m.ID, &m.Date, &m.Channel, &m.Platform, &m.Amount, &m.Note}
	},
}

var inventoryTable = tableSpec[*entity.InventoryItem]{
	table:     "inventory_items",
	columns:   []string{"id", "sku", "name", "quantity", "reorder_threshold", "unit_cost", "updated_at"},
	orderBy:   "sku, id",
	newRecord: func() *entity.InventoryItem { return &entity.InventoryItem{} },
	fields: func(i *entity.InventoryItem) []any {
		return []any{&i.ID, &i.SKU, &i.Name, &i.Quantity, &i.ReorderThreshold, &i.UnitCost, &i.UpdatedAt}
	},
}

var creditsTable = tableSpec[*entity.Credit]{
	table:      "credits",
	columns:    []string{"id", "date", "client_name", "amount", "paid", "note"},
	dateColumn: "date",
	orderBy:    "date DESC, id",
	newRecord:  func() *entity.Credit { return &entity.Credit{} },
	fields: func(c *entity.Credit) []any {
		return []any{&c.ID, &c.Date, &c.ClientName, &c.Amount, &c.Paid, &c.Note}
	},
}

var payoutsTable = tableSpec[*entity.Payout]{
	table:      "payouts",
	columns:    []string{"id", "date", "seller_name", "amount", "note"},
	dateColumn: "date",
	orderBy:    "date DESC, id",
	newRecord:  func() *entity.Payout { return &entity.Payout{} },
	fields: func(p *entity.Payout) []any {
		return []any{&p.ID, &p.Date, &p.SellerName, &p.Amount, &p.Note}
	},
}

var supplierPaymentsTable = tableSpec[*entity.SupplierPayment]{
	table:      "supplier_payments",
	columns:    []string{"id", "date", "category", "supplier", "amount", "note"},
	dateColumn: "date",
	orderBy:    "date DESC, id",
	newRecord:  func() *entity.SupplierPayment { return &entity.SupplierPayment{} },
	fields: func(p *entity.SupplierPayment) []any {
		return []any{&p.ID, &p.Date, &p.Category, &p.Supplier, &p.Amount, &p.Note}
	},
}

// NewStore construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewStore(q Querier) *repository.Store {
	return &repository.Store{
		Orders:           newCollection(q, ordersTable),
		Charges:          newCollection(q, chargesTable),
		Offers:           newCollection(q, offersTable),
		Marketing:        newCollection(q, marketingTable),
		Inventory:        newCollection(q, inventoryTable),
		Credits:          newCollection(q, creditsTable),
		Payouts:          newCollection(q, payoutsTable),
		SupplierPayments: newCollection(q, supplierPaymentsTable),
	}
}
