package dto

import (
	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

// Los montos se redondean a 2 decimales al salir por la API.
func money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// PeriodDTO rango efectivo de la consulta ("" = sin límite).
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewPeriodDTO formatea los límites del rango.
func NewPeriodDTO(r ledger.DateRange) PeriodDTO {
	var p PeriodDTO
	if !r.From.IsZero() {
		p.StartDate = r.From.Format(dateLayout)
	}
	if !r.To.IsZero() {
		p.EndDate = r.To.Format(dateLayout)
	}
	return p
}

// SummaryDTO respuesta de GET /api/dashboard/summary: la cascada hasta la posición neta.
type SummaryDTO struct {
	Period        PeriodDTO       `json:"period"`
	Orders        int             `json:"orders"`
	Recognized    decimal.Decimal `json:"recognized_profit"`
	Expected      decimal.Decimal `json:"expected_profit"`
	Loss          decimal.Decimal `json:"loss"`
	Potential     decimal.Decimal `json:"potential_profit"` // pedidos en reparto, no suma en la posición neta
	AdHocRevenue  decimal.Decimal `json:"adhoc_revenue"`
	AdHocExpense  decimal.Decimal `json:"adhoc_expense"`
	AdHocNet      decimal.Decimal `json:"adhoc_net"`
	Charges       decimal.Decimal `json:"charges"`
	Marketing     decimal.Decimal `json:"marketing"`
	NetPosition   decimal.Decimal `json:"net_position"`
	IncludesMerch bool            `json:"includes_merch"`
}

// NewSummaryDTO mapea los totales del libro.
func NewSummaryDTO(r ledger.DateRange, t ledger.Totals, includesMerch bool) SummaryDTO {
	return SummaryDTO{
		Period:        NewPeriodDTO(r),
		Orders:        t.Orders,
		Recognized:    money(t.Recognized),
		Expected:      money(t.Expected),
		Loss:          money(t.Loss),
		Potential:     money(t.Potential),
		AdHocRevenue:  money(t.AdHocRevenue),
		AdHocExpense:  money(t.AdHocExpense),
		AdHocNet:      money(t.AdHocNet),
		Charges:       money(t.Charges),
		Marketing:     money(t.Marketing),
		NetPosition:   money(t.NetPosition),
		IncludesMerch: includesMerch,
	}
}

// ChannelProfitDTO rentabilidad de un canal.
type ChannelProfitDTO struct {
	Channel    entity.Channel  `json:"channel"`
	Label      string          `json:"label"`
	Orders     int             `json:"orders"`
	Delivered  int             `json:"delivered"`
	Returned   int             `json:"returned"`
	Revenue    decimal.Decimal `json:"revenue"`
	Production decimal.Decimal `json:"production"`
	Commission decimal.Decimal `json:"commission"`
	Returns    decimal.Decimal `json:"returns"`
	Marketing  decimal.Decimal `json:"marketing"`
	Net        decimal.Decimal `json:"net"`
	Receivable decimal.Decimal `json:"receivable"`
	Potential  decimal.Decimal `json:"potential"`
}

// NewChannelProfitDTOs mapea el desglose por canal.
func NewChannelProfitDTOs(in []ledger.ChannelProfit) []ChannelProfitDTO {
	out := make([]ChannelProfitDTO, 0, len(in))
	for _, c := range in {
		out = append(out, ChannelProfitDTO{
			Channel:    c.Channel,
			Label:      c.Channel.Label(),
			Orders:     c.Orders,
			Delivered:  c.Delivered,
			Returned:   c.Returned,
			Revenue:    money(c.Revenue),
			Production: money(c.Production),
			Commission: money(c.Commission),
			Returns:    money(c.Returns),
			Marketing:  money(c.Marketing),
			Net:        money(c.Net),
			Receivable: money(c.Receivable),
			Potential:  money(c.Potential),
		})
	}
	return out
}

// SupplierBalanceDTO saldo a entregar a un proveedor.
type SupplierBalanceDTO struct {
	Category   entity.CostCategory `json:"category"`
	Supplier   string              `json:"supplier"`
	Orders     int                 `json:"orders"`
	Attributed decimal.Decimal     `json:"attributed"`
	Paid       decimal.Decimal     `json:"paid"`
	MustGive   decimal.Decimal     `json:"must_give"`
}

// NewSupplierBalanceDTOs mapea los saldos de proveedores.
func NewSupplierBalanceDTOs(in []ledger.SupplierBalance) []SupplierBalanceDTO {
	out := make([]SupplierBalanceDTO, 0, len(in))
	for _, s := range in {
		out = append(out, SupplierBalanceDTO{
			Category:   s.Category,
			Supplier:   s.Supplier,
			Orders:     s.Orders,
			Attributed: money(s.Attributed),
			Paid:       money(s.Paid),
			MustGive:   money(s.MustGive),
		})
	}
	return out
}

// SellerBalanceDTO comisiones de un revendedor.
type SellerBalanceDTO struct {
	Seller    string          `json:"seller"`
	Orders    int             `json:"orders"`
	Collected int             `json:"collected"`
	Earned    decimal.Decimal `json:"earned"`
	Pending   decimal.Decimal `json:"pending"`
	Paid      decimal.Decimal `json:"paid"`
	Due       decimal.Decimal `json:"due"`
}

func NewSellerBalanceDTOs(in []ledger.SellerBalance) []SellerBalanceDTO {
	out := make([]SellerBalanceDTO, 0, len(in))
	for _, s := range in {
		out = append(out, SellerBalanceDTO{
			Seller:    s.Seller,
			Orders:    s.Orders,
			Collected: s.Collected,
			Earned:    money(s.Earned),
			Pending:   money(s.Pending),
			Paid:      money(s.Paid),
			Due:       money(s.Due),
		})
	}
	return out
}

// InventoryStatusDTO valoración de stock.
type InventoryStatusDTO struct {
	Items    int                     `json:"items"`
	Units    int                     `json:"units"`
	Value    decimal.Decimal         `json:"value"`
	LowStock []*entity.InventoryItem `json:"low_stock"`
}

func NewInventoryStatusDTO(s ledger.InventoryStatus) InventoryStatusDTO {
	low := s.LowStock
	if low == nil {
		low = []*entity.InventoryItem{}
	}
	return InventoryStatusDTO{Items: s.Items, Units: s.Units, Value: money(s.Value), LowStock: low}
}

// ClientCreditDTO saldo de un cliente.
type ClientCreditDTO struct {
	Client      string          `json:"client"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// CreditSummaryDTO créditos del período.
type CreditSummaryDTO struct {
	Amount      decimal.Decimal   `json:"amount"`
	Paid        decimal.Decimal   `json:"paid"`
	Outstanding decimal.Decimal   `json:"outstanding"`
	Clients     []ClientCreditDTO `json:"clients"`
}

func NewCreditSummaryDTO(s ledger.CreditSummary) CreditSummaryDTO {
	out := CreditSummaryDTO{
		Amount:      money(s.Amount),
		Paid:        money(s.Paid),
		Outstanding: money(s.Outstanding),
		Clients:     make([]ClientCreditDTO, 0, len(s.Clients)),
	}
	for _, c := range s.Clients {
		out.Clients = append(out.Clients, ClientCreditDTO{
			Client:      c.Client,
			Amount:      money(c.Amount),
			Paid:        money(c.Paid),
			Outstanding: money(c.Outstanding),
		})
	}
	return out
}

// RoutingDTO tabla categoría de costo → proveedores elegibles.
type RoutingDTO struct {
	Article []string `json:"article"`
	Print   []string `json:"print"`
}

func NewRoutingDTO(r ledger.Routing) RoutingDTO {
	return RoutingDTO{
		Article: r.Eligible(entity.CategoryArticle),
		Print:   r.Eligible(entity.CategoryPrint),
	}
}
