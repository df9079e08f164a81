package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

// Options volumen de datos de demostración.
type Options struct {
	Orders  int
	Days    int       // ventana hacia atrás desde Until
	Until   time.Time // último día con datos
	Sellers int
	Seed    uint64 // 0 = aleatorio
}

// Counts registros creados por colección.
type Counts map[string]int

// generator crea registros a través de los casos de uso, con las mismas validaciones que la API.
type generator struct {
	f       *gofakeit.Faker
	opts    Options
	routing ledger.Routing
	r       *usecase.Records
	sellers []string
}

func newGenerator(r *usecase.Records, routing ledger.Routing, opts Options) *generator {
	if opts.Days <= 0 {
		opts.Days = 90
	}
	if opts.Sellers <= 0 {
		opts.Sellers = 4
	}
	if opts.Until.IsZero() {
		opts.Until = time.Now()
	}
	g := &generator{f: gofakeit.New(opts.Seed), opts: opts, routing: routing, r: r}
	for i := 0; i < opts.Sellers; i++ {
		g.sellers = append(g.sellers, g.f.FirstName()+" "+g.f.LastName())
	}
	return g
}

func (g *generator) Run(ctx context.Context) (Counts, error) {
	counts := Counts{}
	steps := []struct {
		name string
		n    int
		fn   func(context.Context) error
	}{
		{"orders", g.opts.Orders, g.order},
		{"charges", max(1, g.opts.Days/30) * 3, g.charge},
		{"offers", max(1, g.opts.Orders/20), g.offer},
		{"marketing", max(1, g.opts.Days/7), g.marketing},
		{"inventory", 12, g.inventory},
		{"credits", max(1, g.opts.Orders/15), g.credit},
		{"payouts", len(g.sellers), g.payout},
		{"supplier-payments", max(1, g.opts.Days/15), g.supplierPayment},
	}
	for _, st := range steps {
		for i := 0; i < st.n; i++ {
			if err := st.fn(ctx); err != nil {
				return counts, fmt.Errorf("%s #%d: %w", st.name, i+1, err)
			}
			counts[st.name]++
		}
	}
	return counts, nil
}

func (g *generator) date() *string {
	d := g.opts.Until.AddDate(0, 0, -g.f.Number(0, g.opts.Days-1)).Format(ledger.DateLayout)
	return &d
}

// amount monto redondeado a la centena, como se cotiza en dinares.
func (g *generator) amount(lo, hi int) *decimal.Decimal {
	v := decimal.NewFromInt(int64(g.f.Number(lo/100, hi/100) * 100))
	return &v
}

func (g *generator) pick(options []string) string {
	return options[g.f.Number(0, len(options)-1)]
}

func str(s string) *string { return &s }

func (g *generator) order(ctx context.Context) error {
	channel := entity.Channels[g.f.Number(0, len(entity.Channels)-1)]
	statuses := channel.Statuses()
	status := string(statuses[g.f.Number(0, len(statuses)-1)])
	qty := g.f.Number(1, 30)

	purchase := g.amount(600, 1800)
	printCost := g.amount(0, 900)
	margin := g.amount(300, 2500)
	sale := purchase.Add(*printCost).Add(*margin).Mul(decimal.NewFromInt(int64(qty)))
	*purchase = purchase.Mul(decimal.NewFromInt(int64(qty)))
	*printCost = printCost.Mul(decimal.NewFromInt(int64(qty)))

	in := dto.OrderInput{
		Channel:         str(string(channel)),
		Reference:       str(fmt.Sprintf("CMD-%05d", g.f.Number(1, 99999))),
		Date:            g.date(),
		ClientName:      str(g.f.Company()),
		Product:         str(g.f.ProductName()),
		Quantity:        &qty,
		PurchasePrice:   purchase,
		PrintPrice:      printCost,
		SalePrice:       &sale,
		Status:          &status,
		ArticleSupplier: str(g.pick(g.routing.Eligible(entity.CategoryArticle))),
		PrintSupplier:   str(g.pick(g.routing.Eligible(entity.CategoryPrint))),
	}
	if channel == entity.ChannelRetail {
		in.SellerName = str(g.pick(g.sellers))
		in.Commission = g.amount(200, 800)
	}
	_, err := g.r.Orders.Add(ctx, &in)
	return err
}

func (g *generator) charge(ctx context.Context) error {
	_, err := g.r.Charges.Add(ctx, &dto.ChargeInput{
		Date:     g.date(),
		Label:    str(g.pick([]string{"Loyer atelier", "Électricité", "Internet", "Salaire", "Transport"})),
		Category: str(g.pick([]string{"fixe", "variable"})),
		Amount:   g.amount(2000, 40000),
	})
	return err
}

func (g *generator) offer(ctx context.Context) error {
	_, err := g.r.Offers.Add(ctx, &dto.OfferInput{
		Date:   g.date(),
		Label:  str(g.f.BuzzWord()),
		Kind:   str(g.pick([]string{string(entity.OfferRevenue), string(entity.OfferExpense)})),
		Amount: g.amount(1000, 20000),
	})
	return err
}

func (g *generator) marketing(ctx context.Context) error {
	channel := string(entity.Channels[g.f.Number(0, len(entity.Channels)-1)])
	_, err := g.r.Marketing.Add(ctx, &dto.MarketingInput{
		Date:     g.date(),
		Channel:  &channel,
		Platform: str(g.pick([]string{"Instagram", "Facebook", "TikTok"})),
		Amount:   g.amount(1000, 15000),
	})
	return err
}

func (g *generator) inventory(ctx context.Context) error {
	qty, threshold := g.f.Number(0, 200), g.f.Number(5, 40)
	_, err := g.r.Inventory.Add(ctx, &dto.InventoryInput{
		SKU:              str(fmt.Sprintf("TS-%s-%03d", g.pick([]string{"BLK", "WHT", "NAV", "GRY"}), g.f.Number(1, 999))),
		Name:             str(g.f.ProductName()),
		Quantity:         &qty,
		ReorderThreshold: &threshold,
		UnitCost:         g.amount(500, 1500),
	})
	return err
}

func (g *generator) credit(ctx context.Context) error {
	amount := g.amount(5000, 60000)
	paid := amount.Mul(decimal.NewFromInt(int64(g.f.Number(0, 10)))).Div(decimal.NewFromInt(10)).Round(0)
	_, err := g.r.Credits.Add(ctx, &dto.CreditInput{
		Date:       g.date(),
		ClientName: str(g.f.Company()),
		Amount:     amount,
		Paid:       &paid,
	})
	return err
}

func (g *generator) payout(ctx context.Context) error {
	_, err := g.r.Payouts.Add(ctx, &dto.PayoutInput{
		Date:       g.date(),
		SellerName: str(g.pick(g.sellers)),
		Amount:     g.amount(500, 5000),
	})
	return err
}

func (g *generator) supplierPayment(ctx context.Context) error {
	category := g.pick([]string{string(entity.CategoryArticle), string(entity.CategoryPrint)})
	_, err := g.r.SupplierPayments.Add(ctx, &dto.SupplierPaymentInput{
		Date:     g.date(),
		Category: &category,
		Supplier: str(g.pick(g.routing.Eligible(entity.CostCategory(category)))),
		Amount:   g.amount(5000, 50000),
	})
	return err
}
