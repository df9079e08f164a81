package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain/entity"
)

func sampleReport() ports.DashboardReport {
	return ports.DashboardReport{
		Title:       "Merch By DZ",
		Currency:    "DZD",
		GeneratedAt: time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC),
		Summary: dto.SummaryDTO{
			Period:      dto.PeriodDTO{StartDate: "2026-03-01", EndDate: "2026-03-31"},
			Orders:      4,
			Recognized:  decimal.NewFromInt(1500),
			Expected:    decimal.NewFromInt(800),
			Loss:        decimal.NewFromInt(1000),
			Potential:   decimal.NewFromInt(300),
			Charges:     decimal.NewFromInt(70000),
			NetPosition: decimal.NewFromInt(-68700),
		},
		Channels: []dto.ChannelProfitDTO{
			{Channel: entity.ChannelWholesale, Label: "Gros", Orders: 2, Revenue: decimal.NewFromInt(3000), Net: decimal.NewFromInt(1500)},
			{Channel: entity.ChannelRetail, Label: "Revendeurs", Orders: 2, Net: decimal.NewFromInt(-200)},
		},
		Suppliers: []dto.SupplierBalanceDTO{
			{Category: entity.CategoryArticle, Supplier: "Atelier A", Orders: 1, Attributed: decimal.NewFromInt(600), MustGive: decimal.NewFromInt(600)},
		},
		Sellers: []dto.SellerBalanceDTO{
			{Seller: "Yacine", Orders: 1, Earned: decimal.NewFromInt(200), Due: decimal.NewFromInt(200)},
		},
	}
}

func TestDashboardPDF_GeneratesDocument(t *testing.T) {
	g := NewMarotoPDFGenerator(language.French)

	out, err := g.DashboardPDF(context.Background(), sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestDashboardPDF_EmptyTables(t *testing.T) {
	rep := sampleReport()
	rep.Channels, rep.Suppliers, rep.Sellers = nil, nil, nil
	rep.Summary.Period = dto.PeriodDTO{}

	out, err := NewMarotoPDFGenerator(language.French).DashboardPDF(context.Background(), rep)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestDashboardPDF_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMarotoPDFGenerator(language.French).DashboardPDF(ctx, sampleReport())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMoney_UsesLocaleSeparators(t *testing.T) {
	g := NewMarotoPDFGenerator(language.English)

	assert.Equal(t, "1,234.50 DZD", g.money(decimal.RequireFromString("1234.5"), "DZD"))
	assert.Equal(t, "-68,700.00", g.money(decimal.NewFromInt(-68700), ""))
}

func TestColumnSizes(t *testing.T) {
	assert.Equal(t, []int{5, 1, 1, 1, 1, 1, 1, 1}, columnSizes(8))
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2}, columnSizes(6))
	assert.Nil(t, columnSizes(0))
}
