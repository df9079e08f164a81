package ports

import (
	"context"
	"time"

	"github.com/merchbydz/backoffice/internal/application/dto"
)

// DashboardReport datos del informe imprimible del tablero.
type DashboardReport struct {
	Title       string
	Currency    string
	GeneratedAt time.Time
	Summary     dto.SummaryDTO
	Channels    []dto.ChannelProfitDTO
	Suppliers   []dto.SupplierBalanceDTO
	Sellers     []dto.SellerBalanceDTO
}

// ReportGenerator genera el PDF del informe.
type ReportGenerator interface {
	DashboardPDF(ctx context.Context, report DashboardReport) ([]byte, error)
}
