package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

// ReportUseCase informe PDF del tablero para un rango.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator ports.ReportGenerator
	title     string
	currency  string
	now       func() time.Time
}

func NewReportUseCase(dashboard *DashboardUseCase, generator ports.ReportGenerator, title, currency string) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator, title: title, currency: currency, now: time.Now}
}

// DashboardPDF reúne resumen, canales, proveedores y revendedores y delega el render.
func (uc *ReportUseCase) DashboardPDF(ctx context.Context, r ledger.DateRange) ([]byte, error) {
	if uc.generator == nil {
		return nil, fmt.Errorf("informe: %w", domain.ErrUnavailable)
	}
	summary, err := uc.dashboard.Summary(ctx, r)
	if err != nil {
		return nil, err
	}
	channels, err := uc.dashboard.Channels(ctx, r)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.dashboard.Suppliers(ctx, r)
	if err != nil {
		return nil, err
	}
	sellers, err := uc.dashboard.Sellers(ctx, r)
	if err != nil {
		return nil, err
	}

	pdf, err := uc.generator.DashboardPDF(ctx, ports.DashboardReport{
		Title:       uc.title,
		Currency:    uc.currency,
		GeneratedAt: uc.now(),
		Summary:     summary,
		Channels:    channels,
		Suppliers:   suppliers,
		Sellers:     sellers,
	})
	if err != nil {
		uc.dashboard.log.Error().Err(err).Str("range", r.Key()).Msg("generar informe PDF")
		return nil, fmt.Errorf("informe: %w", err)
	}
	return pdf, nil
}
