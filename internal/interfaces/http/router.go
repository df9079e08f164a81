package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/merchbydz/backoffice/internal/application/analytics"
	"github.com/merchbydz/backoffice/internal/application/auth"
	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/importer"
	"github.com/merchbydz/backoffice/internal/application/inventory"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router. Report, Assistant, Movements, Metrics y Health son opcionales.
type RouterDeps struct {
	Records   *usecase.Records
	Dashboard *appanalytics.DashboardUseCase
	Report    *appanalytics.ReportUseCase
	Assistant *usecase.AssistantUseCase
	Importer  *importer.CSVImporter
	Exporter  *importer.CSVExporter
	Session   *auth.SessionUseCase
	Movements *inventory.MovementUseCase

	MetricsHandler nethttp.Handler
	Imports        ImportObserver
	Health         func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Health))
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Session)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Session))
	protected.Get("/auth/session", authHandler.Session)
	protected.Post("/auth/logout", authHandler.Logout)

	// Colecciones
	r := deps.Records
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(r.Orders)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	NewRecordHandler[entity.Order, *entity.Order, *dto.OrderInput](r.Orders.RecordUseCase).Mount(orders)
	NewRecordHandler[entity.Charge, *entity.Charge, *dto.ChargeInput](r.Charges).Mount(protected.Group("/charges"))
	NewRecordHandler[entity.Offer, *entity.Offer, *dto.OfferInput](r.Offers).Mount(protected.Group("/offers"))
	NewRecordHandler[entity.MarketingSpend, *entity.MarketingSpend, *dto.MarketingInput](r.Marketing).Mount(protected.Group("/marketing"))
	stock := protected.Group("/inventory")
	if deps.Movements != nil {
		stock.Post("/:id/movements", NewMovementHandler(deps.Movements).Register)
	}
	NewRecordHandler[entity.InventoryItem, *entity.InventoryItem, *dto.InventoryInput](r.Inventory).Mount(stock)
	NewRecordHandler[entity.Credit, *entity.Credit, *dto.CreditInput](r.Credits).Mount(protected.Group("/credits"))
	NewRecordHandler[entity.Payout, *entity.Payout, *dto.PayoutInput](r.Payouts).Mount(protected.Group("/payouts"))
	NewRecordHandler[entity.SupplierPayment, *entity.SupplierPayment, *dto.SupplierPaymentInput](r.SupplierPayments).Mount(protected.Group("/supplier-payments"))

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard, deps.Report)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/channels", dashboardHandler.GetChannels)
	dashboard.Get("/suppliers", dashboardHandler.GetSuppliers)
	dashboard.Get("/sellers", dashboardHandler.GetSellers)
	dashboard.Get("/inventory", dashboardHandler.GetInventory)
	dashboard.Get("/credits", dashboardHandler.GetCredits)
	dashboard.Get("/report.pdf", dashboardHandler.GetReportPDF)
	protected.Get("/suppliers/routing", dashboardHandler.GetRouting)

	// Import / export CSV
	transfer := NewTransferHandler(deps.Importer, deps.Exporter, deps.Imports)
	protected.Get("/import", transfer.Collections)
	protected.Post("/import/:collection", transfer.Import)
	protected.Get("/export/:collection", transfer.Export)

	// Asistente IA
	if deps.Assistant != nil {
		protected.Post("/ai/chat", NewAIHandler(deps.Assistant).Chat)
	}
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
