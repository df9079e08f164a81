package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/language"

	appanalytics "github.com/merchbydz/backoffice/internal/application/analytics"
	"github.com/merchbydz/backoffice/internal/application/auth"
	"github.com/merchbydz/backoffice/internal/application/importer"
	"github.com/merchbydz/backoffice/internal/application/inventory"
	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
	infraai "github.com/merchbydz/backoffice/internal/infrastructure/ai"
	"github.com/merchbydz/backoffice/internal/infrastructure/cache"
	"github.com/merchbydz/backoffice/internal/infrastructure/memory"
	"github.com/merchbydz/backoffice/internal/infrastructure/metrics"
	infrapdf "github.com/merchbydz/backoffice/internal/infrastructure/pdf"
	"github.com/merchbydz/backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/merchbydz/backoffice/internal/interfaces/http"
	"github.com/merchbydz/backoffice/pkg/config"
	"github.com/merchbydz/backoffice/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Store: PostgreSQL o memoria (demo / desarrollo sin base).
	var (
		store  *repository.Store
		tx     ports.TxRunner
		health func(context.Context) error
	)
	switch cfg.DB.Driver {
	case "memory":
		store = memory.NewStore()
		tx = memory.NewTxRunner(store)
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		var pool *pgxpool.Pool
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
		tx = postgres.NewTxRunner(pool)
		health = pool.Ping
	}

	// Caché de resúmenes: Redis si hay REDIS_ADDR.
	summaryCache := localCache(cfg.DB.Driver)
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.App.Name)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché desactivada")
		} else {
			summaryCache = rc
			defer rc.Close()
		}
	}

	routing := ledger.DefaultRouting()
	if len(cfg.Ledger.ArticleSuppliers) > 0 || len(cfg.Ledger.PrintSuppliers) > 0 {
		routing, err = ledger.NewRouting(cfg.Ledger.ArticleSuppliers, cfg.Ledger.PrintSuppliers)
		if err != nil {
			log.Fatal().Err(err).Msg("tabla de proveedores")
		}
	}

	m := metrics.New(true)
	records := usecase.NewRecords(store, routing, summaryCache, log.Component("records"))
	dashboardUC := appanalytics.NewDashboardUseCase(store, appanalytics.DashboardConfig{
		Routing:  routing,
		Options:  ledger.Options{IncludeMerch: cfg.Ledger.NetIncludesMerch},
		CacheTTL: time.Duration(cfg.Dashboard.CacheTTLSeconds) * time.Second,
	}, summaryCache, log.Component("dashboard")).WithObserver(m)

	// PDF del tablero
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(language.French)
	reportUC := appanalytics.NewReportUseCase(dashboardUC, pdfGenerator, "Merch By DZ : tableau de bord", cfg.App.Currency)

	// Asistente IA: sin API key el endpoint responde 503.
	var llm ports.ChatCompleter
	switch cfg.AI.Provider {
	case "gemini":
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	default:
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}
	assistantUC := usecase.NewAssistantUseCase(llm, dashboardUC, cfg.App.Currency, log.Component("assistant"))

	catalog := importer.NewCatalog(records)
	csvImporter := importer.NewCSVImporter(catalog, tx, log.Component("importer"))
	csvExporter := importer.NewCSVExporter(catalog)
	movementUC := inventory.NewMovementUseCase(tx, summaryCache, log.Component("inventory"))

	sessionUC, err := auth.NewSessionUseCase(auth.Config{
		PasswordHash:      cfg.Auth.PasswordHash,
		Password:          cfg.Auth.Password,
		AttemptsPerMinute: cfg.Auth.LoginRatePerMinute,
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	}, log.Component("auth"))
	if err != nil {
		log.Fatal().Err(err).Msg("autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    10 << 20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.Metrics(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Merch By DZ back-office API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Records:        records,
		Dashboard:      dashboardUC,
		Report:         reportUC,
		Assistant:      assistantUC,
		Importer:       csvImporter,
		Exporter:       csvExporter,
		Session:        sessionUC,
		Movements:      movementUC,
		MetricsHandler: m.Handler(),
		Imports:        m,
		Health:         health,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// localCache caché sin Redis: en proceso con el store en memoria, desactivada con
// PostgreSQL porque varias instancias no compartirían las invalidaciones.
func localCache(driver string) ports.SummaryCache {
	if driver == "memory" {
		return cache.NewMemoryCache()
	}
	return cache.NoopCache{}
}
