// seed carga datos de demostración: pedidos de los tres canales, cargos, ofertas,
// marketing, stock, créditos, pagos a revendedores y pagos a proveedores.
//
// Uso:
//
//	go run ./cmd/seed -orders 200 -days 120          # escribe en la base de DATABASE_URL
//	go run ./cmd/seed -orders 50 -csv ./demo         # genera un CSV importable por colección
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/merchbydz/backoffice/internal/application/importer"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
	"github.com/merchbydz/backoffice/internal/infrastructure/cache"
	"github.com/merchbydz/backoffice/internal/infrastructure/memory"
	"github.com/merchbydz/backoffice/internal/infrastructure/postgres"
	"github.com/merchbydz/backoffice/pkg/config"
	"github.com/merchbydz/backoffice/pkg/logger"
)

func main() {
	var (
		opts   Options
		csvDir string
	)
	flag.IntVar(&opts.Orders, "orders", 150, "pedidos a generar")
	flag.IntVar(&opts.Days, "days", 90, "ventana en días hacia atrás desde hoy")
	flag.IntVar(&opts.Sellers, "sellers", 4, "revendedores de la red")
	flag.Uint64Var(&opts.Seed, "seed", 0, "semilla (0 = aleatoria)")
	flag.StringVar(&csvDir, "csv", "", "directorio de salida CSV en lugar de la base de datos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var store *repository.Store
	if csvDir != "" {
		store = memory.NewStore()
	} else {
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	}

	routing := ledger.DefaultRouting()
	if len(cfg.Ledger.ArticleSuppliers) > 0 || len(cfg.Ledger.PrintSuppliers) > 0 {
		if routing, err = ledger.NewRouting(cfg.Ledger.ArticleSuppliers, cfg.Ledger.PrintSuppliers); err != nil {
			log.Fatal().Err(err).Msg("tabla de proveedores")
		}
	}

	records := usecase.NewRecords(store, routing, cache.NoopCache{}, log.Component("records"))
	counts, err := newGenerator(records, routing, opts).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("generar datos")
	}
	for name, n := range counts {
		log.Info().Str("collection", name).Int("records", n).Msg("datos generados")
	}

	if csvDir != "" {
		if err := writeCSVs(ctx, importer.NewCSVExporter(importer.NewCatalog(records)), csvDir); err != nil {
			log.Fatal().Err(err).Msg("escribir CSV")
		}
		log.Info().Str("dir", csvDir).Msg("CSV escritos")
	}
}

// writeCSVs un archivo <colección>.csv por colección, listo para POST /api/import/:collection.
func writeCSVs(ctx context.Context, ex *importer.CSVExporter, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range ex.Collections() {
		f, err := os.Create(filepath.Join(dir, name+".csv"))
		if err != nil {
			return err
		}
		err = ex.Export(ctx, name, repository.RecordFilter{}, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
