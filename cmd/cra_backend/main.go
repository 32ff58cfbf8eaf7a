package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fxdesk/currency_rates_app/internal/adapters/database/pgsql"
	"github.com/fxdesk/currency_rates_app/internal/adapters/snapshot"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/core/services"
	"github.com/fxdesk/currency_rates_app/internal/fixtures"
	"github.com/fxdesk/currency_rates_app/internal/handlers"
	"github.com/fxdesk/currency_rates_app/internal/middleware"
	"github.com/fxdesk/currency_rates_app/internal/scheduler"
	"github.com/fxdesk/currency_rates_app/pkg/config"
	"github.com/fxdesk/currency_rates_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Repositories
	rateRepo := pgsql.NewPgxRateRepository(dbPool)
	currencyRepo := pgsql.NewPgxCurrencyRepository(dbPool)
	providerRepo := pgsql.NewPgxProviderRepository(dbPool)
	snapshots := snapshot.NewFileSnapshotStore(cfg.SnapshotPath)

	// Optional seed data for a fresh database
	if cfg.SeedRatesFile != "" {
		if err := fixtures.LoadSeedFile(ctx, cfg.SeedRatesFile, currencyRepo, rateRepo); err != nil {
			logger.Error("Failed to load seed file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Seed data loaded", slog.String("file", cfg.SeedRatesFile))
	}

	// Services
	ingestionSvc := services.NewIngestionService(rateRepo, currencyRepo, providerRepo, snapshots, logger, cfg.ProviderTimeout, cfg.PerturbBound)
	historySvc := services.NewRateHistoryService(rateRepo)
	container := &ports.ServiceContainer{
		Conversion: services.NewConversionService(rateRepo, snapshots),
		History:    historySvc,
		TWRR:       services.NewTWRRService(historySvc),
		Chart:      services.NewChartAssembler(),
		Currency:   services.NewCurrencyService(currencyRepo),
		Ingestion:  ingestionSvc,
	}

	// Scheduled ingestion jobs
	runner := scheduler.NewRunner(logger)
	runner.Register(services.HistoricalFetchJobName, cfg.HistoricalFetchInterval, ingestionSvc.RunHistoricalFetch)
	runner.Register(services.MockLatestJobName, cfg.MockLatestInterval, ingestionSvc.RunMockLatest)
	runner.Start(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations through a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
