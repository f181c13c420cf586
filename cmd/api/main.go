package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/config"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/database"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/database/migration"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/export"
	handlers "github.com/AlkamaSunasara00/tranzora-ai/internal/http/handler"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/http/middleware"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/otel"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/repository/postgres"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/session"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/storage"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/translator"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	migrationCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migration.EnsureMigrated(migrationCtx, db, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	historyRepo := postgres.NewHistoryPostgres(db)
	sess := session.New()
	translatorClient := translator.New(
		cfg.Translator.BaseURL,
		cfg.Translator.Timeout,
		cfg.Translator.StepDelay,
		cfg.Translator.CompleteDelay,
	)
	exporters := export.NewRegistry()

	svc := service.NewTranslationService(sess, translatorClient, exporters, objStore, historyRepo, cfg.Export.PresignTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(nil))
	app.Use(otelfiber.Middleware())

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(promRegistry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	// Session state and history change between requests.
	app.Use("/session", middleware.NoCache())
	app.Use("/history", middleware.NoCache())

	handlers.RegisterRoutes(app, db, svc)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
