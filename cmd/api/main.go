package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/app"
	"github.com/sangkips/yuyitos-api/internal/config"
	"github.com/sangkips/yuyitos-api/internal/infrastructure/database"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/handler"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/routes"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	app.SetupLogger(&cfg.App, os.Stderr)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed roles, permissions and the first administrator
	if err := database.SeedDefaultData(ctx, db, cfg.Admin); err != nil {
		log.Warn().Err(err).Msg("failed to seed default data")
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	m, registry := app.NewMetrics()
	publisher := app.NewPublisher(&cfg.NATS, cfg.App.Name)
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to drain NATS connection")
			}
		}()
	}

	idempotencyRepo, closeIdempotency := app.NewIdempotencyStore(ctx, &cfg.Redis, db)
	defer closeIdempotency()

	svcs := app.NewServices(db, cfg, jwtManager, app.Options{
		Metrics:   m,
		Publisher: publisher,
		Printer:   app.NewPrinter(&cfg.Printer),
	})

	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(svcs.Auth),
		User:          handler.NewUserHandler(svcs.User),
		Supplier:      handler.NewSupplierHandler(svcs.Supplier, svcs.Product),
		Category:      handler.NewCategoryHandler(svcs.Category),
		Product:       handler.NewProductHandler(svcs.Product),
		Customer:      handler.NewCustomerHandler(svcs.Customer),
		Sale:          handler.NewSaleHandler(svcs.Sale),
		Credit:        handler.NewCreditHandler(svcs.Credit),
		PurchaseOrder: handler.NewPurchaseOrderHandler(svcs.Procurement),
		Receipt:       handler.NewReceiptHandler(svcs.Receiving),
		Dashboard:     handler.NewDashboardHandler(svcs.Dashboard),
		Printer:       handler.NewPrinterHandler(svcs.Printer),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         m,
		Gatherer:        registry,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("env", cfg.App.Env).Str("addr", srv.Addr).Msgf("starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
