// Package app wires configuration, storage and services for the binaries.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/config"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/internal/infrastructure/cache"
	"github.com/sangkips/yuyitos-api/internal/infrastructure/messaging"
	"github.com/sangkips/yuyitos-api/internal/infrastructure/repository"
	"github.com/sangkips/yuyitos-api/internal/metrics"
	"github.com/sangkips/yuyitos-api/pkg/printer"
	"github.com/sangkips/yuyitos-api/pkg/utils"
	"gorm.io/gorm"
)

// SetupLogger configures the global zerolog logger. Development gets the
// console writer, production plain JSON.
func SetupLogger(cfg *config.AppConfig, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsProduction() {
		log.Logger = zerolog.New(out).With().Timestamp().Str("service", cfg.Name).Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
}

// Services holds every application service and the shared runtime
type Services struct {
	Runtime     *service.Runtime
	Auth        *service.AuthService
	User        *service.UserService
	Supplier    *service.SupplierService
	Category    *service.CategoryService
	Product     *service.ProductService
	Customer    *service.CustomerService
	Sale        *service.SaleService
	Credit      *service.CreditService
	Procurement *service.ProcurementService
	Receiving   *service.ReceivingService
	Dashboard   *service.DashboardService
	Printer     *service.PrinterService
}

// Options are the optional collaborators of NewServices
type Options struct {
	Metrics   *metrics.Metrics
	Publisher *messaging.NATSPublisher
	Printer   printer.Printer
}

// NewServices builds the repositories and services on top of db
func NewServices(db *gorm.DB, cfg *config.Config, jwt *utils.JWTManager, opts Options) *Services {
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	orderRepo := repository.NewPurchaseOrderRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	rt := service.NewRuntime(repository.NewTransactor(db), repository.NewCounterRepository(db))
	rt.Metrics = opts.Metrics
	if opts.Publisher != nil {
		rt.Publisher = opts.Publisher
	}

	p := opts.Printer
	if p == nil {
		p = printer.Null{}
	}

	return &Services{
		Runtime:     rt,
		Auth:        service.NewAuthService(userRepo, jwt),
		User:        service.NewUserService(rt, userRepo, roleRepo),
		Supplier:    service.NewSupplierService(supplierRepo),
		Category:    service.NewCategoryService(categoryRepo),
		Product:     service.NewProductService(rt, productRepo, supplierRepo, categoryRepo),
		Customer:    service.NewCustomerService(customerRepo),
		Sale:        service.NewSaleService(rt, saleRepo, productRepo, customerRepo),
		Credit:      service.NewCreditService(rt, paymentRepo, saleRepo, customerRepo),
		Procurement: service.NewProcurementService(rt, orderRepo, supplierRepo, productRepo),
		Receiving:   service.NewReceivingService(rt, receiptRepo, orderRepo, productRepo),
		Dashboard:   service.NewDashboardService(rt, productRepo, saleRepo, customerRepo, supplierRepo),
		Printer: service.NewPrinterService(p, saleRepo, productRepo, entity.TicketHeader{
			StoreName: cfg.Store.Name,
			Address:   cfg.Store.Address,
			Phone:     cfg.Store.Phone,
			TaxID:     cfg.Store.TaxID,
		}, cfg.Printer.Type, cfg.Printer.CharWidth),
	}
}

// NewMetrics registers the store collectors plus the Go runtime and process
// collectors on a fresh registry
func NewMetrics() (*metrics.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New("yuyitos", reg), reg
}

// NewPrinter opens the configured thermal printer, falling back to a null
// printer so sales never depend on the device
func NewPrinter(cfg *config.PrinterConfig) printer.Printer {
	p, err := printer.New(printer.Config{
		Type:    cfg.Type,
		USBPath: cfg.USBPath,
		Address: cfg.Address,
	})
	if err != nil {
		log.Warn().Err(err).Str("type", cfg.Type).Msg("printer unavailable, tickets will not be printed")
		return printer.Null{}
	}
	return p
}

// NewPublisher connects to NATS when a URL is configured. A nil publisher
// means events stay in process.
func NewPublisher(cfg *config.NATSConfig, clientName string) *messaging.NATSPublisher {
	if cfg.URL == "" {
		return nil
	}
	pub, err := messaging.NewNATSPublisher(cfg.URL, cfg.SubjectPrefix, clientName)
	if err != nil {
		log.Warn().Err(err).Str("url", cfg.URL).Msg("NATS unavailable, events will not be published")
		return nil
	}
	log.Info().Str("url", cfg.URL).Msg("publishing domain events to NATS")
	return pub
}

// NewIdempotencyStore picks Redis when configured and reachable, otherwise
// the PostgreSQL table. The returned cleanup func releases the Redis client.
func NewIdempotencyStore(ctx context.Context, cfg *config.RedisConfig, db *gorm.DB) (domainRepo.IdempotencyRepository, func()) {
	if cfg.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.URL)
		if err == nil {
			log.Info().Msg("idempotency keys stored in Redis")
			return cache.NewIdempotencyStore(rdb), func() { _ = rdb.Close() }
		}
		log.Warn().Err(err).Msg("Redis unavailable, falling back to PostgreSQL idempotency keys")
	}

	repo := repository.NewIdempotencyRepository(db)
	go purgeExpiredKeys(ctx, repo, time.Hour)
	return repo, func() {}
}

func purgeExpiredKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to purge expired idempotency keys")
			}
		}
	}
}
