package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/yuyitos-api/internal/config"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/internal/metrics"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/handler"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/middleware"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Supplier      *handler.SupplierHandler
	Category      *handler.CategoryHandler
	Product       *handler.ProductHandler
	Customer      *handler.CustomerHandler
	Sale          *handler.SaleHandler
	Credit        *handler.CreditHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Receipt       *handler.ReceiptHandler
	Dashboard     *handler.DashboardHandler
	Printer       *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *metrics.Metrics
	// Gatherer serves /metrics; nil disables the endpoint
	Gatherer prometheus.Gatherer
}

// Setup creates the Gin router and registers all routes. Background work
// started for the router stops when ctx is done.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	rateLimiter := middleware.NewRateLimiter(ctx, rateLimiterConfig(&deps.Cfg.RateLimit))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(rateLimiter.Middleware())
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	return rl
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	protected.GET("/dashboard", middleware.RequirePermission(entity.PermViewDashboard), h.Dashboard.GetStats)
	protected.GET("/printer/status", h.Printer.GetStatus)

	registerCatalogRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerSaleRoutes(protected, h, deps)
	registerProcurementRoutes(protected, h)
	registerUserRoutes(protected, h)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	manage := middleware.RequirePermission(entity.PermManageCatalog)

	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.GET("/:id/products", h.Supplier.Products)
		suppliers.POST("", manage, h.Supplier.Create)
		suppliers.PUT("/:id", manage, h.Supplier.Update)
		suppliers.DELETE("/:id", manage, h.Supplier.Delete)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", manage, h.Category.Create)
		categories.PUT("/:id", manage, h.Category.Update)
		categories.DELETE("/:id", manage, h.Category.Delete)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/code/:code", h.Product.GetByCode)
		products.GET("/:id", h.Product.Get)
		products.POST("", manage, h.Product.Create)
		products.PUT("/:id", manage, h.Product.Update)
		products.DELETE("/:id", manage, h.Product.Delete)
		products.POST("/:id/label", manage, h.Printer.PrintLabel)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission(entity.PermManageCustomers))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/statement", middleware.RequirePermission(entity.PermManageCredit), h.Credit.Statement)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission(entity.PermRegisterSales))
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotency, h.Sale.Register)
		sales.GET("/boleta/:boleta", h.Sale.GetByBoleta)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/print", h.Printer.PrintSale)
	}

	protected.POST("/payments", middleware.RequirePermission(entity.PermManageCredit), idempotency, h.Credit.ApplyPayment)
}

func registerProcurementRoutes(protected *gin.RouterGroup, h *Handlers) {
	procurement := protected.Group("")
	procurement.Use(middleware.RequirePermission(entity.PermManageProcurement))
	{
		procurement.GET("/purchase-orders", h.PurchaseOrder.List)
		procurement.POST("/purchase-orders", h.PurchaseOrder.Create)
		procurement.GET("/purchase-orders/:id", h.PurchaseOrder.Get)

		procurement.GET("/receipts", h.Receipt.List)
		procurement.POST("/receipts", h.Receipt.Create)
		procurement.GET("/receipts/:id", h.Receipt.Get)
		procurement.GET("/receipts/:id/comparison", h.Receipt.Compare)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("/users", h.User.Create)
		admin.GET("/roles", h.User.ListRoles)
	}
}
