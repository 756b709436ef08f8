package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/svergara/heladeria-api/internal/config"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	domainRepo "github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/internal/presentation/http/handler"
	"github.com/svergara/heladeria-api/internal/presentation/http/middleware"
	"github.com/svergara/heladeria-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Customer  *handler.CustomerHandler
	Cart      *handler.CartHandler
	Sale      *handler.SaleHandler
	Report    *handler.ReportHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// POS home screen counters
	protected.GET("/dashboard", h.Dashboard.Stats)

	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerCartRoutes(protected, h, deps)
	registerSaleRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/active", h.Product.ListActive)
		products.GET("/stock-counts", h.Product.StockCounts)
		products.GET("/:id", h.Product.Get)
	}

	// Catalog management is admin only
	adminProducts := protected.Group("/products")
	adminProducts.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		adminProducts.POST("", h.Product.Create)
		adminProducts.PUT("/:id", h.Product.Update)
		adminProducts.DELETE("/:id", h.Product.Delete)
		adminProducts.POST("/bulk-delete", h.Product.BulkDelete)
		adminProducts.GET("/:id/sales", h.Product.Sales)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
	}

	adminCategories := protected.Group("/categories")
	adminCategories.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		adminCategories.POST("", h.Category.Create)
		adminCategories.PUT("/:id", h.Category.Update)
		adminCategories.DELETE("/:id", h.Category.Delete)
		adminCategories.POST("/:id/activate", h.Category.Activate)
		adminCategories.POST("/:id/deactivate", h.Category.Deactivate)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
	}

	adminCustomers := protected.Group("/customers")
	adminCustomers.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		adminCustomers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:productId", h.Cart.UpdateItem)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
		// Checkout requires an idempotency key so a double submit cannot sell
		// stock twice
		cart.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Cart.Checkout)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id/status", h.Sale.UpdateStatus)
		sales.POST("/:id/cancel", h.Sale.Cancel)
	}

	adminSales := protected.Group("/sales")
	adminSales.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		adminSales.POST("/bulk-delete", h.Sale.BulkDelete)
		adminSales.POST("/bulk-status", h.Sale.BulkUpdateStatus)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		reports.GET("/dashboard", h.Report.Dashboard)
	}
}
